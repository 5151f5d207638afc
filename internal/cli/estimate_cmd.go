package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
)

func newEstimateCmd(app *App) *cobra.Command {
	var recommended bool

	cmd := &cobra.Command{
		Use:   "estimate <file.m8>",
		Short: "Compute the labor-hours estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if recommended {
				s.ApplyRecommended()
				if err := app.saveSession(s); err != nil {
					return err
				}
			}
			fmt.Fprintln(app.out(), formatter.FormatEstimate(s.Estimate()))

			e := s.Project().Estimator
			fmt.Fprint(app.out(), formatter.Dim(fmt.Sprintf(
				"factors %.2f x %.2f x %.2f, overhead %.0f%% + %.0f%% + %.0f%%\n",
				e.ComplexityFactor, e.RenovationFactor, e.IntegrationFactor,
				e.QAPercent, e.PMPercent, e.RiskPercent)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&recommended, "recommended", false, "Clamp estimator and app settings to recommended ranges first")
	return cmd
}
