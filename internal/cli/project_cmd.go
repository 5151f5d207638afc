package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
	"github.com/automate-controls/basstudio/internal/session"
)

func newNewCmd(app *App) *cobra.Command {
	var name string
	var wizard bool

	cmd := &cobra.Command{
		Use:   "new <file.m8>",
		Short: "Create a new project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(app.Config, app.Catalog)
			if name != "" {
				s.Project().Name = name
			}
			if wizard {
				if err := runProposalWizard(s.Project()); err != nil {
					return fmt.Errorf("running project wizard: %w", err)
				}
			}
			if err := s.SaveAs(args[0]); err != nil {
				return err
			}
			app.touchRecent(s)
			fmt.Fprintf(app.out(), "Created %s (%s)\n", args[0], s.Project().Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().BoolVar(&wizard, "wizard", false, "Fill in proposal metadata interactively")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.m8>",
		Short: "Show the object tree and estimate summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out(), formatter.Header(s.Project().Name))
			fmt.Fprintln(app.out(), formatter.FormatTree(s.Graph()))
			fmt.Fprintln(app.out(), formatter.FormatEstimate(s.Estimate()))
			return nil
		},
	}
}

func newQualityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quality <file.m8>",
		Short: "Apply quality-of-life fixes (clamps, blank tags and names)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			fixed := s.QualityPass()
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Fixed %d object(s)\n", fixed)
			return nil
		},
	}
}

func newOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview <file.m8>",
		Short: "Show the project health report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out(), formatter.FormatOverview(s.Overview()))
			return nil
		},
	}
}
