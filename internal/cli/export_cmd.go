package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string
	var preview bool

	cmd := &cobra.Command{
		Use:   "export <file.m8>",
		Short: "Export the markdown proposal report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			report := export.Markdown(s.Project(), s.Estimate(), time.Now())

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(report), 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintf(app.out(), "Wrote %s\n", outPath)
			}

			if preview || outPath == "" {
				rendered := report
				if app.isTerminal() {
					// Degrade to the raw report if rendering fails.
					if styled, err := renderMarkdown(report); err == nil {
						rendered = styled
					}
				}
				fmt.Fprint(app.out(), rendered)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the report to this file")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render the report in the terminal as well")
	return cmd
}

func renderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}
