package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
)

func newRecentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recently opened projects registry",
	}

	cmd.AddCommand(
		newRecentListCmd(app),
		newRecentForgetCmd(app),
	)
	return cmd
}

func newRecentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recently opened projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Recents == nil {
				return fmt.Errorf("recents registry is not available")
			}
			entries, err := app.Recents.List(context.Background(), 0)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(app.out(), "No recent projects.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Name,
					e.Path,
					e.OpenedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprint(app.out(), formatter.RenderTable([]string{"Project", "Path", "Opened"}, rows))
			return nil
		},
	}
}

func newRecentForgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <project-uuid>",
		Short: "Drop one project from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Recents == nil {
				return fmt.Errorf("recents registry is not available")
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project uuid %q: %w", args[0], err)
			}
			return app.Recents.Remove(context.Background(), id)
		},
	}
}
