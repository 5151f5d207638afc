package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
)

func newOverlayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Manage the drawing overlay (tokens, lines, undo history)",
	}

	cmd.AddCommand(
		newOverlayPlaceCmd(app),
		newOverlayRouteCmd(app),
		newOverlayRemoveCmd(app),
		newOverlayUndoCmd(app),
		newOverlayRedoCmd(app),
		newOverlayListCmd(app),
		newOverlayPDFCmd(app),
	)
	return cmd
}

func newOverlayPlaceCmd(app *App) *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "place <file.m8> <object-id>",
		Short: "Place an overlay token for a controller or equipment object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			token, err := s.PlaceToken(id, x, y)
			if err != nil {
				return err
			}
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Placed token #%d for object #%d at (%.1f, %.1f)\n",
				token.ID, id, x, y)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Canvas X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Canvas Y coordinate")
	return cmd
}

func newOverlayRouteCmd(app *App) *cobra.Command {
	var fromX, fromY, toX, toY float64

	cmd := &cobra.Command{
		Use:   "route <file.m8>",
		Short: "Route a line between two canvas positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			s.BeginRoute(fromX, fromY)
			if !s.CompleteRoute(toX, toY) {
				return fmt.Errorf("routing line: gesture was not started")
			}
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Routed line (%.1f, %.1f) -> (%.1f, %.1f)\n",
				fromX, fromY, toX, toY)
			return nil
		},
	}

	cmd.Flags().Float64Var(&fromX, "from-x", 0, "Start X")
	cmd.Flags().Float64Var(&fromY, "from-y", 0, "Start Y")
	cmd.Flags().Float64Var(&toX, "to-x", 0, "End X")
	cmd.Flags().Float64Var(&toY, "to-y", 0, "End Y")
	return cmd
}

func newOverlayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file.m8> <token-id>",
		Short: "Remove an overlay token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if !s.RemoveToken(id) {
				return fmt.Errorf("overlay token #%d not found", id)
			}
			return app.saveSession(s)
		},
	}
}

func newOverlayUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <file.m8>",
		Short: "Undo the last overlay edit in this invocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			// Overlay history is in-memory per session; a fresh CLI load has
			// nothing to unwind.
			s.UndoOverlay()
			fmt.Fprintln(app.out(), s.Status())
			return nil
		},
	}
}

func newOverlayRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo <file.m8>",
		Short: "Redo the last undone overlay edit in this invocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			s.RedoOverlay()
			fmt.Fprintln(app.out(), s.Status())
			return nil
		},
	}
}

func newOverlayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file.m8>",
		Short: "List overlay tokens and routed lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			p := s.Project()

			rows := make([][]string, 0, len(p.OverlayNodes))
			for _, token := range p.OverlayNodes {
				name := "?"
				if node := s.Graph().Get(token.ObjectID); node != nil {
					name = node.Name
				}
				rows = append(rows, []string{
					fmt.Sprintf("#%d", token.ID),
					fmt.Sprintf("#%d %s", token.ObjectID, name),
					fmt.Sprintf("(%.1f, %.1f)", token.X, token.Y),
				})
			}
			fmt.Fprint(app.out(), formatter.RenderTable([]string{"Token", "Object", "Position"}, rows))

			for _, line := range p.OverlayLines {
				fmt.Fprintln(app.out(), formatter.Dim(fmt.Sprintf(
					"line (%.1f, %.1f) -> (%.1f, %.1f)",
					line.From[0], line.From[1], line.To[0], line.To[1])))
			}
			return nil
		},
	}
}

func newOverlayPDFCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <file.m8> <drawing.pdf>",
		Short: "Attach a floor-plan PDF as the overlay background",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading pdf: %w", err)
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			s.SetOverlayPDF(filepath.Base(args[1]), data)
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Attached %s (%d bytes)\n", s.Project().OverlayPDF, len(data))
			return nil
		},
	}
}
