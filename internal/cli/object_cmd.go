package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
	"github.com/automate-controls/basstudio/internal/domain"
)

func newObjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Manage objects in the project tree",
	}

	cmd.AddCommand(
		newObjectAddCmd(app),
		newObjectRemoveCmd(app),
		newObjectRenameCmd(app),
		newObjectDuplicateCmd(app),
		newObjectMoveCmd(app),
		newObjectAttachCmd(app),
		newObjectSearchCmd(app),
	)
	return cmd
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid object id %q", arg)
	}
	return id, nil
}

func newObjectAddCmd(app *App) *cobra.Command {
	var parent uint64
	var name string

	cmd := &cobra.Command{
		Use:   "add <file.m8> <Building|Controller|Equipment|Point>",
		Short: "Add an object under a parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.ObjectKind(args[1])
			if !kind.Valid() {
				return fmt.Errorf("unknown object kind %q", args[1])
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}

			var parentID *uint64
			if cmd.Flags().Changed("parent") {
				parentID = &parent
			}
			node, err := s.AddObject(kind, parentID)
			if err != nil {
				return err
			}
			if name != "" {
				node.Name = name
			}
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Added %s #%d (%s)\n", kind.Label(), node.ID, node.Name)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&parent, "parent", 0, "Parent object id (omit for a root Building)")
	cmd.Flags().StringVar(&name, "name", "", "Object name")
	return cmd
}

func newObjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file.m8> <id>",
		Short: "Remove an object and its whole subtree",
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
			if err := s.Delete(id); err != nil {
				return err
			}
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintln(app.out(), s.Status())
			return nil
		},
	}
}

func newObjectRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <file.m8> <id> <name>",
		Short: "Rename an object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if err := s.Rename(id, args[2]); err != nil {
				return err
			}
			return app.saveSession(s)
		},
	}
}

func newObjectDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <file.m8> <id>",
		Short: "Duplicate a single object (children are not copied)",
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
			copyNode, err := s.Duplicate(id)
			if err != nil {
				return err
			}
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Duplicated #%d as #%d (%s)\n", id, copyNode.ID, copyNode.Name)
			return nil
		},
	}
}

func newObjectMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <file.m8> <id> <new-parent-id>",
		Short: "Move an object under a new parent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			newParent, err := parseID(args[2])
			if err != nil {
				return err
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if err := s.Reparent(id, newParent); err != nil {
				return err
			}
			return app.saveSession(s)
		},
	}
}

func newObjectAttachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <file.m8> <id> <template-name>",
		Short: "Attach a template to an equipment object and sync it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if app.Catalog.Find(args[2]) == nil {
				return fmt.Errorf("template %q not found in catalog", args[2])
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if err := s.AttachTemplate(id, args[2]); err != nil {
				return err
			}
			if err := app.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintln(app.out(), s.Status())
			return nil
		},
	}
}

func newObjectSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <file.m8> <query>",
		Short: "Search objects by name, type, or tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			matches := s.Search(args[1])
			if len(matches) == 0 {
				fmt.Fprintln(app.out(), "No matches.")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, node := range matches {
				rows = append(rows, []string{
					fmt.Sprintf("#%d", node.ID),
					formatter.KindStyle(node.Kind).Render(node.Kind.Label()),
					node.Name,
				})
			}
			fmt.Fprint(app.out(), formatter.RenderTable([]string{"ID", "Kind", "Name"}, rows))
			return nil
		},
	}
}
