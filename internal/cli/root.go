// Package cli implements the basstudio command tree over the session layer.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
	"github.com/automate-controls/basstudio/internal/config"
	"github.com/automate-controls/basstudio/internal/session"
	"github.com/automate-controls/basstudio/internal/store"
	"github.com/automate-controls/basstudio/internal/template"
)

// App holds the shared collaborators every command needs: workspace config,
// the template catalog with its backing store, and the recents registry.
type App struct {
	Config        *config.Config
	Catalog       *template.Catalog
	TemplateStore *template.Store
	Recents       *store.SQLiteRecentsRepo

	Out io.Writer

	// IsTerminal reports whether stdout is an interactive terminal; nil
	// means no.
	IsTerminal func() bool
}

func (a *App) isTerminal() bool {
	return a.IsTerminal != nil && a.IsTerminal()
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

// NewRootCmd creates the top-level "basstudio" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "basstudio",
		Short:         "BAS estimating and drafting studio",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newNewCmd(app),
		newShowCmd(app),
		newObjectCmd(app),
		newTemplateCmd(app),
		newEstimateCmd(app),
		newExportCmd(app),
		newOverlayCmd(app),
		newQualityCmd(app),
		newOverviewCmd(app),
		newRecentCmd(app),
		newBrowseCmd(app),
	)

	return root
}

// openSession loads the project at path into a fresh session and records it
// in the recents registry.
func (a *App) openSession(path string) (*session.Session, error) {
	s := session.New(a.Config, a.Catalog)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	a.touchRecent(s)
	return s, nil
}

// saveSession writes the session back to its path and refreshes the recents
// entry.
func (a *App) saveSession(s *session.Session) error {
	if err := s.Save(); err != nil {
		return err
	}
	a.touchRecent(s)
	return nil
}

// touchRecent upserts the recents row. Registry failures are reported but
// never fail the command that triggered them.
func (a *App) touchRecent(s *session.Session) {
	if a.Recents == nil || s.Path() == "" {
		return
	}
	err := a.Recents.Touch(context.Background(), store.RecentProject{
		UUID: s.Project().ProjectUUID,
		Path: s.Path(),
		Name: s.Project().Name,
	})
	if err != nil {
		fmt.Fprintln(a.out(), formatter.Warn("recents registry: "+err.Error()))
	}
}
