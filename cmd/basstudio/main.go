package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/automate-controls/basstudio/internal/cli"
	"github.com/automate-controls/basstudio/internal/config"
	"github.com/automate-controls/basstudio/internal/store"
	"github.com/automate-controls/basstudio/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	templateStore := template.NewStore(cfg.TemplatesPath)
	catalog, err := templateStore.Load()
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:        cfg,
		Catalog:       catalog,
		TemplateStore: templateStore,
		Out:           os.Stdout,
		IsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	// The recents registry is best-effort: a broken database disables it
	// instead of blocking every command.
	if db, err := store.OpenDB(cfg.RecentsPath); err == nil {
		defer db.Close()
		app.Recents = store.NewSQLiteRecentsRepo(db)
	} else {
		fmt.Fprintf(os.Stderr, "warning: recents registry unavailable: %v\n", err)
	}

	return cli.NewRootCmd(app).Execute()
}
