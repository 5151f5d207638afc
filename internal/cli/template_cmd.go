package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/template"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the equipment template catalog",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateAddCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateValidateCmd(app),
	)
	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.out(), formatter.FormatTemplateList(app.Catalog.All()))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one template in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl := app.Catalog.Find(args[0])
			if tmpl == nil {
				return fmt.Errorf("template %q not found in catalog", args[0])
			}
			fmt.Fprint(app.out(), formatter.FormatTemplate(tmpl))
			return nil
		},
	}
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var eqType, mode string
	var flatEng, flatGfx, flatCx, perEng, perGfx, perCx float64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a catalog template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hourMode := domain.HourMode(mode)
			tmpl := template.Template{
				Name:                       args[0],
				EquipmentType:              eqType,
				HourMode:                   hourMode,
				EngineeringHours:           flatEng,
				GraphicsHours:              flatGfx,
				CommissioningHours:         flatCx,
				EngineeringHoursPerPoint:   perEng,
				GraphicsHoursPerPoint:      perGfx,
				CommissioningHoursPerPoint: perCx,
			}
			if errs := template.Validate(&tmpl); len(errs) > 0 {
				return fmt.Errorf("invalid template: %v", errs[0])
			}
			app.Catalog.Upsert(tmpl)
			if err := app.TemplateStore.Save(app.Catalog); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Saved template %q\n", tmpl.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&eqType, "type", "", "Equipment type (e.g. VAV, AHU)")
	cmd.Flags().StringVar(&mode, "mode", string(domain.HourStaticByEquipment), "Hour mode: StaticByEquipment or PointsBased")
	cmd.Flags().Float64Var(&flatEng, "eng", 0, "Flat engineering hours")
	cmd.Flags().Float64Var(&flatGfx, "gfx", 0, "Flat graphics hours")
	cmd.Flags().Float64Var(&flatCx, "cx", 0, "Flat commissioning hours")
	cmd.Flags().Float64Var(&perEng, "eng-per-point", 0, "Engineering hours per point")
	cmd.Flags().Float64Var(&perGfx, "gfx-per-point", 0, "Graphics hours per point")
	cmd.Flags().Float64Var(&perCx, "cx-per-point", 0, "Commissioning hours per point")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a template from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Catalog.Remove(args[0]) {
				return fmt.Errorf("template %q not found in catalog", args[0])
			}
			if err := app.TemplateStore.Save(app.Catalog); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Removed template %q\n", args[0])
			return nil
		},
	}
}

func newTemplateValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every template in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, tmpl := range app.Catalog.All() {
				errs := template.Validate(&tmpl)
				if len(errs) == 0 {
					continue
				}
				bad++
				fmt.Fprintln(app.out(), formatter.Bold(tmpl.Name))
				for _, err := range errs {
					fmt.Fprintln(app.out(), formatter.Warn(err.Error()))
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d template(s) failed validation", bad)
			}
			fmt.Fprintf(app.out(), "All %d template(s) are valid.\n", app.Catalog.Len())
			return nil
		},
	}
}
