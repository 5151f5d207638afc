package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
	"github.com/automate-controls/basstudio/internal/domain"
)

// studioHuhTheme adapts the Gruvbox palette for huh forms.
func studioHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runProposalWizard walks through the proposal metadata form, writing the
// answers into the project in place.
func runProposalWizard(p *domain.Project) error {
	prop := &p.Proposal

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&p.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("project name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Project number").Value(&prop.ProjectNumber),
			huh.NewInput().Title("Client").Value(&prop.ClientName),
			huh.NewInput().Title("Owner").Value(&prop.Owner),
			huh.NewInput().Title("Engineer of record").Value(&prop.EngineerOfRecord),
			huh.NewInput().Title("Location").Value(&prop.ProjectLocation),
		),
		huh.NewGroup(
			huh.NewInput().Title("Proposal number").Value(&prop.ProposalNumber),
			huh.NewInput().Title("Revision").Value(&prop.Revision),
			huh.NewSelect[string]().
				Title("Contract type").
				Options(
					huh.NewOption("Plan and spec", "Plan and spec"),
					huh.NewOption("Design build", "Design build"),
					huh.NewOption("Design assist", "Design assist"),
					huh.NewOption("Negotiated", "Negotiated"),
				).
				Value(&prop.ContractType),
			huh.NewSelect[string]().
				Title("Design stage").
				Options(
					huh.NewOption("Schematic design", "Schematic design"),
					huh.NewOption("Design development", "Design development"),
					huh.NewOption("Construction documents", "Construction documents"),
					huh.NewOption("Issued for construction", "Issued for construction"),
				).
				Value(&prop.DesignStage),
			huh.NewInput().Title("Bid date").Placeholder("YYYY-MM-DD").Value(&prop.BidDate),
		),
		huh.NewGroup(
			huh.NewInput().Title("Prepared by").Value(&prop.PreparedBy),
			huh.NewInput().Title("Project manager").Value(&prop.ProjectManager),
			huh.NewInput().Title("Estimator").Value(&prop.Estimator),
			huh.NewText().Title("Scope summary").Value(&prop.ScopeSummary),
			huh.NewText().Title("Assumptions").Value(&prop.Assumptions),
			huh.NewText().Title("Exclusions").Value(&prop.Exclusions),
		),
	).WithTheme(studioHuhTheme())

	return form.Run()
}
