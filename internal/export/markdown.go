// Package export renders one-way human-readable reports from the current
// project and its computed hours. Reports are never parsed back.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/estimate"
)

// Markdown renders the proposal report: metadata, scope narrative, the
// system mix, and the hours summary. The generated-at stamp is injected so
// output is reproducible in tests.
func Markdown(p *domain.Project, b estimate.Breakdown, generated time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	fmt.Fprintf(&sb, "Prepared by %s on %s.\n\n", p.Settings.CompanyName, generated.Format("January 2, 2006"))

	if p.Proposal.Touched() {
		sb.WriteString("## Proposal\n\n")
		writeMetaRows(&sb, [][2]string{
			{"Project number", p.Proposal.ProjectNumber},
			{"Client", p.Proposal.ClientName},
			{"Owner", p.Proposal.Owner},
			{"Engineer of record", p.Proposal.EngineerOfRecord},
			{"Location", p.Proposal.ProjectLocation},
			{"Proposal number", p.Proposal.ProposalNumber},
			{"Revision", p.Proposal.Revision},
			{"Contract type", p.Proposal.ContractType},
			{"Design stage", p.Proposal.DesignStage},
			{"Bid date", p.Proposal.BidDate},
			{"Target start", p.Proposal.TargetStartDate},
			{"Target completion", p.Proposal.TargetCompletionDate},
			{"Prepared by", p.Proposal.PreparedBy},
			{"Project manager", p.Proposal.ProjectManager},
			{"Estimator", p.Proposal.Estimator},
		})
		sb.WriteString("\n")
	}

	writeNarrative(&sb, "Scope", p.Proposal.ScopeSummary)
	writeNarrative(&sb, "Assumptions", p.Proposal.Assumptions)
	writeNarrative(&sb, "Exclusions", p.Proposal.Exclusions)
	writeNarrative(&sb, "Notes", p.Notes)

	counts := p.CountByKind()
	sb.WriteString("## System Mix\n\n")
	sb.WriteString("| Object | Count |\n|---|---|\n")
	for _, kind := range domain.AllObjectKinds {
		fmt.Fprintf(&sb, "| %s | %d |\n", kind.Label(), counts[kind])
	}
	sb.WriteString("\n")

	if len(p.CustomHourLines) > 0 {
		sb.WriteString("## Custom Lines\n\n")
		sb.WriteString("| Line | Category | Qty | Hrs/Unit | Total |\n|---|---|---|---|---|\n")
		for _, line := range p.CustomHourLines {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				line.Name, line.Category,
				hours(line.Quantity), hours(line.HoursPerUnit),
				hours(max(line.Quantity, 0)*max(line.HoursPerUnit, 0)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Hours Summary\n\n")
	sb.WriteString("| Discipline | Hours |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Engineering | %s |\n", hours(b.Engineering))
	fmt.Fprintf(&sb, "| Graphics | %s |\n", hours(b.Graphics))
	fmt.Fprintf(&sb, "| Commissioning | %s |\n", hours(b.Commissioning))
	fmt.Fprintf(&sb, "| Custom lines | %s |\n", hours(b.CustomTotal))
	fmt.Fprintf(&sb, "| QA / PM / Risk | %s |\n", hours(b.OverheadHours))
	fmt.Fprintf(&sb, "| **Grand total** | **%s** |\n", hours(b.GrandTotal))

	return sb.String()
}

func writeMetaRows(sb *strings.Builder, rows [][2]string) {
	for _, row := range rows {
		if strings.TrimSpace(row[1]) == "" {
			continue
		}
		fmt.Fprintf(sb, "- **%s:** %s\n", row[0], row[1])
	}
}

func writeNarrative(sb *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n%s\n\n", title, strings.TrimSpace(body))
}

// hours renders a figure with one decimal place, the precision estimates
// are quoted in.
func hours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
