package formatter

import (
	"fmt"
	"strings"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/estimate"
	"github.com/automate-controls/basstudio/internal/session"
)

// FormatEstimate renders the six-value hours breakdown.
func FormatEstimate(b estimate.Breakdown) string {
	rows := [][]string{
		{"Engineering", hours(b.Engineering)},
		{"Graphics", hours(b.Graphics)},
		{"Commissioning", hours(b.Commissioning)},
		{"Custom lines", hours(b.CustomTotal)},
		{"QA / PM / Risk", hours(b.OverheadHours)},
		{Bold("Grand total"), Bold(hours(b.GrandTotal))},
	}
	return Header("Estimated Hours") + "\n" + RenderTable([]string{"Discipline", "Hours"}, rows)
}

// FormatOverview renders the project health report.
func FormatOverview(o session.Overview) string {
	var b strings.Builder
	b.WriteString(Header("Project Overview") + "\n")

	rows := [][]string{
		{"Proposal fields filled", fmt.Sprintf("%d", o.MetadataFieldsFilled)},
		{"Buildings", fmt.Sprintf("%d", o.Counts[domain.KindBuilding])},
		{"Controllers", fmt.Sprintf("%d", o.Counts[domain.KindController])},
		{"Equipment", fmt.Sprintf("%d (%d templated)", o.EquipmentTotal, o.TemplatedEquipment)},
		{"Points", fmt.Sprintf("%d", o.Counts[domain.KindPoint])},
		{"Overlay tokens / lines", fmt.Sprintf("%d / %d", o.OverlayTokens, o.OverlayLines)},
		{"Custom hour lines", fmt.Sprintf("%d", o.CustomLines)},
		{"Estimator adjusted", yesNo(o.EstimatorAdjusted)},
	}
	b.WriteString(RenderTable([]string{"Metric", "Value"}, rows))

	if len(o.Issues) > 0 {
		b.WriteString("\n" + Header("Issues") + "\n")
		for _, issue := range o.Issues {
			b.WriteString(Warn(issue) + "\n")
		}
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func hours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
