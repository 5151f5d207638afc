package formatter

import (
	"fmt"
	"strings"

	"github.com/automate-controls/basstudio/internal/template"
)

// FormatTemplateList renders the catalog as a table.
func FormatTemplateList(templates []template.Template) string {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			t.Name,
			t.EquipmentType,
			t.HourMode.Label(),
			fmt.Sprintf("%d", len(t.Points)),
		})
	}
	return RenderTable([]string{"Template", "Type", "Hour Mode", "Points"}, rows)
}

// FormatTemplate renders one template in full.
func FormatTemplate(t *template.Template) string {
	var b strings.Builder
	b.WriteString(Header(t.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(t.EquipmentType), Dim(t.HourMode.Label())))

	flat := t.Flat()
	per := t.PerPoint()
	b.WriteString(RenderTable(
		[]string{"Discipline", "Flat", "Per Point"},
		[][]string{
			{"Engineering", hours(flat.Engineering), hours(per.Engineering)},
			{"Graphics", hours(flat.Graphics), hours(per.Graphics)},
			{"Commissioning", hours(flat.Commissioning), hours(per.Commissioning)},
		}))

	if len(t.Points) > 0 {
		b.WriteString("\n" + Header("Points") + "\n")
		for _, p := range t.Points {
			b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render(p.Kind.Label()), p.Name))
		}
	}
	return b.String()
}
