// Package estimate computes labor-hour figures from the project hierarchy,
// the template catalog, custom cost lines, and adjustment factors. The
// engine is a pure function of its inputs: no mutation, no I/O, no rounding
// (presentation rounds, the engine does not).
package estimate

import (
	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/template"
)

// Fixed business coefficients for the baseline hours. These are contractual
// figures, not tunables.
const (
	engPerController = 7.0
	engPerPoint      = 0.25
	gfxPerEquipment  = 1.0
	cxPerController  = 5.5
	cxPerPoint       = 0.12
)

// Breakdown is the itemized estimate. All six values are independently
// inspectable by the report and UI layers.
type Breakdown struct {
	Engineering   float64
	Graphics      float64
	Commissioning float64
	CustomTotal   float64
	OverheadHours float64
	GrandTotal    float64
}

// Estimate computes the full hours breakdown for the project against the
// given catalog. Equipment with a dangling template name contributes only
// its baseline share; the missing template is skipped, not an error.
func Estimate(p *domain.Project, catalog *template.Catalog) Breakdown {
	counts := p.CountByKind()
	controllers := float64(counts[domain.KindController])
	equipment := float64(counts[domain.KindEquipment])
	points := float64(counts[domain.KindPoint])

	eng := controllers*engPerController + points*engPerPoint
	gfx := equipment * gfxPerEquipment
	cx := controllers*cxPerController + points*cxPerPoint

	for _, obj := range p.Objects {
		if obj.Kind != domain.KindEquipment || obj.Equipment == nil {
			continue
		}
		eq := obj.Equipment
		tmpl := catalog.Find(eq.TemplateName)
		if tmpl == nil {
			continue
		}

		mode := tmpl.HourMode
		if eq.HoursOverride {
			mode = eq.OverrideMode
		}

		switch mode {
		case domain.HourPointsBased:
			perPoint := tmpl.PerPoint()
			if eq.HoursOverride {
				perPoint = eq.OverridePerPoint
			}
			n := float64(directPointChildren(p, obj.ID))
			eng += n * perPoint.Engineering
			gfx += n * perPoint.Graphics
			cx += n * perPoint.Commissioning
		default:
			flat := tmpl.Flat()
			if eq.HoursOverride {
				flat = eq.OverrideFlat
			}
			eng += flat.Engineering
			gfx += flat.Graphics
			cx += flat.Commissioning
		}
	}

	custom := 0.0
	for _, line := range p.CustomHourLines {
		custom += max(line.Quantity, 0) * max(line.HoursPerUnit, 0)
	}

	base := eng + gfx + cx + custom
	factor := p.Estimator.ComplexityFactor *
		p.Estimator.RenovationFactor *
		p.Estimator.IntegrationFactor
	adjusted := base * factor

	overheadPct := max(0, p.Estimator.QAPercent+p.Estimator.PMPercent+p.Estimator.RiskPercent)
	overhead := adjusted * overheadPct / 100

	return Breakdown{
		Engineering:   eng,
		Graphics:      gfx,
		Commissioning: cx,
		CustomTotal:   custom,
		OverheadHours: overhead,
		GrandTotal:    adjusted + overhead,
	}
}

func directPointChildren(p *domain.Project, parentID uint64) int {
	n := 0
	for _, obj := range p.Objects {
		if obj.Kind == domain.KindPoint && obj.ParentID != nil && *obj.ParentID == parentID {
			n++
		}
	}
	return n
}
