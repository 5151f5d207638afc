// Package template implements the workspace-scoped equipment template
// catalog and the synchronizer that reconciles equipment nodes against it.
package template

import (
	"encoding/json"

	"github.com/automate-controls/basstudio/internal/domain"
)

// Template is a reusable named equipment definition: a point list plus the
// hour coefficients the estimator reads. Templates live in the workspace
// catalog, not in any project file.
type Template struct {
	Name          string          `json:"name"`
	EquipmentType string          `json:"equipment_type"`
	Points        []TemplatePoint `json:"points"`
	HourMode      domain.HourMode `json:"hour_mode"`

	EngineeringHours           float64 `json:"engineering_hours"`
	EngineeringHoursPerPoint   float64 `json:"engineering_hours_per_point"`
	GraphicsHours              float64 `json:"graphics_hours"`
	GraphicsHoursPerPoint      float64 `json:"graphics_hours_per_point"`
	CommissioningHours         float64 `json:"commissioning_hours"`
	CommissioningHoursPerPoint float64 `json:"commissioning_hours_per_point"`
}

// Flat returns the static-mode hour triple.
func (t *Template) Flat() domain.HourSet {
	return domain.HourSet{
		Engineering:   t.EngineeringHours,
		Graphics:      t.GraphicsHours,
		Commissioning: t.CommissioningHours,
	}
}

// PerPoint returns the points-based hour triple.
func (t *Template) PerPoint() domain.HourSet {
	return domain.HourSet{
		Engineering:   t.EngineeringHoursPerPoint,
		Graphics:      t.GraphicsHoursPerPoint,
		Commissioning: t.CommissioningHoursPerPoint,
	}
}

// TemplatePoint is one declared point of a template.
type TemplatePoint struct {
	Name string           `json:"name"`
	Kind domain.PointKind `json:"kind"`
}

// UnmarshalJSON accepts both the current record shape and the legacy shape
// where points were stored as bare name strings. Legacy points decode as AI.
// Both shapes collapse to the canonical record here, at the load boundary;
// nothing downstream ever sees the legacy form.
func (p *TemplatePoint) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		p.Kind = domain.PointAI
		return nil
	}

	type rich TemplatePoint
	var r rich
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = TemplatePoint(r)
	if p.Kind == "" {
		p.Kind = domain.PointAI
	}
	return nil
}

func ai(name string) TemplatePoint {
	return TemplatePoint{Name: name, Kind: domain.PointAI}
}
