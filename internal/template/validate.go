package template

import (
	"fmt"

	"github.com/automate-controls/basstudio/internal/domain"
)

// Validate checks a template for structural errors. Returns a slice of
// errors (empty if valid).
func Validate(t *Template) []error {
	var errs []error

	if t.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if t.EquipmentType == "" {
		errs = append(errs, fmt.Errorf("equipment type is required"))
	}
	switch t.HourMode {
	case domain.HourStaticByEquipment, domain.HourPointsBased:
	default:
		errs = append(errs, fmt.Errorf("unknown hour mode %q", t.HourMode))
	}

	seen := map[string]bool{}
	for i, p := range t.Points {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("point[%d]: name is required", i))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("point[%d]: duplicate name %q", i, p.Name))
		}
		seen[p.Name] = true
	}

	for _, h := range []struct {
		label string
		value float64
	}{
		{"engineering_hours", t.EngineeringHours},
		{"engineering_hours_per_point", t.EngineeringHoursPerPoint},
		{"graphics_hours", t.GraphicsHours},
		{"graphics_hours_per_point", t.GraphicsHoursPerPoint},
		{"commissioning_hours", t.CommissioningHours},
		{"commissioning_hours_per_point", t.CommissioningHoursPerPoint},
	} {
		if h.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", h.label))
		}
	}

	return errs
}
