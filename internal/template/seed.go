package template

import "github.com/automate-controls/basstudio/internal/domain"

// SeedTemplates returns the stock catalog installed when no template store
// exists yet. Coefficients are the shipped defaults, not recomputed values.
func SeedTemplates() []Template {
	return []Template{
		{
			Name:          "VAV Typical",
			EquipmentType: "VAV",
			Points: []TemplatePoint{
				ai("Space Temp"), ai("Discharge Temp"), ai("Damper Cmd"), ai("Airflow"),
			},
			HourMode:                   domain.HourStaticByEquipment,
			EngineeringHours:           2.0,
			EngineeringHoursPerPoint:   0.25,
			GraphicsHours:              1.0,
			GraphicsHoursPerPoint:      0.12,
			CommissioningHours:         1.5,
			CommissioningHoursPerPoint: 0.18,
		},
		{
			Name:          "AHU Typical",
			EquipmentType: "AHU",
			Points: []TemplatePoint{
				ai("Space Temp"), ai("Supply Temp"), ai("Return Temp"),
				ai("Static Pressure"), ai("Fan Cmd"), ai("Filter DP"),
			},
			HourMode:                   domain.HourStaticByEquipment,
			EngineeringHours:           5.0,
			EngineeringHoursPerPoint:   0.3,
			GraphicsHours:              2.0,
			GraphicsHoursPerPoint:      0.15,
			CommissioningHours:         3.0,
			CommissioningHoursPerPoint: 0.2,
		},
		{
			Name:          "Boiler Plant",
			EquipmentType: "Boiler",
			Points: []TemplatePoint{
				ai("Space Temp"), ai("Enable"), ai("Water Temp"), ai("Status"), ai("Alarm"),
			},
			HourMode:                   domain.HourStaticByEquipment,
			EngineeringHours:           4.0,
			EngineeringHoursPerPoint:   0.3,
			GraphicsHours:              1.5,
			GraphicsHoursPerPoint:      0.15,
			CommissioningHours:         2.5,
			CommissioningHoursPerPoint: 0.2,
		},
		{
			Name:          "Chiller",
			EquipmentType: "Chiller",
			Points: []TemplatePoint{
				ai("Space Temp"), ai("CHWS Temp"), ai("CHWR Temp"),
				ai("Run Cmd"), ai("kW"), ai("Fault"),
			},
			HourMode:                   domain.HourStaticByEquipment,
			EngineeringHours:           5.0,
			EngineeringHoursPerPoint:   0.3,
			GraphicsHours:              2.0,
			GraphicsHoursPerPoint:      0.15,
			CommissioningHours:         3.0,
			CommissioningHoursPerPoint: 0.2,
		},
		{
			Name:          "Fan Coil Unit",
			EquipmentType: "FCU",
			Points: []TemplatePoint{
				ai("Space Temp"), ai("Room Temp"), ai("Fan Speed"),
				ai("Valve Cmd"), ai("Occupancy"),
			},
			HourMode:                   domain.HourStaticByEquipment,
			EngineeringHours:           2.5,
			EngineeringHoursPerPoint:   0.25,
			GraphicsHours:              1.0,
			GraphicsHoursPerPoint:      0.12,
			CommissioningHours:         1.5,
			CommissioningHoursPerPoint: 0.18,
		},
	}
}
