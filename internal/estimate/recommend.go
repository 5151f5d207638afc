package estimate

import (
	"strings"

	"github.com/automate-controls/basstudio/internal/domain"
)

// Recommend clamps the estimator factors and overhead percentages to the
// recommended ranges. Settings stay freely editable otherwise; this runs
// only when the user asks for recommended defaults.
func Recommend(s *domain.EstimatorSettings) {
	s.ComplexityFactor = clamp(s.ComplexityFactor, 0.8, 1.4)
	s.RenovationFactor = clamp(s.RenovationFactor, 1.0, 1.35)
	s.IntegrationFactor = clamp(s.IntegrationFactor, 0.9, 1.3)
	s.QAPercent = clamp(s.QAPercent, 5.0, 12.0)
	s.PMPercent = clamp(s.PMPercent, 8.0, 16.0)
	s.RiskPercent = clamp(s.RiskPercent, 3.0, 12.0)
}

// RecommendAppSettings applies the companion clamps to the application
// preferences block.
func RecommendAppSettings(s *domain.AppSettings) {
	if s.AutosaveMinutes > 15 {
		s.AutosaveMinutes = 15
	}
	s.UIScale = clamp(s.UIScale, 0.95, 1.25)
	if strings.TrimSpace(s.CompanyName) == "" {
		s.CompanyName = domain.DefaultAppSettings().CompanyName
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
