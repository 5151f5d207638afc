package testutil

import (
	"testing"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/graph"
)

// TreeOption mutates the project after the standard tree is built.
type TreeOption func(*domain.Project)

// WithTemplateName binds every equipment node to the named template.
func WithTemplateName(name string) TreeOption {
	return func(p *domain.Project) {
		for _, obj := range p.Objects {
			if obj.Kind == domain.KindEquipment && obj.Equipment != nil {
				obj.Equipment.TemplateName = name
			}
		}
	}
}

// WithCustomLine appends one custom hour line.
func WithCustomLine(name string, qty, hours float64) TreeOption {
	return func(p *domain.Project) {
		p.CustomHourLines = append(p.CustomHourLines, domain.HourLine{
			Name: name, Category: "Engineering", Quantity: qty, HoursPerUnit: hours,
		})
	}
}

// WithZeroOverhead zeros the overhead percentages so baseline math is easy
// to assert.
func WithZeroOverhead() TreeOption {
	return func(p *domain.Project) {
		p.Estimator.QAPercent = 0
		p.Estimator.PMPercent = 0
		p.Estimator.RiskPercent = 0
	}
}

// NewTestTree builds the standard fixture: the default root Building with
// one Controller, one Equipment under it, and the given number of Points
// under the equipment. Returns the project and the equipment's id.
func NewTestTree(t *testing.T, points int, opts ...TreeOption) (*domain.Project, uint64) {
	t.Helper()
	p := domain.NewProject()
	g := graph.New(p)
	rootID := g.Roots()[0]

	ctrl, err := g.AddNode(domain.KindController, &rootID)
	if err != nil {
		t.Fatalf("adding controller: %v", err)
	}
	eq, err := g.AddNode(domain.KindEquipment, &ctrl.ID)
	if err != nil {
		t.Fatalf("adding equipment: %v", err)
	}
	for i := 0; i < points; i++ {
		if _, err := g.AddNode(domain.KindPoint, &eq.ID); err != nil {
			t.Fatalf("adding point: %v", err)
		}
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, eq.ID
}
