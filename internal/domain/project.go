package domain

import "github.com/google/uuid"

// Project is the aggregate root persisted in a .m8 container. Objects are
// stored flattened; parent/child structure lives in the nodes' ParentID
// links. Templates are deliberately absent: the catalog is workspace-scoped
// and outlives any single project.
type Project struct {
	Name     string       `json:"name"`
	Notes    string       `json:"notes"`
	Proposal ProposalData `json:"proposal"`

	Objects []*ObjectNode `json:"objects"`

	OverlayPDF    string        `json:"overlay_pdf,omitempty"`
	OverviewImage string        `json:"overview_image,omitempty"`
	OverlayNodes  []OverlayNode `json:"overlay_nodes"`
	OverlayLines  []OverlayLine `json:"overlay_lines"`

	CustomHourLines []HourLine        `json:"custom_hour_lines"`
	Estimator       EstimatorSettings `json:"estimator"`

	NextID   uint64      `json:"next_id"`
	Settings AppSettings `json:"settings"`

	ProjectUUID uuid.UUID `json:"project_uuid"`
}

// NewProject builds the default project: a single HQ Building root and
// defaulted settings, the same starting state every fresh session gets.
func NewProject() *Project {
	root := NewObjectNode(1, KindBuilding)
	root.Name = "HQ Building"
	return &Project{
		Name:        "New BAS Project",
		Notes:       "Capture assumptions, scope notes, and exclusions here.",
		Objects:     []*ObjectNode{root},
		Estimator:   DefaultEstimatorSettings(),
		NextID:      2,
		Settings:    DefaultAppSettings(),
		ProjectUUID: uuid.New(),
	}
}

// FindObject returns the node with the given id, or nil.
func (p *Project) FindObject(id uint64) *ObjectNode {
	for _, obj := range p.Objects {
		if obj.ID == id {
			return obj
		}
	}
	return nil
}

// CountByKind tallies objects per kind.
func (p *Project) CountByKind() map[ObjectKind]int {
	counts := make(map[ObjectKind]int, len(AllObjectKinds))
	for _, obj := range p.Objects {
		counts[obj.Kind]++
	}
	return counts
}

// HourLine is an ad hoc cost line contributing quantity × hours-per-unit to
// the estimate, independent of the object hierarchy.
type HourLine struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	HoursPerUnit float64 `json:"hours_per_unit"`
}

// NewHourLine returns a line with the stock defaults.
func NewHourLine() HourLine {
	return HourLine{
		Name:         "Custom line",
		Category:     "Engineering",
		Quantity:     1,
		HoursPerUnit: 1,
	}
}

// EstimatorSettings holds the multiplicative factors and additive overhead
// percentages applied on top of the computed base hours. Values are freely
// editable; clamping only happens when recommended settings are applied.
type EstimatorSettings struct {
	ComplexityFactor  float64 `json:"complexity_factor"`
	RenovationFactor  float64 `json:"renovation_factor"`
	IntegrationFactor float64 `json:"integration_factor"`
	QAPercent         float64 `json:"qa_percent"`
	PMPercent         float64 `json:"project_management_percent"`
	RiskPercent       float64 `json:"risk_percent"`
}

func DefaultEstimatorSettings() EstimatorSettings {
	return EstimatorSettings{
		ComplexityFactor:  1.0,
		RenovationFactor:  1.0,
		IntegrationFactor: 1.0,
		QAPercent:         8.0,
		PMPercent:         12.0,
		RiskPercent:       5.0,
	}
}

// AppSettings is the per-project application preferences block.
type AppSettings struct {
	AccentColor     [4]uint8 `json:"accent_color"`
	CompanyName     string   `json:"company_name"`
	AutosaveMinutes int      `json:"autosave_minutes"`
	UIScale         float64  `json:"ui_scale"`
	ShowOverlayGrid bool     `json:"show_overlay_grid"`
}

func DefaultAppSettings() AppSettings {
	return AppSettings{
		AccentColor:     [4]uint8{168, 196, 84, 255},
		CompanyName:     "AutoMate Controls",
		AutosaveMinutes: 10,
		UIScale:         1.0,
		ShowOverlayGrid: true,
	}
}
