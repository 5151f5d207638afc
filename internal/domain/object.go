package domain

import "fmt"

// ObjectNode is one node of the project hierarchy. Exactly one of the
// kind-specific field blocks is populated, matching Kind; the others stay
// nil so irrelevant fields cannot drift out of sync with the node's kind.
type ObjectNode struct {
	ID       uint64     `json:"id"`
	ParentID *uint64    `json:"parent_id,omitempty"`
	Kind     ObjectKind `json:"kind"`
	Name     string     `json:"name"`

	Controller *ControllerFields `json:"controller,omitempty"`
	Equipment  *EquipmentFields  `json:"equipment,omitempty"`
	Point      *PointFields      `json:"point,omitempty"`
}

// ControllerFields carries controller-only attributes.
type ControllerFields struct {
	ControllerType string `json:"controller_type"`
	License        string `json:"license"`
}

// EquipmentFields carries equipment-only attributes, including the template
// link and the manual-override block the estimator consults.
type EquipmentFields struct {
	EquipmentType string `json:"equipment_type"`
	Tag           string `json:"tag"`
	Make          string `json:"make,omitempty"`
	Model         string `json:"model,omitempty"`
	TemplateName  string `json:"template_name,omitempty"`

	TypeOverride     bool     `json:"type_override,omitempty"`
	HoursOverride    bool     `json:"hours_override,omitempty"`
	OverrideMode     HourMode `json:"override_mode,omitempty"`
	OverrideFlat     HourSet  `json:"override_flat"`
	OverridePerPoint HourSet  `json:"override_per_point"`
}

// PointFields carries point-only attributes.
type PointFields struct {
	Kind PointKind `json:"point_kind"`
}

// HourSet is one engineering/graphics/commissioning hour triple. Templates
// carry two (flat and per-point), equipment overrides mirror both.
type HourSet struct {
	Engineering   float64 `json:"engineering,omitempty"`
	Graphics      float64 `json:"graphics,omitempty"`
	Commissioning float64 `json:"commissioning,omitempty"`
}

// NewObjectNode builds a node of the given kind with kind-appropriate
// defaults and an auto-generated name. The caller assigns parent linkage.
func NewObjectNode(id uint64, kind ObjectKind) *ObjectNode {
	n := &ObjectNode{
		ID:   id,
		Kind: kind,
		Name: fmt.Sprintf("%s %d", kind.Label(), id),
	}
	switch kind {
	case KindController:
		n.Controller = &ControllerFields{
			ControllerType: "Lynxspring Edge",
			License:        "None",
		}
	case KindEquipment:
		n.Equipment = &EquipmentFields{
			OverrideMode: HourStaticByEquipment,
		}
	case KindPoint:
		n.Point = &PointFields{Kind: PointAI}
	}
	return n
}

// Clone returns a deep copy of the node. Kind-specific blocks are copied by
// value so the clone shares no mutable state with the original.
func (n *ObjectNode) Clone() *ObjectNode {
	copied := *n
	if n.ParentID != nil {
		pid := *n.ParentID
		copied.ParentID = &pid
	}
	if n.Controller != nil {
		c := *n.Controller
		copied.Controller = &c
	}
	if n.Equipment != nil {
		e := *n.Equipment
		copied.Equipment = &e
	}
	if n.Point != nil {
		p := *n.Point
		copied.Point = &p
	}
	return &copied
}

// Normalize repairs the variant invariant after decoding: the block matching
// Kind is allocated if missing and the others are dropped. Decoded payloads
// (hand-edited or truncated) cannot otherwise be trusted to uphold it.
func (n *ObjectNode) Normalize() {
	if n.Kind != KindController {
		n.Controller = nil
	} else if n.Controller == nil {
		n.Controller = &ControllerFields{}
	}
	if n.Kind != KindEquipment {
		n.Equipment = nil
	} else if n.Equipment == nil {
		n.Equipment = &EquipmentFields{OverrideMode: HourStaticByEquipment}
	}
	if n.Kind != KindPoint {
		n.Point = nil
	} else if n.Point == nil {
		n.Point = &PointFields{Kind: PointAI}
	}
	if n.Equipment != nil && n.Equipment.OverrideMode == "" {
		n.Equipment.OverrideMode = HourStaticByEquipment
	}
	if n.Point != nil && n.Point.Kind == "" {
		n.Point.Kind = PointAI
	}
}

// Matches reports whether the node matches a free-text search query against
// its name, kind label, and equipment type/tag. An empty query matches all.
func (n *ObjectNode) Matches(query string) bool {
	if query == "" {
		return true
	}
	if containsFold(n.Name, query) || containsFold(n.Kind.Label(), query) {
		return true
	}
	if n.Equipment != nil {
		return containsFold(n.Equipment.EquipmentType, query) ||
			containsFold(n.Equipment.Tag, query) ||
			containsFold(n.Equipment.TemplateName, query)
	}
	return false
}
