package domain

// ObjectKind identifies a node's place in the Building → Controller →
// Equipment → Point hierarchy.
type ObjectKind string

const (
	KindBuilding   ObjectKind = "Building"
	KindController ObjectKind = "Controller"
	KindEquipment  ObjectKind = "Equipment"
	KindPoint      ObjectKind = "Point"
)

// AllObjectKinds lists the kinds in hierarchy order.
var AllObjectKinds = []ObjectKind{KindBuilding, KindController, KindEquipment, KindPoint}

func (k ObjectKind) Label() string {
	if k.Valid() {
		return string(k)
	}
	return "Unknown"
}

// Valid reports whether k is one of the four known kinds.
func (k ObjectKind) Valid() bool {
	switch k {
	case KindBuilding, KindController, KindEquipment, KindPoint:
		return true
	}
	return false
}

// PointKind is the I/O classification of a point object.
type PointKind string

const (
	PointAI       PointKind = "AI"
	PointDI       PointKind = "DI"
	PointAO       PointKind = "AO"
	PointDO       PointKind = "DO"
	PointNetworkX PointKind = "NetworkX"
)

var AllPointKinds = []PointKind{PointAI, PointDI, PointAO, PointDO, PointNetworkX}

func (k PointKind) Label() string {
	if k == PointNetworkX {
		return "Network(X)"
	}
	return string(k)
}

// HourMode selects how an equipment's hours are computed: a flat figure per
// unit, or scaled by its point count.
type HourMode string

const (
	HourStaticByEquipment HourMode = "StaticByEquipment"
	HourPointsBased       HourMode = "PointsBased"
)

func (m HourMode) Label() string {
	if m == HourPointsBased {
		return "Points based"
	}
	return "Static by equipment"
}
