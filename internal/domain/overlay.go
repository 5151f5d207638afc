package domain

// OverlayNode is a placed token on the drawing overlay, referencing an
// object by id. Tokens are pruned whenever their object is deleted.
type OverlayNode struct {
	ID       uint64  `json:"id"`
	ObjectID uint64  `json:"object_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// OverlayLine is one routed wire segment on the overlay canvas.
type OverlayLine struct {
	From [2]float64 `json:"from"`
	To   [2]float64 `json:"to"`
}

// Placeable reports whether a node of this kind may be placed as an overlay
// token. Buildings and points live only in the tree.
func (k ObjectKind) Placeable() bool {
	return k == KindController || k == KindEquipment
}
