// Package graph implements the project object hierarchy: typed nodes with
// parent links, kind-adjacency validation, and structural operations. All
// mutations go through a Graph so the flattened node list on the project and
// the lookup indexes stay consistent.
package graph

import (
	"github.com/automate-controls/basstudio/internal/domain"
)

// legalParent maps each child kind to its unique legal parent kind.
// Buildings are roots and absent from the table.
var legalParent = map[domain.ObjectKind]domain.ObjectKind{
	domain.KindController: domain.KindBuilding,
	domain.KindEquipment:  domain.KindController,
	domain.KindPoint:      domain.KindEquipment,
}

// reparentable is the subset of kinds that may be moved to a new parent.
// Points stay attached to the equipment that created them.
var reparentable = map[domain.ObjectKind]bool{
	domain.KindController: true,
	domain.KindEquipment:  true,
}

// Graph is an indexed view over a project's object list. The id and
// adjacency indexes are maintained incrementally on every mutation, so
// lookups stay O(1) regardless of project size.
type Graph struct {
	project  *domain.Project
	byID     map[uint64]*domain.ObjectNode
	children map[uint64][]uint64
}

// New builds a Graph over the given project. The project's Objects slice
// remains the source of truth; the Graph only adds indexes on top.
func New(p *domain.Project) *Graph {
	g := &Graph{
		project:  p,
		byID:     make(map[uint64]*domain.ObjectNode, len(p.Objects)),
		children: make(map[uint64][]uint64),
	}
	for _, obj := range p.Objects {
		g.byID[obj.ID] = obj
		if obj.ParentID != nil {
			g.children[*obj.ParentID] = append(g.children[*obj.ParentID], obj.ID)
		}
	}
	return g
}

// Project returns the underlying aggregate.
func (g *Graph) Project() *domain.Project { return g.project }

// Get returns the node with the given id, or nil.
func (g *Graph) Get(id uint64) *domain.ObjectNode { return g.byID[id] }

// Len returns the number of objects in the graph.
func (g *Graph) Len() int { return len(g.project.Objects) }

// Children returns the child ids of a node in insertion order.
func (g *Graph) Children(id uint64) []uint64 { return g.children[id] }

// Roots returns the ids of all parentless nodes in insertion order.
func (g *Graph) Roots() []uint64 {
	var roots []uint64
	for _, obj := range g.project.Objects {
		if obj.ParentID == nil {
			roots = append(roots, obj.ID)
		}
	}
	return roots
}

// ValidParent reports whether a node of the given kind may be created under
// the given parent. Buildings require no parent; everything else requires
// its unique predecessor kind.
func (g *Graph) ValidParent(kind domain.ObjectKind, parentID *uint64) bool {
	if kind == domain.KindBuilding {
		return parentID == nil
	}
	if parentID == nil {
		return false
	}
	parent := g.byID[*parentID]
	return parent != nil && legalParent[kind] == parent.Kind
}

// AddNode validates kind/parent legality, allocates the next id, and appends
// a node with kind-appropriate defaults. Returns ErrInvalidParent without
// mutating on an illegal pairing.
func (g *Graph) AddNode(kind domain.ObjectKind, parentID *uint64) (*domain.ObjectNode, error) {
	if !g.ValidParent(kind, parentID) {
		return nil, ErrInvalidParent
	}

	id := g.project.NextID
	g.project.NextID++

	node := domain.NewObjectNode(id, kind)
	if parentID != nil {
		pid := *parentID
		node.ParentID = &pid
	}

	g.project.Objects = append(g.project.Objects, node)
	g.byID[id] = node
	if node.ParentID != nil {
		g.children[*node.ParentID] = append(g.children[*node.ParentID], id)
	}
	return node, nil
}

// RemoveSubtree removes the node and its entire descendant closure, along
// with any overlay tokens referencing removed objects, in one step. The
// closure is computed iteratively with a work stack and a visited set, then
// applied, so a failure cannot leave a partial removal. Returns the set of
// removed ids (empty if id is unknown).
func (g *Graph) RemoveSubtree(id uint64) map[uint64]bool {
	if g.byID[id] == nil {
		return map[uint64]bool{}
	}

	removed := make(map[uint64]bool)
	stack := []uint64{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if removed[current] {
			continue
		}
		removed[current] = true
		stack = append(stack, g.children[current]...)
	}

	kept := g.project.Objects[:0]
	for _, obj := range g.project.Objects {
		if removed[obj.ID] {
			delete(g.byID, obj.ID)
			delete(g.children, obj.ID)
			continue
		}
		kept = append(kept, obj)
	}
	g.project.Objects = kept

	for parent, kids := range g.children {
		filtered := kids[:0]
		for _, kid := range kids {
			if !removed[kid] {
				filtered = append(filtered, kid)
			}
		}
		g.children[parent] = filtered
	}

	keptNodes := g.project.OverlayNodes[:0]
	for _, token := range g.project.OverlayNodes {
		if !removed[token.ObjectID] {
			keptNodes = append(keptNodes, token)
		}
	}
	g.project.OverlayNodes = keptNodes

	return removed
}

// Reparent moves child under newParent when the move keeps the kind
// adjacency legal and introduces no cycle. Returns false, with no mutation,
// on any violation.
func (g *Graph) Reparent(childID, newParentID uint64) bool {
	child := g.byID[childID]
	newParent := g.byID[newParentID]
	if child == nil || newParent == nil || childID == newParentID {
		return false
	}
	if !reparentable[child.Kind] || legalParent[child.Kind] != newParent.Kind {
		return false
	}

	// Walk ancestors upward from the target; reaching the child means the
	// move would create a cycle.
	for cursor := &newParentID; cursor != nil; {
		if *cursor == childID {
			return false
		}
		node := g.byID[*cursor]
		if node == nil {
			break
		}
		cursor = node.ParentID
	}

	if child.ParentID != nil {
		old := g.children[*child.ParentID]
		filtered := old[:0]
		for _, kid := range old {
			if kid != childID {
				filtered = append(filtered, kid)
			}
		}
		g.children[*child.ParentID] = filtered
	}
	pid := newParentID
	child.ParentID = &pid
	g.children[newParentID] = append(g.children[newParentID], childID)
	return true
}

// Duplicate deep-copies a single node under the same parent with a fresh id
// and a " Copy" name suffix. Children are intentionally not duplicated.
func (g *Graph) Duplicate(id uint64) *domain.ObjectNode {
	src := g.byID[id]
	if src == nil {
		return nil
	}

	copied := src.Clone()
	copied.ID = g.project.NextID
	g.project.NextID++
	copied.Name = src.Name + " Copy"

	g.project.Objects = append(g.project.Objects, copied)
	g.byID[copied.ID] = copied
	if copied.ParentID != nil {
		g.children[*copied.ParentID] = append(g.children[*copied.ParentID], copied.ID)
	}
	return copied
}

// PointChildren returns the ids of a node's direct point children.
func (g *Graph) PointChildren(id uint64) []uint64 {
	var points []uint64
	for _, kid := range g.children[id] {
		if node := g.byID[kid]; node != nil && node.Kind == domain.KindPoint {
			points = append(points, kid)
		}
	}
	return points
}
