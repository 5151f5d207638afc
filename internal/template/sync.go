package template

import (
	"fmt"
	"strings"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/graph"
)

// SyncEquipment reconciles one equipment node against its declared template:
// non-overridden fields are refreshed from the template and missing point
// children are created. Matching is by exact point name, so re-running after
// the point set has only grown is idempotent. A dangling template name is a
// soft no-op.
//
// Sync runs on explicit events (template attach, override toggle, project
// load), never on a timer, so renames cannot race a background pass.
func SyncEquipment(g *graph.Graph, catalog *Catalog, id uint64) (bool, error) {
	node := g.Get(id)
	if node == nil || node.Kind != domain.KindEquipment || node.Equipment == nil {
		return false, nil
	}
	eq := node.Equipment
	if eq.TemplateName == "" {
		return false, nil
	}
	tmpl := catalog.Find(eq.TemplateName)
	if tmpl == nil {
		return false, nil
	}

	changed := false
	if !eq.TypeOverride && eq.EquipmentType != tmpl.EquipmentType {
		eq.EquipmentType = tmpl.EquipmentType
		changed = true
	}
	if strings.TrimSpace(eq.Tag) == "" {
		eq.Tag = fmt.Sprintf("%s-%d", tmpl.EquipmentType, id)
		changed = true
	}
	if !eq.HoursOverride && eq.OverrideMode != tmpl.HourMode {
		eq.OverrideMode = tmpl.HourMode
		changed = true
	}

	existing := make(map[string]bool)
	for _, kid := range g.Children(id) {
		child := g.Get(kid)
		if child != nil && child.Kind == domain.KindPoint {
			existing[child.Name] = true
		}
	}

	for _, p := range tmpl.Points {
		if existing[p.Name] {
			continue
		}
		created, err := g.AddNode(domain.KindPoint, &id)
		if err != nil {
			return changed, fmt.Errorf("creating template point %q: %w", p.Name, err)
		}
		created.Name = p.Name
		created.Point.Kind = p.Kind
		changed = true
	}

	return changed, nil
}

// SyncAll runs SyncEquipment over every equipment node, collecting whether
// anything changed. Used by the codec's load-repair pass.
func SyncAll(g *graph.Graph, catalog *Catalog) (bool, error) {
	var ids []uint64
	for _, obj := range g.Project().Objects {
		if obj.Kind == domain.KindEquipment {
			ids = append(ids, obj.ID)
		}
	}
	changed := false
	for _, id := range ids {
		c, err := SyncEquipment(g, catalog, id)
		if err != nil {
			return changed, err
		}
		changed = changed || c
	}
	return changed, nil
}
