package formatter

import (
	"fmt"
	"strings"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/graph"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FormatTree renders the object hierarchy with box-drawing connectors,
// kind-colored names, and a dimmed detail column (type, tag, point kind).
func FormatTree(g *graph.Graph) string {
	var b strings.Builder
	roots := g.Roots()
	for i, rootID := range roots {
		writeSubtree(&b, g, rootID, "", i == len(roots)-1, true)
	}
	return b.String()
}

func writeSubtree(b *strings.Builder, g *graph.Graph, id uint64, prefix string, isLast, isRoot bool) {
	node := g.Get(id)
	if node == nil {
		return
	}

	connector := treeBranch
	childPrefix := prefix + treePipe
	if isLast {
		connector = treeCorner
		childPrefix = prefix + "   "
	}
	if isRoot {
		connector = ""
		childPrefix = ""
	}

	b.WriteString(prefix + connector)
	b.WriteString(StyleDim.Render(fmt.Sprintf("#%d ", node.ID)))
	b.WriteString(KindStyle(node.Kind).Render(node.Name))
	if detail := nodeDetail(node); detail != "" {
		b.WriteString("  " + StyleDim.Render(detail))
	}
	b.WriteString("\n")

	kids := g.Children(id)
	for i, kid := range kids {
		writeSubtree(b, g, kid, childPrefix, i == len(kids)-1, false)
	}
}

func nodeDetail(node *domain.ObjectNode) string {
	switch node.Kind {
	case domain.KindController:
		if node.Controller == nil {
			return ""
		}
		return node.Controller.ControllerType
	case domain.KindEquipment:
		if node.Equipment == nil {
			return ""
		}
		parts := []string{}
		if node.Equipment.EquipmentType != "" {
			parts = append(parts, node.Equipment.EquipmentType)
		}
		if node.Equipment.Tag != "" {
			parts = append(parts, node.Equipment.Tag)
		}
		if node.Equipment.TemplateName != "" {
			parts = append(parts, "tmpl:"+node.Equipment.TemplateName)
		}
		return strings.Join(parts, " · ")
	case domain.KindPoint:
		if node.Point == nil {
			return ""
		}
		return node.Point.Kind.Label()
	}
	return ""
}
