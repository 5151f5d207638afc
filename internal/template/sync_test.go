package template

import (
	"fmt"
	"testing"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEquipment builds a fresh project graph with one controller and one
// equipment node, returning the graph and the equipment id.
func newEquipment(t *testing.T) (*graph.Graph, uint64) {
	t.Helper()
	g := graph.New(domain.NewProject())
	rootID := g.Roots()[0]
	ctrl, err := g.AddNode(domain.KindController, &rootID)
	require.NoError(t, err)
	eq, err := g.AddNode(domain.KindEquipment, &ctrl.ID)
	require.NoError(t, err)
	return g, eq.ID
}

func pointNames(g *graph.Graph, eqID uint64) []string {
	var names []string
	for _, id := range g.PointChildren(eqID) {
		names = append(names, g.Get(id).Name)
	}
	return names
}

func TestSyncEquipment_CreatesTemplatePoints(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog(SeedTemplates())
	g.Get(eqID).Equipment.TemplateName = "VAV Typical"

	changed, err := SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.ElementsMatch(t,
		[]string{"Space Temp", "Discharge Temp", "Damper Cmd", "Airflow"},
		pointNames(g, eqID))

	eq := g.Get(eqID).Equipment
	assert.Equal(t, "VAV", eq.EquipmentType)
	assert.Equal(t, fmt.Sprintf("VAV-%d", eqID), eq.Tag)
	assert.Equal(t, domain.HourStaticByEquipment, eq.OverrideMode)
}

func TestSyncEquipment_Idempotent(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog(SeedTemplates())
	g.Get(eqID).Equipment.TemplateName = "AHU Typical"

	_, err := SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)
	first := pointNames(g, eqID)

	changed, err := SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, pointNames(g, eqID))
}

func TestSyncEquipment_DanglingTemplateIsSoftNoop(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog(SeedTemplates())
	g.Get(eqID).Equipment.TemplateName = "Deleted Template"

	changed, err := SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, g.PointChildren(eqID))
}

func TestSyncEquipment_RespectsOverrides(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog([]Template{{
		Name:          "PB",
		EquipmentType: "PB-TYPE",
		HourMode:      domain.HourPointsBased,
	}})

	eq := g.Get(eqID).Equipment
	eq.TemplateName = "PB"
	eq.TypeOverride = true
	eq.EquipmentType = "CUSTOM"
	eq.HoursOverride = true
	eq.OverrideMode = domain.HourStaticByEquipment
	eq.Tag = "KEEP-1"

	_, err := SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM", eq.EquipmentType)
	assert.Equal(t, domain.HourStaticByEquipment, eq.OverrideMode)
	assert.Equal(t, "KEEP-1", eq.Tag)
}

func TestSyncEquipment_AdoptsModeWhenNotOverridden(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog([]Template{{
		Name: "PB", EquipmentType: "X", HourMode: domain.HourPointsBased,
	}})
	g.Get(eqID).Equipment.TemplateName = "PB"

	_, err := SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)
	assert.Equal(t, domain.HourPointsBased, g.Get(eqID).Equipment.OverrideMode)
}

func TestSyncEquipment_SkipsExistingPointsByName(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog(SeedTemplates())
	g.Get(eqID).Equipment.TemplateName = "VAV Typical"

	// Pre-existing point sharing a template point name.
	pre, err := g.AddNode(domain.KindPoint, &eqID)
	require.NoError(t, err)
	pre.Name = "Airflow"
	pre.Point.Kind = domain.PointDO

	_, err = SyncEquipment(g, catalog, eqID)
	require.NoError(t, err)

	names := pointNames(g, eqID)
	assert.Len(t, names, 4)
	// The pre-existing point keeps its kind; sync did not recreate it.
	assert.Equal(t, domain.PointDO, g.Get(pre.ID).Point.Kind)
}

func TestSyncEquipment_NonEquipmentIsNoop(t *testing.T) {
	g, _ := newEquipment(t)
	catalog := NewCatalog(SeedTemplates())
	rootID := g.Roots()[0]

	changed, err := SyncEquipment(g, catalog, rootID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSyncAll_CoversEveryEquipment(t *testing.T) {
	g, eqID := newEquipment(t)
	catalog := NewCatalog(SeedTemplates())
	g.Get(eqID).Equipment.TemplateName = "VAV Typical"

	ctrlID := *g.Get(eqID).ParentID
	second, err := g.AddNode(domain.KindEquipment, &ctrlID)
	require.NoError(t, err)
	second.Equipment.TemplateName = "Boiler Plant"

	changed, err := SyncAll(g, catalog)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, g.PointChildren(eqID), 4)
	assert.Len(t, g.PointChildren(second.ID), 5)
}
