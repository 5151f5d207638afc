package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/graph"
	"github.com/automate-controls/basstudio/internal/template"
)

func sampleProject(t *testing.T) *domain.Project {
	t.Helper()
	p := domain.NewProject()
	g := graph.New(p)
	rootID := g.Roots()[0]
	ctrl, err := g.AddNode(domain.KindController, &rootID)
	require.NoError(t, err)
	eq, err := g.AddNode(domain.KindEquipment, &ctrl.ID)
	require.NoError(t, err)
	eq.Name = "RTU-1"
	eq.Equipment.Tag = "RTU-1"
	p.CustomHourLines = []domain.HourLine{domain.NewHourLine()}
	p.OverlayNodes = []domain.OverlayNode{{ID: 90, ObjectID: eq.ID, X: 10, Y: 20}}
	p.OverlayLines = []domain.OverlayLine{{From: [2]float64{0, 0}, To: [2]float64{5, 5}}}
	return p
}

func TestSanitizeAssetName(t *testing.T) {
	assert.Equal(t, "floor_plan.pdf", SanitizeAssetName("floor plan.pdf"))
	assert.Equal(t, "a-b_c.1_", SanitizeAssetName("a-b_c.1é"))
	assert.Equal(t, "site.PNG", SanitizeAssetName("site.PNG"))
	assert.Equal(t, "asset.bin", SanitizeAssetName(""))
}

func TestXORTransformIsSymmetric(t *testing.T) {
	data := []byte("automation estimating payload")
	want := append([]byte(nil), data...)
	xorTransform(data)
	assert.NotEqual(t, want, data)
	xorTransform(data)
	assert.Equal(t, want, data)
}

func TestSaveWritesObfuscatedArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.m8")
	require.NoError(t, Save(path, sampleProject(t), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// A plain zip starts with "PK"; the transform must hide that.
	require.Greater(t, len(raw), 2)
	assert.NotEqual(t, []byte("PK"), raw[:2])
	xorTransform(raw)
	assert.Equal(t, []byte("PK"), raw[:2])
}

func TestRoundTripPreservesProject(t *testing.T) {
	p := sampleProject(t)
	path := filepath.Join(t.TempDir(), "job.m8")
	require.NoError(t, Save(path, p, nil))

	loaded, assets, err := Load(path, template.NewCatalog(nil))
	require.NoError(t, err)
	assert.Empty(t, assets)

	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.ProjectUUID, loaded.ProjectUUID)
	assert.Equal(t, p.NextID, loaded.NextID)
	assert.Equal(t, p.Estimator, loaded.Estimator)
	assert.Equal(t, p.Settings, loaded.Settings)
	assert.Equal(t, p.CustomHourLines, loaded.CustomHourLines)
	assert.Equal(t, p.OverlayNodes, loaded.OverlayNodes)
	assert.Equal(t, p.OverlayLines, loaded.OverlayLines)
	require.Len(t, loaded.Objects, len(p.Objects))
	for i, obj := range p.Objects {
		assert.Equal(t, *obj, *loaded.Objects[i])
	}
}

func TestRoundTripCarriesAssets(t *testing.T) {
	p := sampleProject(t)
	p.OverviewImage = "site photo.png"
	p.OverlayPDF = "floor/1.pdf"
	assets := Assets{
		"site photo.png": []byte{0x89, 0x50, 0x4e, 0x47},
		"floor/1.pdf":    []byte("%PDF-1.4"),
	}

	path := filepath.Join(t.TempDir(), "job.m8")
	require.NoError(t, Save(path, p, assets))

	_, got, err := Load(path, template.NewCatalog(nil))
	require.NoError(t, err)
	assert.Equal(t, assets["site photo.png"], got["site photo.png"])
	assert.Equal(t, assets["floor/1.pdf"], got["floor/1.pdf"])
}

func TestLoadToleratesMissingAsset(t *testing.T) {
	p := sampleProject(t)
	p.OverviewImage = "photo.png" // referenced but never supplied

	path := filepath.Join(t.TempDir(), "job.m8")
	require.NoError(t, Save(path, p, nil))

	loaded, assets, err := Load(path, template.NewCatalog(nil))
	require.NoError(t, err)
	assert.Equal(t, "photo.png", loaded.OverviewImage)
	assert.NotContains(t, assets, "photo.png")
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.m8")
	require.NoError(t, os.WriteFile(path, []byte("not an archive at all"), 0o644))

	_, _, err := Load(path, template.NewCatalog(nil))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.m8"), template.NewCatalog(nil))
	assert.Error(t, err)
}

func TestRepairPrunesOrphanChains(t *testing.T) {
	p := sampleProject(t)
	eqID := p.Objects[2].ID
	// Detach the controller; the equipment under it becomes transitively
	// orphaned and its overlay token must go too.
	missing := uint64(9999)
	p.Objects[1].ParentID = &missing

	require.NoError(t, Repair(p, nil))
	require.Len(t, p.Objects, 1)
	assert.Equal(t, domain.KindBuilding, p.Objects[0].Kind)
	for _, n := range p.OverlayNodes {
		assert.NotEqual(t, eqID, n.ObjectID)
	}
}

func TestRepairBumpsNextID(t *testing.T) {
	p := sampleProject(t)
	p.NextID = 1
	require.NoError(t, Repair(p, nil))

	var maxID uint64
	for _, obj := range p.Objects {
		if obj.ID > maxID {
			maxID = obj.ID
		}
	}
	assert.Equal(t, maxID+1, p.NextID)
}

func TestRepairRestoresEmptyProject(t *testing.T) {
	p := &domain.Project{}
	require.NoError(t, Repair(p, nil))

	require.Len(t, p.Objects, 1)
	assert.Equal(t, domain.KindBuilding, p.Objects[0].Kind)
	assert.Equal(t, uint64(2), p.NextID)
	assert.NotEqual(t, uuid.Nil, p.ProjectUUID)
}

func TestRepairResyncsTemplates(t *testing.T) {
	p := sampleProject(t)
	eq := p.Objects[2]
	eq.Equipment.TemplateName = "VAV Typical"

	catalog := template.NewCatalog(template.SeedTemplates())
	require.NoError(t, Repair(p, catalog))

	g := graph.New(p)
	points := g.PointChildren(eq.ID)
	assert.Equal(t, len(catalog.Find("VAV Typical").Points), len(points))
}

func TestRepairNormalizesVariants(t *testing.T) {
	p := domain.NewProject()
	p.Objects = append(p.Objects, &domain.ObjectNode{
		ID: 5, ParentID: &p.Objects[0].ID, Kind: domain.KindController,
	})
	p.NextID = 6

	require.NoError(t, Repair(p, nil))
	require.NotNil(t, p.Objects[1].Controller)
}
