package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automate-controls/basstudio/internal/codec"
	"github.com/automate-controls/basstudio/internal/config"
	"github.com/automate-controls/basstudio/internal/store"
	"github.com/automate-controls/basstudio/internal/template"
	"github.com/automate-controls/basstudio/internal/testutil"
)

type cliFixture struct {
	app *App
	out *bytes.Buffer
	dir string
}

func newFixture(t *testing.T) *cliFixture {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.TemplatesPath = filepath.Join(dir, "templates.json")
	cfg.RecentsPath = filepath.Join(dir, "recents.db")
	cfg.AutosaveDir = filepath.Join(dir, "autosave")

	templateStore := template.NewStore(cfg.TemplatesPath)
	catalog, err := templateStore.Load()
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app := &App{
		Config:        cfg,
		Catalog:       catalog,
		TemplateStore: templateStore,
		Recents:       store.NewSQLiteRecentsRepo(testutil.NewTestDB(t)),
		Out:           out,
	}
	return &cliFixture{app: app, out: out, dir: dir}
}

func (f *cliFixture) run(t *testing.T, args ...string) error {
	t.Helper()
	f.out.Reset()
	root := NewRootCmd(f.app)
	root.SetArgs(args)
	root.SetOut(f.out)
	root.SetErr(f.out)
	return root.Execute()
}

func (f *cliFixture) projectFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(f.dir, "job.m8")
	require.NoError(t, f.run(t, "new", path, "--name", "Clinic Retrofit"))
	return path
}

func TestNewCmd_CreatesProjectFile(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)

	_, err := os.Stat(path)
	require.NoError(t, err)

	p, _, err := codec.Load(path, f.app.Catalog)
	require.NoError(t, err)
	assert.Equal(t, "Clinic Retrofit", p.Name)
}

func TestObjectAddAndShow(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)

	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "DDC-1"))
	require.NoError(t, f.run(t, "object", "add", path, "Equipment", "--parent", "2", "--name", "AHU-1"))

	require.NoError(t, f.run(t, "show", path))
	assert.Contains(t, f.out.String(), "DDC-1")
	assert.Contains(t, f.out.String(), "AHU-1")
	assert.Contains(t, f.out.String(), "Grand total")
}

func TestObjectAdd_InvalidParentFails(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)

	err := f.run(t, "object", "add", path, "Point", "--parent", "1")
	assert.Error(t, err)
}

func TestObjectRemove_RootRefused(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)

	err := f.run(t, "object", "remove", path, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building")
}

func TestObjectAttach_SyncsTemplatePoints(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1"))
	require.NoError(t, f.run(t, "object", "add", path, "Equipment", "--parent", "2"))

	require.NoError(t, f.run(t, "object", "attach", path, "3", "VAV Typical"))

	p, _, err := codec.Load(path, f.app.Catalog)
	require.NoError(t, err)
	eq := p.FindObject(3)
	require.NotNil(t, eq)
	assert.Equal(t, "VAV", eq.Equipment.EquipmentType)

	points := 0
	for _, obj := range p.Objects {
		if obj.ParentID != nil && *obj.ParentID == 3 {
			points++
		}
	}
	assert.Equal(t, len(f.app.Catalog.Find("VAV Typical").Points), points)
}

func TestObjectAttach_UnknownTemplate(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	err := f.run(t, "object", "attach", path, "1", "No Such Template")
	assert.Error(t, err)
}

func TestEstimateCmd(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1"))

	require.NoError(t, f.run(t, "estimate", path))
	assert.Contains(t, f.out.String(), "7.0") // one controller baseline
	assert.Contains(t, f.out.String(), "factors")
}

func TestEstimateCmd_Recommended(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)

	require.NoError(t, f.run(t, "estimate", path, "--recommended"))
	p, _, err := codec.Load(path, f.app.Catalog)
	require.NoError(t, err)
	// Defaults are inside the recommended ranges and stay put.
	assert.Equal(t, 1.0, p.Estimator.ComplexityFactor)
}

func TestQualityCmd(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1"))
	require.NoError(t, f.run(t, "object", "add", path, "Equipment", "--parent", "2", "--name", "AHU-1"))

	require.NoError(t, f.run(t, "quality", path))
	assert.Contains(t, f.out.String(), "Fixed")

	p, _, err := codec.Load(path, f.app.Catalog)
	require.NoError(t, err)
	assert.NotEmpty(t, p.FindObject(3).Equipment.Tag)
}

func TestExportCmd_WritesReport(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	reportPath := filepath.Join(f.dir, "report.md")

	require.NoError(t, f.run(t, "export", path, "-o", reportPath))
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Clinic Retrofit")
	assert.Contains(t, string(data), "## Hours Summary")
}

func TestOverlayPlaceAndList(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "DDC-1"))

	require.NoError(t, f.run(t, "overlay", "place", path, "2", "--x", "10", "--y", "20"))
	require.NoError(t, f.run(t, "overlay", "route", path,
		"--from-x", "1", "--from-y", "1", "--to-x", "5", "--to-y", "5"))

	require.NoError(t, f.run(t, "overlay", "list", path))
	assert.Contains(t, f.out.String(), "DDC-1")
	assert.Contains(t, f.out.String(), "line (1.0, 1.0) -> (5.0, 5.0)")
}

func TestOverlayPlace_BuildingRefused(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	err := f.run(t, "overlay", "place", path, "1")
	assert.Error(t, err)
}

func TestOverviewCmd(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "overview", path))
	assert.Contains(t, f.out.String(), "PROJECT OVERVIEW")
}

func TestTemplateCommands(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, "template", "list"))
	assert.Contains(t, f.out.String(), "VAV Typical")

	require.NoError(t, f.run(t, "template", "add", "RTU Small", "--type", "RTU",
		"--eng", "3", "--gfx", "1.5", "--cx", "2"))
	require.NotNil(t, f.app.Catalog.Find("RTU Small"))

	require.NoError(t, f.run(t, "template", "show", "RTU Small"))
	assert.Contains(t, f.out.String(), "RTU")

	require.NoError(t, f.run(t, "template", "validate"))

	require.NoError(t, f.run(t, "template", "remove", "RTU Small"))
	assert.Nil(t, f.app.Catalog.Find("RTU Small"))

	err := f.run(t, "template", "remove", "RTU Small")
	assert.Error(t, err)
}

func TestRecentCmd_TracksOpens(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "show", path))

	require.NoError(t, f.run(t, "recent", "list"))
	assert.Contains(t, f.out.String(), "Clinic Retrofit")

	entries, err := f.app.Recents.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, f.run(t, "recent", "forget", entries[0].UUID.String()))
	entries, err = f.app.Recents.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSearchCmd(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "East Wing DDC"))

	require.NoError(t, f.run(t, "object", "search", path, "east"))
	assert.Contains(t, f.out.String(), "East Wing DDC")

	require.NoError(t, f.run(t, "object", "search", path, "zzz"))
	assert.Contains(t, f.out.String(), "No matches")
}

func TestMoveAndDuplicate(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "DDC-1"))
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "DDC-2"))
	require.NoError(t, f.run(t, "object", "add", path, "Equipment", "--parent", "2", "--name", "AHU-1"))

	require.NoError(t, f.run(t, "object", "move", path, "4", "3"))
	require.NoError(t, f.run(t, "object", "duplicate", path, "4"))
	assert.Contains(t, f.out.String(), "AHU-1 Copy")

	p, _, err := codec.Load(path, f.app.Catalog)
	require.NoError(t, err)
	moved := p.FindObject(4)
	require.NotNil(t, moved)
	assert.Equal(t, uint64(3), *moved.ParentID)
}

func TestRenameCmd(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "rename", path, "1", "Main Campus"))

	p, _, err := codec.Load(path, f.app.Catalog)
	require.NoError(t, err)
	assert.Equal(t, "Main Campus", p.FindObject(1).Name)
}

func TestShow_MissingFile(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, "show", filepath.Join(f.dir, "absent.m8"))
	assert.Error(t, err)
}

func TestBrowseModel_FilterAndCursor(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "DDC-East"))
	require.NoError(t, f.run(t, "object", "add", path, "Controller", "--parent", "1", "--name", "DDC-West"))

	s, err := f.app.openSession(path)
	require.NoError(t, err)
	m := newBrowseModel(s)
	require.Len(t, m.rows, 3)

	m.search.SetValue("west")
	m.rebuildRows()
	// The matching controller plus its ancestor building stay visible.
	require.Len(t, m.rows, 2)
	assert.Equal(t, "DDC-West", m.rows[1].node.Name)

	view := m.View()
	assert.Contains(t, view, "DDC-West")
	assert.NotContains(t, view, "DDC-East")
}

func TestObjectAdd_UnknownKind(t *testing.T) {
	f := newFixture(t)
	path := f.projectFile(t)
	err := f.run(t, "object", "add", path, "Router")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown object kind")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = parseID("x")
	assert.Error(t, err)
	_, err = parseID(fmt.Sprintf("%d0", uint64(1<<63)))
	assert.Error(t, err)
}
