// Package session is the application layer: it owns the live project, the
// graph indexes, the overlay edit log, and the business rules the raw graph
// deliberately leaves out (root protection, selection fallback, save
// orchestration).
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/automate-controls/basstudio/internal/codec"
	"github.com/automate-controls/basstudio/internal/config"
	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/estimate"
	"github.com/automate-controls/basstudio/internal/graph"
	"github.com/automate-controls/basstudio/internal/overlay"
	"github.com/automate-controls/basstudio/internal/template"
)

// ErrRootProtected is returned when deleting the sole root Building. The
// graph itself would allow the removal; the business rule refuses it.
var ErrRootProtected = errors.New("the last building cannot be deleted")

// ErrNotPlaceable is returned when placing an overlay token for a kind
// other than Controller or Equipment.
var ErrNotPlaceable = errors.New("only controllers and equipment can be placed on the overlay")

// Session wires the core packages together around one open project. The
// mutex serializes save, load, and autosave; everything else is driven from
// a single goroutine.
type Session struct {
	saveMu sync.Mutex

	cfg     *config.Config
	catalog *template.Catalog

	project *domain.Project
	graph   *graph.Graph
	editLog *overlay.EditLog
	assets  codec.Assets

	path      string
	selection uint64
	status    string
	dirty     bool
	lastSave  time.Time
}

// New starts a session on a fresh default project.
func New(cfg *config.Config, catalog *template.Catalog) *Session {
	s := &Session{
		cfg:     cfg,
		catalog: catalog,
		editLog: overlay.NewEditLog(),
		assets:  make(codec.Assets),
	}
	s.adopt(domain.NewProject())
	if cfg != nil {
		s.project.Settings.CompanyName = cfg.CompanyName
		if cfg.AutosaveMinutes > 0 {
			s.project.Settings.AutosaveMinutes = cfg.AutosaveMinutes
		}
	}
	return s
}

func (s *Session) adopt(p *domain.Project) {
	s.project = p
	s.graph = graph.New(p)
	s.editLog.Clear()
	s.selection = 0
	s.ensureSelection()
}

func (s *Session) Project() *domain.Project   { return s.project }
func (s *Session) Graph() *graph.Graph        { return s.graph }
func (s *Session) Catalog() *template.Catalog { return s.catalog }
func (s *Session) Path() string               { return s.path }
func (s *Session) Dirty() bool                { return s.dirty }
func (s *Session) Status() string             { return s.status }

// Selection returns the selected node, never nil while the project has any
// objects.
func (s *Session) Selection() *domain.ObjectNode {
	s.ensureSelection()
	return s.graph.Get(s.selection)
}

// Select makes the given node current.
func (s *Session) Select(id uint64) error {
	if s.graph.Get(id) == nil {
		return fmt.Errorf("selecting object %d: %w", id, graph.ErrObjectNotFound)
	}
	s.selection = id
	return nil
}

// ensureSelection falls back to the first object when the selected one is
// gone, mirroring what deletion and load repair require.
func (s *Session) ensureSelection() {
	if s.graph.Get(s.selection) != nil {
		return
	}
	if len(s.project.Objects) > 0 {
		s.selection = s.project.Objects[0].ID
	}
}

func (s *Session) setStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
}

// AddObject creates a node, selects it, and marks the project dirty.
func (s *Session) AddObject(kind domain.ObjectKind, parentID *uint64) (*domain.ObjectNode, error) {
	node, err := s.graph.AddNode(kind, parentID)
	if err != nil {
		return nil, err
	}
	s.selection = node.ID
	s.dirty = true
	s.setStatus("Added %s #%d", kind.Label(), node.ID)
	return node, nil
}

// CanDelete reports whether deleting the node is allowed, with the refusal
// reason when it is not. The sole remaining Building is protected even
// though the graph could remove it.
func (s *Session) CanDelete(id uint64) (bool, error) {
	node := s.graph.Get(id)
	if node == nil {
		return false, graph.ErrObjectNotFound
	}
	if node.Kind == domain.KindBuilding && s.project.CountByKind()[domain.KindBuilding] == 1 {
		return false, ErrRootProtected
	}
	return true, nil
}

// Delete removes the subtree rooted at id, then repairs the selection.
func (s *Session) Delete(id uint64) error {
	if ok, err := s.CanDelete(id); !ok {
		return err
	}
	removed := s.graph.RemoveSubtree(id)
	s.dirty = true
	s.ensureSelection()
	s.setStatus("Removed %d object(s)", len(removed))
	return nil
}

// Rename sets the node's display name.
func (s *Session) Rename(id uint64, name string) error {
	node := s.graph.Get(id)
	if node == nil {
		return graph.ErrObjectNotFound
	}
	node.Name = name
	s.dirty = true
	return nil
}

// Duplicate copies the single node and selects the copy.
func (s *Session) Duplicate(id uint64) (*domain.ObjectNode, error) {
	copyNode := s.graph.Duplicate(id)
	if copyNode == nil {
		return nil, graph.ErrObjectNotFound
	}
	s.selection = copyNode.ID
	s.dirty = true
	s.setStatus("Duplicated as #%d", copyNode.ID)
	return copyNode, nil
}

// Reparent moves a node under a new parent when legal.
func (s *Session) Reparent(id, newParentID uint64) error {
	if !s.graph.Reparent(id, newParentID) {
		return fmt.Errorf("moving object %d under %d: %w", id, newParentID, graph.ErrInvalidParent)
	}
	s.dirty = true
	s.setStatus("Moved #%d under #%d", id, newParentID)
	return nil
}

// AttachTemplate binds an equipment node to a catalog template and syncs it.
func (s *Session) AttachTemplate(id uint64, templateName string) error {
	node := s.graph.Get(id)
	if node == nil {
		return graph.ErrObjectNotFound
	}
	if node.Kind != domain.KindEquipment || node.Equipment == nil {
		return fmt.Errorf("object %d is not equipment", id)
	}
	node.Equipment.TemplateName = templateName
	if _, err := template.SyncEquipment(s.graph, s.catalog, id); err != nil {
		return err
	}
	s.dirty = true
	s.setStatus("Attached template %q to #%d", templateName, id)
	return nil
}

// SetHoursOverride toggles the equipment's hour override and re-syncs, so
// clearing the override re-adopts the template's mode.
func (s *Session) SetHoursOverride(id uint64, on bool) error {
	node := s.graph.Get(id)
	if node == nil {
		return graph.ErrObjectNotFound
	}
	if node.Kind != domain.KindEquipment || node.Equipment == nil {
		return fmt.Errorf("object %d is not equipment", id)
	}
	node.Equipment.HoursOverride = on
	if _, err := template.SyncEquipment(s.graph, s.catalog, id); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Estimate computes the current hours breakdown.
func (s *Session) Estimate() estimate.Breakdown {
	return estimate.Estimate(s.project, s.catalog)
}

// ApplyRecommended clamps estimator and app settings to their recommended
// ranges.
func (s *Session) ApplyRecommended() {
	estimate.Recommend(&s.project.Estimator)
	estimate.RecommendAppSettings(&s.project.Settings)
	s.dirty = true
	s.setStatus("Applied recommended settings")
}

// PlaceToken places an overlay token for a Controller or Equipment node.
// The token id is allocated from the shared id counter.
func (s *Session) PlaceToken(objectID uint64, x, y float64) (*domain.OverlayNode, error) {
	node := s.graph.Get(objectID)
	if node == nil {
		return nil, graph.ErrObjectNotFound
	}
	if !node.Kind.Placeable() {
		return nil, ErrNotPlaceable
	}
	s.editLog.PushSnapshot(s.project)
	token := domain.OverlayNode{ID: s.project.NextID, ObjectID: objectID, X: x, Y: y}
	s.project.NextID++
	s.project.OverlayNodes = append(s.project.OverlayNodes, token)
	s.dirty = true
	return &s.project.OverlayNodes[len(s.project.OverlayNodes)-1], nil
}

// RemoveToken deletes one overlay token by its id.
func (s *Session) RemoveToken(tokenID uint64) bool {
	for i, n := range s.project.OverlayNodes {
		if n.ID == tokenID {
			s.editLog.PushSnapshot(s.project)
			s.project.OverlayNodes = append(s.project.OverlayNodes[:i], s.project.OverlayNodes[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// BeginRoute starts a line-routing gesture at the given canvas position.
func (s *Session) BeginRoute(x, y float64) {
	s.editLog.BeginRoute([2]float64{x, y})
}

// CompleteRoute finishes the gesture, appending the routed line.
func (s *Session) CompleteRoute(x, y float64) bool {
	if s.editLog.CompleteRoute(s.project, [2]float64{x, y}) {
		s.dirty = true
		return true
	}
	return false
}

// UndoOverlay undoes the last overlay edit.
func (s *Session) UndoOverlay() bool {
	if s.editLog.Undo(s.project) {
		s.dirty = true
		s.setStatus("Overlay undo")
		return true
	}
	s.setStatus("Nothing to undo")
	return false
}

// RedoOverlay redoes the last undone overlay edit.
func (s *Session) RedoOverlay() bool {
	if s.editLog.Redo(s.project) {
		s.dirty = true
		s.setStatus("Overlay redo")
		return true
	}
	s.setStatus("Nothing to redo")
	return false
}

// SetOverviewImage attaches the overview image asset under its sanitized
// name.
func (s *Session) SetOverviewImage(name string, data []byte) {
	s.project.OverviewImage = codec.SanitizeAssetName(name)
	s.assets[s.project.OverviewImage] = data
	s.dirty = true
}

// SetOverlayPDF attaches the overlay PDF asset under its sanitized name.
func (s *Session) SetOverlayPDF(name string, data []byte) {
	s.project.OverlayPDF = codec.SanitizeAssetName(name)
	s.assets[s.project.OverlayPDF] = data
	s.dirty = true
}

// Asset returns the bytes for a referenced asset name, if loaded.
func (s *Session) Asset(name string) ([]byte, bool) {
	data, ok := s.assets[name]
	return data, ok
}

// QualityPass applies the quality-of-life fixes in one sweep: recommended
// clamps, blank equipment tags filled as {type|EQ}-{id}, and blank
// equipment/point names filled from their tag or kind. Returns the number
// of objects touched.
func (s *Session) QualityPass() int {
	estimate.Recommend(&s.project.Estimator)
	estimate.RecommendAppSettings(&s.project.Settings)

	fixed := 0
	for _, obj := range s.project.Objects {
		changed := false
		switch obj.Kind {
		case domain.KindEquipment:
			if obj.Equipment == nil {
				break
			}
			if strings.TrimSpace(obj.Equipment.Tag) == "" {
				eqType := strings.TrimSpace(obj.Equipment.EquipmentType)
				if eqType == "" {
					eqType = "EQ"
				}
				obj.Equipment.Tag = fmt.Sprintf("%s-%d", eqType, obj.ID)
				changed = true
			}
			if strings.TrimSpace(obj.Name) == "" {
				obj.Name = obj.Equipment.Tag
				changed = true
			}
		case domain.KindPoint:
			if strings.TrimSpace(obj.Name) == "" {
				obj.Name = fmt.Sprintf("Point %d", obj.ID)
				changed = true
			}
		}
		if changed {
			fixed++
		}
	}
	if fixed > 0 {
		s.dirty = true
	}
	s.setStatus("Quality pass fixed %d object(s)", fixed)
	return fixed
}

// SaveAs writes the project to path and remembers it for later saves.
func (s *Session) SaveAs(path string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := codec.Save(path, s.project, s.assets); err != nil {
		return err
	}
	s.path = path
	s.dirty = false
	s.lastSave = time.Now()
	s.setStatus("Saved %s", filepath.Base(path))
	return nil
}

// Save writes to the last-used path.
func (s *Session) Save() error {
	if s.path == "" {
		return errors.New("project has no file path yet, use save-as")
	}
	return s.SaveAs(s.path)
}

// Load replaces the session's project with the one at path. On failure the
// current project is left untouched.
func (s *Session) Load(path string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	p, assets, err := codec.Load(path, s.catalog)
	if err != nil {
		return err
	}
	s.adopt(p)
	s.assets = assets
	s.path = path
	s.dirty = false
	s.lastSave = time.Now()
	s.setStatus("Loaded %s", filepath.Base(path))
	return nil
}

// AutosavePath resolves where an autosave would go: the last-used path, or
// a per-project fallback in the workspace autosave dir. Empty means no path
// resolves.
func (s *Session) AutosavePath() string {
	if s.path != "" {
		return s.path
	}
	if s.cfg == nil || s.cfg.AutosaveDir == "" {
		return ""
	}
	return filepath.Join(s.cfg.AutosaveDir, s.project.ProjectUUID.String()+".m8")
}

// Autosave saves when the project is dirty and the configured interval has
// elapsed. A skip is reported through the status line, never as an error;
// returns whether a save happened.
func (s *Session) Autosave(now time.Time) (bool, error) {
	if !s.dirty {
		return false, nil
	}
	interval := time.Duration(max(s.project.Settings.AutosaveMinutes, 1)) * time.Minute
	if !s.lastSave.IsZero() && now.Sub(s.lastSave) < interval {
		return false, nil
	}
	path := s.AutosavePath()
	if path == "" {
		s.setStatus("Autosave skipped: no save path")
		return false, nil
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := codec.Save(path, s.project, s.assets); err != nil {
		return false, fmt.Errorf("autosaving: %w", err)
	}
	s.dirty = false
	s.lastSave = now
	s.setStatus("Autosaved %s", filepath.Base(path))
	return true, nil
}

// Search returns the objects matching the query, in tree order.
func (s *Session) Search(query string) []*domain.ObjectNode {
	var out []*domain.ObjectNode
	for _, obj := range s.project.Objects {
		if obj.Matches(query) {
			out = append(out, obj)
		}
	}
	return out
}
