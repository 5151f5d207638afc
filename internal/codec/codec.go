// Package codec persists the project aggregate as a single container file:
// a zip archive holding the JSON payload plus any binary assets, with the
// whole archive run through a symmetric byte transform. The transform is
// obfuscation, not encryption; applying it twice is the identity.
package codec

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/graph"
	"github.com/automate-controls/basstudio/internal/template"
)

const (
	payloadEntry = "project.json"
	assetPrefix  = "assets/"

	xorKey byte = 0xA5
)

// Assets maps the payload's asset filenames to their bytes. The payload
// itself never embeds asset bytes; it references assets by name only.
type Assets map[string][]byte

// SanitizeAssetName maps any character outside [A-Za-z0-9._-] to '_' so the
// name is safe as an archive entry. An empty result falls back to a generic
// name.
func SanitizeAssetName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "asset.bin"
	}
	return string(out)
}

func xorTransform(b []byte) {
	for i := range b {
		b[i] ^= xorKey
	}
}

// Save writes the project and its present assets to path. Assets are looked
// up by the names the payload references; a referenced name missing from
// assets is simply not written.
func Save(path string, p *domain.Project, assets Assets) error {
	payload, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project payload: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(payloadEntry)
	if err != nil {
		return fmt.Errorf("creating payload entry: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing payload entry: %w", err)
	}

	for _, name := range referencedAssets(p) {
		data, ok := assets[name]
		if !ok {
			continue
		}
		w, err := zw.Create(assetPrefix + SanitizeAssetName(name))
		if err != nil {
			return fmt.Errorf("creating asset entry %q: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing asset entry %q: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}

	raw := buf.Bytes()
	xorTransform(raw)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}

// Load reads a project file, reverses the byte transform, parses the
// archive, and runs the repair pass against the given catalog. Referenced
// assets missing from the archive are dropped silently; the load still
// succeeds. Any error leaves the caller's state untouched since nothing is
// mutated in place.
func Load(path string, catalog *template.Catalog) (*domain.Project, Assets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading project file: %w", err)
	}
	xorTransform(raw)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing project container: %w", err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	pf, ok := entries[payloadEntry]
	if !ok {
		return nil, nil, fmt.Errorf("project container has no %s entry", payloadEntry)
	}
	payload, err := readEntry(pf)
	if err != nil {
		return nil, nil, fmt.Errorf("reading payload entry: %w", err)
	}

	// Decode over a defaults-populated shell so fields absent from older
	// payloads keep their defaults instead of going zero.
	p := &domain.Project{
		Estimator: domain.DefaultEstimatorSettings(),
		Settings:  domain.DefaultAppSettings(),
	}
	if err := json.Unmarshal(payload, p); err != nil {
		return nil, nil, fmt.Errorf("decoding project payload: %w", err)
	}

	assets := make(Assets)
	for _, name := range referencedAssets(p) {
		f, ok := entries[assetPrefix+SanitizeAssetName(name)]
		if !ok {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, nil, fmt.Errorf("reading asset entry %q: %w", name, err)
		}
		assets[name] = data
	}

	if err := Repair(p, catalog); err != nil {
		return nil, nil, err
	}
	return p, assets, nil
}

func referencedAssets(p *domain.Project) []string {
	var names []string
	if p.OverviewImage != "" {
		names = append(names, p.OverviewImage)
	}
	if p.OverlayPDF != "" {
		names = append(names, p.OverlayPDF)
	}
	return names
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Repair restores the structural invariants a decoded project may have
// lost: variant payloads matching kinds, no orphaned nodes or overlay
// references, a monotonic id counter, template-synced equipment, and a
// stable project identity.
func Repair(p *domain.Project, catalog *template.Catalog) error {
	for _, obj := range p.Objects {
		obj.Normalize()
	}

	pruneOrphans(p)

	if len(p.Objects) == 0 {
		root := domain.NewObjectNode(1, domain.KindBuilding)
		root.Name = "HQ Building"
		p.Objects = []*domain.ObjectNode{root}
	}

	var maxID uint64
	for _, obj := range p.Objects {
		if obj.ID > maxID {
			maxID = obj.ID
		}
	}
	if p.NextID <= maxID {
		p.NextID = maxID + 1
	}

	if p.ProjectUUID == uuid.Nil {
		p.ProjectUUID = uuid.New()
	}

	if catalog != nil {
		if _, err := template.SyncAll(graph.New(p), catalog); err != nil {
			return fmt.Errorf("re-syncing templates: %w", err)
		}
	}
	return nil
}

// pruneOrphans drops nodes whose parent chain no longer reaches a root,
// then drops overlay tokens pointing at removed objects.
func pruneOrphans(p *domain.Project) {
	ids := make(map[uint64]bool, len(p.Objects))
	for _, obj := range p.Objects {
		ids[obj.ID] = true
	}

	for {
		kept := p.Objects[:0]
		removed := false
		for _, obj := range p.Objects {
			if obj.ParentID != nil && !ids[*obj.ParentID] {
				delete(ids, obj.ID)
				removed = true
				continue
			}
			kept = append(kept, obj)
		}
		p.Objects = kept
		if !removed {
			break
		}
	}

	overlay := p.OverlayNodes[:0]
	for _, n := range p.OverlayNodes {
		if ids[n.ObjectID] {
			overlay = append(overlay, n)
		}
	}
	p.OverlayNodes = overlay
}
