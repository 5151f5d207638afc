package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxRecents bounds the registry; older entries are pruned on Touch.
const maxRecents = 20

// RecentProject is one row of the recents registry. A project is identified
// by its stable UUID so renaming or moving the file updates the row in
// place.
type RecentProject struct {
	UUID     uuid.UUID
	Path     string
	Name     string
	OpenedAt time.Time
}

// SQLiteRecentsRepo stores recently opened projects in SQLite.
type SQLiteRecentsRepo struct {
	db *sql.DB
}

func NewSQLiteRecentsRepo(db *sql.DB) *SQLiteRecentsRepo {
	return &SQLiteRecentsRepo{db: db}
}

// Touch upserts the entry with a fresh timestamp and prunes the registry
// down to its cap.
func (r *SQLiteRecentsRepo) Touch(ctx context.Context, e RecentProject) error {
	if e.OpenedAt.IsZero() {
		e.OpenedAt = time.Now().UTC()
	}
	query := `INSERT INTO recent_projects (project_uuid, path, name, opened_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_uuid) DO UPDATE
		SET path = excluded.path, name = excluded.name, opened_at = excluded.opened_at`
	_, err := r.db.ExecContext(ctx, query,
		e.UUID.String(), e.Path, e.Name, e.OpenedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("touching recent project: %w", err)
	}

	prune := `DELETE FROM recent_projects WHERE project_uuid NOT IN (
		SELECT project_uuid FROM recent_projects ORDER BY opened_at DESC LIMIT ?)`
	if _, err := r.db.ExecContext(ctx, prune, maxRecents); err != nil {
		return fmt.Errorf("pruning recent projects: %w", err)
	}
	return nil
}

// List returns entries newest first, at most limit (all for limit <= 0).
func (r *SQLiteRecentsRepo) List(ctx context.Context, limit int) ([]RecentProject, error) {
	if limit <= 0 {
		limit = maxRecents
	}
	query := `SELECT project_uuid, path, name, opened_at
		FROM recent_projects ORDER BY opened_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent projects: %w", err)
	}
	defer rows.Close()

	var out []RecentProject
	for rows.Next() {
		var (
			e       RecentProject
			rawUUID string
			rawTime string
		)
		if err := rows.Scan(&rawUUID, &e.Path, &e.Name, &rawTime); err != nil {
			return nil, fmt.Errorf("scanning recent project: %w", err)
		}
		if e.UUID, err = uuid.Parse(rawUUID); err != nil {
			return nil, fmt.Errorf("parsing recent project uuid: %w", err)
		}
		if e.OpenedAt, err = time.Parse(time.RFC3339, rawTime); err != nil {
			return nil, fmt.Errorf("parsing recent project timestamp: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent projects: %w", err)
	}
	return out, nil
}

// Remove drops the entry for the given project, if present.
func (r *SQLiteRecentsRepo) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM recent_projects WHERE project_uuid = ?`, id.String()); err != nil {
		return fmt.Errorf("removing recent project: %w", err)
	}
	return nil
}
