package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/encore/internal/shared"
)

// SnapshotRepository stores the last successfully adapted value per
// (tenant, collection) pair.
//
// Upsert semantics are last-write-wins: the only writer for a key is that
// tenant's own refresh cycle, so no optimistic concurrency check is needed.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert overwrites the snapshot for (tenantUID, collection) with content.
// Content is serialized to JSON; the row is never partially written.
func (r *SnapshotRepository) Upsert(tenantUID, collection string, content any) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot content: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO snapshots (id, tenant_uid, collection, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_uid, collection)
		DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`

	_, err = r.db.Exec(query, shared.GenerateID(), tenantUID, collection, string(data), now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// Select retrieves the snapshot content for (tenantUID, collection) and
// unmarshals it into out. Returns [shared.ErrSnapshotNotFound] when no
// snapshot exists.
func (r *SnapshotRepository) Select(tenantUID, collection string, out any) error {
	query := `
		SELECT content FROM snapshots WHERE tenant_uid = ? AND collection = ?
	`

	var content string
	err := r.db.QueryRow(query, tenantUID, collection).Scan(&content)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s/%s", shared.ErrSnapshotNotFound, tenantUID, collection)
	}
	if err != nil {
		return fmt.Errorf("failed to query snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot content: %w", err)
	}

	return nil
}

// UpdatedAt returns when the snapshot for (tenantUID, collection) was last written.
func (r *SnapshotRepository) UpdatedAt(tenantUID, collection string) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow(
		"SELECT updated_at FROM snapshots WHERE tenant_uid = ? AND collection = ?",
		tenantUID, collection,
	).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("%w: %s/%s", shared.ErrSnapshotNotFound, tenantUID, collection)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return updatedAt, nil
}
