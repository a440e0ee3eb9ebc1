package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// TenantRepository implements [models.Repository] for [models.Tenant] persistence.
//
// Credential blocks are serialized to JSON columns; an absent block is stored
// as NULL so capability gating survives round trips.
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new TenantRepository with the given database connection
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a new tenant into the database with a generated ID
func (r *TenantRepository) Create(tenant *models.Tenant) error {
	if err := tenant.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	tenant.SetID(id)

	discogs, soundcloud, songkick, policy, err := marshalTenantBlocks(tenant)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tenants (id, uid, artist_name, discogs_auth, soundcloud_auth, songkick_auth, cache_policy, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, tenant.UID(), tenant.ArtistName(),
		discogs, soundcloud, songkick, policy, tenant.CreatedAt(), tenant.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}

	return nil
}

// Get retrieves a tenant by ID, excluding soft-deleted tenants
func (r *TenantRepository) Get(id string) (*models.Tenant, error) {
	query := tenantSelect + " WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetByUID retrieves a tenant by its external uid.
func (r *TenantRepository) GetByUID(uid string) (*models.Tenant, error) {
	query := tenantSelect + " WHERE uid = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, uid), uid)
}

// Update modifies an existing tenant in the database
func (r *TenantRepository) Update(tenant *models.Tenant) error {
	if err := tenant.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	discogs, soundcloud, songkick, policy, err := marshalTenantBlocks(tenant)
	if err != nil {
		return err
	}

	now := time.Now()
	tenant.SetUpdatedAt(now)

	query := `
		UPDATE tenants
		SET artist_name = ?, discogs_auth = ?, soundcloud_auth = ?, songkick_auth = ?, cache_policy = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, tenant.ArtistName(), discogs, soundcloud, songkick, policy, now, tenant.ID())
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTenantNotFound, tenant.ID())
	}

	return nil
}

// Delete soft-deletes a tenant by ID
func (r *TenantRepository) Delete(id string) error {
	now := time.Now()

	result, err := r.db.Exec("UPDATE tenants SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTenantNotFound, id)
	}

	return nil
}

// List retrieves all non-deleted tenants. Criteria are unused for now.
func (r *TenantRepository) List(criteria map[string]any) ([]*models.Tenant, error) {
	query := tenantSelect + " WHERE deleted_at IS NULL ORDER BY created_at"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows.Scan)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenants: %w", err)
	}

	return tenants, nil
}

const tenantSelect = `
	SELECT id, uid, artist_name, discogs_auth, soundcloud_auth, songkick_auth, cache_policy, created_at, updated_at, deleted_at
	FROM tenants
`

// scanOne scans a single row, mapping sql.ErrNoRows to ErrTenantNotFound.
func (r *TenantRepository) scanOne(row *sql.Row, key string) (*models.Tenant, error) {
	tenant, err := scanTenant(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrTenantNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// scanTenant rebuilds a tenant from a row scan function.
func scanTenant(scan func(dest ...any) error) (*models.Tenant, error) {
	var (
		id         string
		uid        string
		artistName string
		discogs    sql.NullString
		soundcloud sql.NullString
		songkick   sql.NullString
		policy     string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := scan(&id, &uid, &artistName, &discogs, &soundcloud, &songkick, &policy, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenant: %w", err)
	}

	tenant := models.NewTenant(uid, artistName)
	tenant.SetID(id)
	tenant.SetCreatedAt(createdAt)
	tenant.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		tenant.SetDeletedAt(&deletedAt.Time)
	}

	if discogs.Valid && discogs.String != "" {
		var block models.DiscogsAuth
		if err := json.Unmarshal([]byte(discogs.String), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal discogs auth: %w", err)
		}
		tenant.SetDiscogs(&block)
	}
	if soundcloud.Valid && soundcloud.String != "" {
		var block models.SoundCloudAuth
		if err := json.Unmarshal([]byte(soundcloud.String), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal soundcloud auth: %w", err)
		}
		tenant.SetSoundCloud(&block)
	}
	if songkick.Valid && songkick.String != "" {
		var block models.SongkickAuth
		if err := json.Unmarshal([]byte(songkick.String), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal songkick auth: %w", err)
		}
		tenant.SetSongkick(&block)
	}

	var cachePolicy models.CachePolicy
	if policy != "" {
		if err := json.Unmarshal([]byte(policy), &cachePolicy); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cache policy: %w", err)
		}
	}
	tenant.SetPolicy(cachePolicy)

	return tenant, nil
}

// marshalTenantBlocks serializes the optional credential blocks and cache policy.
// Absent blocks become NULL columns.
func marshalTenantBlocks(tenant *models.Tenant) (discogs, soundcloud, songkick any, policy string, err error) {
	if tenant.Discogs() != nil {
		data, merr := json.Marshal(tenant.Discogs())
		if merr != nil {
			return nil, nil, nil, "", fmt.Errorf("failed to marshal discogs auth: %w", merr)
		}
		discogs = string(data)
	}
	if tenant.SoundCloud() != nil {
		data, merr := json.Marshal(tenant.SoundCloud())
		if merr != nil {
			return nil, nil, nil, "", fmt.Errorf("failed to marshal soundcloud auth: %w", merr)
		}
		soundcloud = string(data)
	}
	if tenant.Songkick() != nil {
		data, merr := json.Marshal(tenant.Songkick())
		if merr != nil {
			return nil, nil, nil, "", fmt.Errorf("failed to marshal songkick auth: %w", merr)
		}
		songkick = string(data)
	}

	data, merr := json.Marshal(tenant.Policy())
	if merr != nil {
		return nil, nil, nil, "", fmt.Errorf("failed to marshal cache policy: %w", merr)
	}

	return discogs, soundcloud, songkick, string(data), nil
}
