package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testTenant(uid string) *models.Tenant {
	tenant := models.NewTenant(uid, "Four Tet")
	tenant.SetDiscogs(&models.DiscogsAuth{ArtistID: 2184, Token: "tok"})
	tenant.SetSoundCloud(&models.SoundCloudAuth{UserID: "user-77"})
	return tenant
}

func TestTenantRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		tenant := testTenant("four-tet")

		if err := repo.Create(tenant); err != nil {
			t.Fatalf("failed to create tenant: %v", err)
		}

		if tenant.ID() == "" {
			t.Error("tenant ID should be set after creation")
		}
	})

	t.Run("CreateRejectsInvalid", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		tenant := models.NewTenant("", "")

		if err := repo.Create(tenant); err == nil {
			t.Error("expected validation error for empty uid")
		}
	})

	t.Run("GetByUID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		tenant := testTenant("four-tet")

		if err := repo.Create(tenant); err != nil {
			t.Fatalf("failed to create tenant: %v", err)
		}

		retrieved, err := repo.GetByUID("four-tet")
		if err != nil {
			t.Fatalf("failed to get tenant: %v", err)
		}

		if retrieved.ArtistName() != "Four Tet" {
			t.Errorf("expected artist name Four Tet, got %s", retrieved.ArtistName())
		}

		if !retrieved.HasCapability("discogs") {
			t.Error("discogs capability should survive a round trip")
		}
		if !retrieved.HasCapability("soundcloud") {
			t.Error("soundcloud capability should survive a round trip")
		}
		if retrieved.HasCapability("songkick") {
			t.Error("absent songkick block should not grant the capability")
		}
	})

	t.Run("GetByUIDNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)

		_, err := repo.GetByUID("missing")
		if !errors.Is(err, shared.ErrTenantNotFound) {
			t.Errorf("expected ErrTenantNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		tenant := testTenant("four-tet")

		if err := repo.Create(tenant); err != nil {
			t.Fatalf("failed to create tenant: %v", err)
		}

		tenant.SetSongkick(&models.SongkickAuth{ArtistID: 63366})
		tenant.SetPolicy(models.CachePolicy{Use: false})

		if err := repo.Update(tenant); err != nil {
			t.Fatalf("failed to update tenant: %v", err)
		}

		retrieved, err := repo.GetByUID("four-tet")
		if err != nil {
			t.Fatalf("failed to get tenant: %v", err)
		}

		if !retrieved.HasCapability("songkick") {
			t.Error("songkick capability should be present after update")
		}
		if retrieved.Policy().Use {
			t.Error("cache policy should be disabled after update")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		tenant := testTenant("four-tet")

		if err := repo.Create(tenant); err != nil {
			t.Fatalf("failed to create tenant: %v", err)
		}

		if err := repo.Delete(tenant.ID()); err != nil {
			t.Fatalf("failed to delete tenant: %v", err)
		}

		if _, err := repo.GetByUID("four-tet"); !errors.Is(err, shared.ErrTenantNotFound) {
			t.Errorf("expected ErrTenantNotFound after delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		for _, uid := range []string{"a", "b", "c"} {
			tenant := models.NewTenant(uid, "Artist "+uid)
			if err := repo.Create(tenant); err != nil {
				t.Fatalf("failed to create tenant %s: %v", uid, err)
			}
		}

		tenants, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list tenants: %v", err)
		}

		if len(tenants) != 3 {
			t.Errorf("expected 3 tenants, got %d", len(tenants))
		}
	})

	t.Run("ListExcludesDeleted", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTenantRepository(db)
		keep := models.NewTenant("keep", "Keeper")
		drop := models.NewTenant("drop", "Dropper")
		for _, tenant := range []*models.Tenant{keep, drop} {
			if err := repo.Create(tenant); err != nil {
				t.Fatalf("failed to create tenant: %v", err)
			}
		}

		if err := repo.Delete(drop.ID()); err != nil {
			t.Fatalf("failed to delete tenant: %v", err)
		}

		tenants, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list tenants: %v", err)
		}

		if len(tenants) != 1 || tenants[0].UID() != "keep" {
			t.Errorf("expected only the surviving tenant, got %d", len(tenants))
		}
	})
}

func TestSnapshotRepository(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	t.Run("UpsertAndSelect", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		want := []payload{{Title: "Rounds", Count: 10}}

		if err := repo.Upsert("four-tet", "releases", want); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}

		var got []payload
		if err := repo.Select("four-tet", "releases", &got); err != nil {
			t.Fatalf("failed to select snapshot: %v", err)
		}

		if len(got) != 1 || got[0].Title != "Rounds" || got[0].Count != 10 {
			t.Errorf("unexpected snapshot content: %+v", got)
		}
	})

	t.Run("UpsertOverwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		if err := repo.Upsert("four-tet", "releases", []payload{{Title: "Rounds"}}); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}
		if err := repo.Upsert("four-tet", "releases", []payload{{Title: "New Energy"}, {Title: "Sixteen Oceans"}}); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}

		var got []payload
		if err := repo.Select("four-tet", "releases", &got); err != nil {
			t.Fatalf("failed to select snapshot: %v", err)
		}

		if len(got) != 2 || got[0].Title != "New Energy" {
			t.Errorf("expected overwritten content, got %+v", got)
		}
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		if err := repo.Upsert("four-tet", "releases", []payload{{Title: "Rounds"}}); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}
		if err := repo.Upsert("four-tet", "events", []payload{{Title: "Fabric"}}); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}
		if err := repo.Upsert("caribou", "releases", []payload{{Title: "Suddenly"}}); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}

		var got []payload
		if err := repo.Select("four-tet", "releases", &got); err != nil {
			t.Fatalf("failed to select snapshot: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Rounds" {
			t.Errorf("expected four-tet releases untouched, got %+v", got)
		}
	})

	t.Run("SelectNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		var got []payload
		err := repo.Select("missing", "releases", &got)
		if !errors.Is(err, shared.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("UpdatedAt", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		if _, err := repo.UpdatedAt("four-tet", "releases"); !errors.Is(err, shared.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound before write, got %v", err)
		}

		if err := repo.Upsert("four-tet", "releases", []payload{}); err != nil {
			t.Fatalf("failed to upsert snapshot: %v", err)
		}

		ts, err := repo.UpdatedAt("four-tet", "releases")
		if err != nil {
			t.Fatalf("failed to read updated_at: %v", err)
		}
		if ts.IsZero() {
			t.Error("updated_at should be set after upsert")
		}
	})
}
