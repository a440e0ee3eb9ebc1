package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tu "github.com/desertthunder/encore/internal/testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path == "" {
			t.Error("default database path should be set")
		}
		if config.Batch.NumWorkers <= 0 {
			t.Error("default worker count should be positive")
		}
		if config.Batch.Interval() <= 0 {
			t.Error("default batch interval should be positive")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[database]
path = "test.db"

[batch]
interval_minutes = 30
num_workers = 2
rate_limit = 5.0

[sources.discogs]
base_url = "https://api.example.com"
user_agent = "encore-test/1.0"

[alerts]
urls = ["discord://token@channel"]
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "test.db" {
			t.Errorf("unexpected database path: %s", config.Database.Path)
		}
		if config.Batch.IntervalMinutes != 30 || config.Batch.NumWorkers != 2 {
			t.Errorf("unexpected batch config: %+v", config.Batch)
		}
		if config.Sources.Discogs.UserAgent != "encore-test/1.0" {
			t.Errorf("unexpected discogs config: %+v", config.Sources.Discogs)
		}
		if len(config.Alerts.URLs) != 1 {
			t.Errorf("unexpected alerts config: %+v", config.Alerts)
		}
	})

	t.Run("LoadConfigMissingFile", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		tu.AssertFileExists(t, path)

		if _, err := LoadConfig(path); err != nil {
			t.Errorf("created config should be loadable: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})

	t.Run("IntervalDefault", func(t *testing.T) {
		batch := BatchConfig{}
		if batch.Interval() != 6*time.Hour {
			t.Errorf("expected six hour default, got %v", batch.Interval())
		}
	})
}

func TestNewDatabase(t *testing.T) {
	t.Run("AppliesPragmas", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "encore.db")

		db, err := NewDatabase(path)
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		var mode string
		if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("failed to read journal mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("expected wal journal mode, got %q", mode)
		}
	})

	t.Run("InMemory", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open in-memory database: %v", err)
		}
		db.Close()
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("generated IDs should not be empty")
	}
	if a == b {
		t.Error("generated IDs should be unique")
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"count": 3}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(compact) != `{"count":3}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("failed to marshal pretty: %v", err)
	}
	if len(pretty) <= len(compact) {
		t.Error("pretty output should be longer than compact")
	}
}
