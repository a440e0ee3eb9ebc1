package models

import (
	"testing"
	"time"
)

func TestTenantHasCapability(t *testing.T) {
	t.Run("NoBlocks", func(t *testing.T) {
		tenant := NewTenant("uid", "Artist")
		for _, source := range []string{"discogs", "soundcloud", "songkick"} {
			if tenant.HasCapability(source) {
				t.Errorf("tenant without blocks should lack %s", source)
			}
		}
	})

	t.Run("CompleteBlocks", func(t *testing.T) {
		tenant := NewTenant("uid", "Artist")
		tenant.SetDiscogs(&DiscogsAuth{ArtistID: 1, Token: "tok"})
		tenant.SetSoundCloud(&SoundCloudAuth{UserID: "u"})
		tenant.SetSongkick(&SongkickAuth{ArtistID: 2})

		for _, source := range []string{"discogs", "soundcloud", "songkick"} {
			if !tenant.HasCapability(source) {
				t.Errorf("tenant with complete blocks should have %s", source)
			}
		}
	})

	t.Run("IncompleteBlock", func(t *testing.T) {
		tenant := NewTenant("uid", "Artist")
		tenant.SetDiscogs(&DiscogsAuth{ArtistID: 1})

		if tenant.HasCapability("discogs") {
			t.Error("a discogs block without a token must not grant the capability")
		}
	})

	t.Run("UnknownSource", func(t *testing.T) {
		tenant := NewTenant("uid", "Artist")
		if tenant.HasCapability("bandcamp") {
			t.Error("unknown sources should never be granted")
		}
	})
}

func TestTenantValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tenant := NewTenant("uid", "Artist")
		if err := tenant.Validate(); err != nil {
			t.Errorf("expected valid tenant, got %v", err)
		}
	})

	t.Run("MissingUID", func(t *testing.T) {
		if err := NewTenant("", "Artist").Validate(); err == nil {
			t.Error("expected error for empty uid")
		}
	})

	t.Run("MissingArtistName", func(t *testing.T) {
		if err := NewTenant("uid", "").Validate(); err == nil {
			t.Error("expected error for empty artist name")
		}
	})

	t.Run("IncompleteCredentialBlock", func(t *testing.T) {
		tenant := NewTenant("uid", "Artist")
		tenant.SetSongkick(&SongkickAuth{})

		if err := tenant.Validate(); err == nil {
			t.Error("expected error for incomplete songkick block")
		}
	})
}

func TestCachePolicyTTLFor(t *testing.T) {
	fallback := time.Hour

	t.Run("ConfiguredEntry", func(t *testing.T) {
		policy := CachePolicy{Use: true, TTL: map[string]int{"releases": 120}}
		if got := policy.TTLFor("releases", fallback); got != 2*time.Minute {
			t.Errorf("expected 2m, got %v", got)
		}
	})

	t.Run("UnsetEntry", func(t *testing.T) {
		policy := CachePolicy{Use: true}
		if got := policy.TTLFor("releases", fallback); got != fallback {
			t.Errorf("expected fallback, got %v", got)
		}
	})

	t.Run("NonPositiveEntry", func(t *testing.T) {
		policy := CachePolicy{Use: true, TTL: map[string]int{"releases": 0}}
		if got := policy.TTLFor("releases", fallback); got != fallback {
			t.Errorf("expected fallback for zero TTL, got %v", got)
		}
	})
}

func TestRunSummaryFailures(t *testing.T) {
	summary := RunSummary{
		Outcomes: []TenantOutcome{
			{TenantUID: "a", Success: true},
			{TenantUID: "b", Success: false, Err: "down"},
			{TenantUID: "c", Success: true},
		},
	}

	failures := summary.Failures()
	if len(failures) != 1 || failures[0].TenantUID != "b" {
		t.Errorf("unexpected failures: %+v", failures)
	}
}
