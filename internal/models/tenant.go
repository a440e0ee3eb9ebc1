package models

import (
	"fmt"
	"time"
)

// DiscogsAuth is the catalog source credential block for a tenant.
type DiscogsAuth struct {
	ArtistID int    `json:"artist_id"`
	Token    string `json:"token"`
}

// SoundCloudAuth is the streaming source credential block for a tenant.
type SoundCloudAuth struct {
	UserID string `json:"user_id"`
}

// SongkickAuth is the events source credential block for a tenant.
type SongkickAuth struct {
	ArtistID int `json:"artist_id"`
}

// CachePolicy controls whether and for how long a tenant's fetched collections
// are cached. TTL maps entry names ("releases", "tracks", "events") to seconds.
type CachePolicy struct {
	Use bool           `json:"use"`
	TTL map[string]int `json:"ttl,omitempty"`
}

// TTLFor returns the configured TTL for an entry, or fallback when unset.
func (p CachePolicy) TTLFor(entry string, fallback time.Duration) time.Duration {
	if secs, ok := p.TTL[entry]; ok && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// Tenant represents an account owning credentials for one or more external sources.
//
// Each credential block is optional. Presence of a block gates whether the
// matching provider may run for this tenant.
type Tenant struct {
	id         string
	uid        string
	artistName string
	discogs    *DiscogsAuth
	soundcloud *SoundCloudAuth
	songkick   *SongkickAuth
	policy     CachePolicy
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewTenant creates a tenant with the given uid and artist name.
// Credential blocks default to absent and are attached via the setters.
func NewTenant(uid, artistName string) *Tenant {
	now := time.Now()
	return &Tenant{
		uid:        uid,
		artistName: artistName,
		policy:     CachePolicy{Use: true},
		createdAt:  now,
		updatedAt:  now,
	}
}

func (t *Tenant) ID() string            { return t.id }
func (t *Tenant) UID() string           { return t.uid }
func (t *Tenant) ArtistName() string    { return t.artistName }
func (t *Tenant) CreatedAt() time.Time  { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time  { return t.updatedAt }
func (t *Tenant) DeletedAt() *time.Time { return t.deletedAt }

func (t *Tenant) Discogs() *DiscogsAuth       { return t.discogs }
func (t *Tenant) SoundCloud() *SoundCloudAuth { return t.soundcloud }
func (t *Tenant) Songkick() *SongkickAuth     { return t.songkick }
func (t *Tenant) Policy() CachePolicy         { return t.policy }

func (t *Tenant) SetID(id string)                   { t.id = id }
func (t *Tenant) SetUpdatedAt(ts time.Time)         { t.updatedAt = ts }
func (t *Tenant) SetCreatedAt(ts time.Time)         { t.createdAt = ts }
func (t *Tenant) SetDeletedAt(ts *time.Time)        { t.deletedAt = ts }
func (t *Tenant) SetDiscogs(a *DiscogsAuth)         { t.discogs = a }
func (t *Tenant) SetSoundCloud(a *SoundCloudAuth)   { t.soundcloud = a }
func (t *Tenant) SetSongkick(a *SongkickAuth)       { t.songkick = a }
func (t *Tenant) SetPolicy(p CachePolicy)           { t.policy = p }
func (t *Tenant) SetArtistName(name string)         { t.artistName = name }

// HasCapability reports whether the tenant carries the credential block
// required by the named source ("discogs", "soundcloud", "songkick").
func (t *Tenant) HasCapability(source string) bool {
	switch source {
	case "discogs":
		return t.discogs != nil && t.discogs.ArtistID != 0 && t.discogs.Token != ""
	case "soundcloud":
		return t.soundcloud != nil && t.soundcloud.UserID != ""
	case "songkick":
		return t.songkick != nil && t.songkick.ArtistID != 0
	default:
		return false
	}
}

// Validate checks tenant invariants before persistence.
func (t *Tenant) Validate() error {
	if t.uid == "" {
		return fmt.Errorf("tenant uid is required")
	}
	if t.artistName == "" {
		return fmt.Errorf("tenant artist name is required")
	}
	if t.discogs != nil && (t.discogs.ArtistID == 0 || t.discogs.Token == "") {
		return fmt.Errorf("discogs credential block requires artist_id and token")
	}
	if t.soundcloud != nil && t.soundcloud.UserID == "" {
		return fmt.Errorf("soundcloud credential block requires user_id")
	}
	if t.songkick != nil && t.songkick.ArtistID == 0 {
		return fmt.Errorf("songkick credential block requires artist_id")
	}
	return nil
}
