package sources

import (
	"context"

	"github.com/desertthunder/encore/internal/models"
)

// CatalogSource lists an artist's releases and fetches per-release detail
// including the raw tracklist.
type CatalogSource interface {
	// ListReleases retrieves release references for the artist in the credential block.
	ListReleases(ctx context.Context, auth models.DiscogsAuth) ([]ReleaseRef, error)

	// Release retrieves full release detail including tracklist.
	Release(ctx context.Context, auth models.DiscogsAuth, releaseID int) (*ReleaseDetail, error)
}

// StreamingSource searches hosted audio and fetches per-track enrichment data.
type StreamingSource interface {
	// SearchTracks performs a free-text search returning stream candidates.
	SearchTracks(ctx context.Context, query string) ([]models.StreamCandidate, error)

	// UserTracks retrieves the tracks hosted on a user's own profile.
	UserTracks(ctx context.Context, userID string) ([]models.StreamingTrack, error)

	// Comments retrieves listener comments for a track.
	Comments(ctx context.Context, trackID int64) ([]models.Comment, error)

	// Favorites retrieves the favorite count for a track.
	Favorites(ctx context.Context, trackID int64) (int, error)
}

// EventSource lists upcoming performances for an artist.
type EventSource interface {
	UpcomingEvents(ctx context.Context, artistID int) ([]models.Event, error)
}

// ReleaseRef is a single entry of a catalog release listing.
type ReleaseRef struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	Thumb  string `json:"thumb"`
}

// ReleaseDetail is the raw per-release response from the catalog source.
// The catalog provider adapts it into a models.Release.
type ReleaseDetail struct {
	ID        int              `json:"id"`
	Title     string           `json:"title"`
	Artists   []ReleaseArtist  `json:"artists"`
	Labels    []ReleaseLabel   `json:"labels"`
	Released  string           `json:"released"`
	Notes     string           `json:"notes"`
	Images    []ReleaseImage   `json:"images"`
	Tracklist []TracklistEntry `json:"tracklist"`
}

// ReleaseArtist is an artist credit on a raw release.
type ReleaseArtist struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ReleaseLabel is a label credit with catalog number.
type ReleaseLabel struct {
	Name          string `json:"name"`
	CatalogNumber string `json:"catno"`
}

// ReleaseImage is an image resource attached to a release.
type ReleaseImage struct {
	URI string `json:"uri"`
}

// TracklistEntry is one raw tracklist row.
type TracklistEntry struct {
	Position     string          `json:"position"`
	Title        string          `json:"title"`
	Duration     string          `json:"duration"`
	Artists      []ReleaseArtist `json:"artists"`
	ExtraArtists []ReleaseArtist `json:"extraartists"`
}
