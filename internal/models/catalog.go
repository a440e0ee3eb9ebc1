package models

// TrackArtist is an artist credit on a release track. Role is empty for
// primary artists and carries the credit ("Remix", "Producer") for extra artists.
type TrackArtist struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Stream is a fully populated playable match for a release track.
//
// A track's stream is either complete or absent. Partial matches are never
// persisted.
type Stream struct {
	CandidateID int64     `json:"candidate_id"`
	Title       string    `json:"title"`
	Uploader    string    `json:"uploader"`
	DurationMS  int       `json:"duration_ms"`
	Permalink   string    `json:"permalink"`
	Description string    `json:"description,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	Favorites   int       `json:"favorites"`
}

// Comment is a listener comment attached to a matched stream.
type Comment struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	Timestamp int    `json:"timestamp,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ReleaseTrack is one track of a catalog release.
type ReleaseTrack struct {
	Title        string        `json:"title"`
	Duration     string        `json:"duration,omitempty"`
	Position     string        `json:"position,omitempty"`
	Artists      []TrackArtist `json:"artists,omitempty"`
	ExtraArtists []TrackArtist `json:"extra_artists,omitempty"`
	Stream       *Stream       `json:"stream"`
}

// Release is a catalog release with its ordered tracklist.
type Release struct {
	CatalogID     int            `json:"catalog_id"`
	Artist        string         `json:"artist"`
	Title         string         `json:"title"`
	Label         string         `json:"label,omitempty"`
	CatalogNumber string         `json:"catalog_number,omitempty"`
	ReleaseDate   string         `json:"release_date,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Images        []string       `json:"images,omitempty"`
	Tracks        []ReleaseTrack `json:"tracks"`
}
