package models

// StreamCandidate is a raw search result from the streaming source, considered
// by the track matcher when attaching streams to release tracks.
type StreamCandidate struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Uploader    string `json:"uploader"`
	DurationMS  int    `json:"duration_ms"`
	Permalink   string `json:"permalink"`
	Description string `json:"description,omitempty"`
}

// StreamingTrack is a track hosted on the tenant's own streaming profile.
type StreamingTrack struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Permalink     string `json:"permalink"`
	ArtworkURL    string `json:"artwork_url,omitempty"`
	DurationMS    int    `json:"duration_ms"`
	PlaybackCount int    `json:"playback_count"`
	FavoriteCount int    `json:"favorite_count"`
	CreatedAt     string `json:"created_at,omitempty"`
}
