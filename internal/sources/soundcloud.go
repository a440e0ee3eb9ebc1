// SoundCloud implementation of [StreamingSource]
//
// Uses [oauth2] client credentials for application authentication.
// Response shapes based on https://developers.soundcloud.com/docs/api
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultSoundCloudBaseURL  = "https://api.soundcloud.com"
	defaultSoundCloudTokenURL = "https://secure.soundcloud.com/oauth/token"
)

// soundCloudUser is the uploader block on a raw track.
type soundCloudUser struct {
	Username string `json:"username"`
}

// soundCloudTrack is a raw track resource.
type soundCloudTrack struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	User             soundCloudUser `json:"user"`
	Duration         int            `json:"duration"` // milliseconds
	PermalinkURL     string         `json:"permalink_url"`
	Description      string         `json:"description"`
	ArtworkURL       string         `json:"artwork_url"`
	PlaybackCount    int            `json:"playback_count"`
	FavoritingsCount int            `json:"favoritings_count"`
	CreatedAt        string         `json:"created_at"`
}

// soundCloudComment is a raw comment resource.
type soundCloudComment struct {
	Body      string         `json:"body"`
	Timestamp int            `json:"timestamp"`
	CreatedAt string         `json:"created_at"`
	User      soundCloudUser `json:"user"`
}

// SoundCloudClient implements [StreamingSource] against the SoundCloud API.
type SoundCloudClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSoundCloudClient creates a SoundCloud client authenticated with the
// application's client credentials. The returned client refreshes its token
// automatically via the oauth2 transport.
func NewSoundCloudClient(baseURL, clientID, clientSecret, tokenURL string, timeout time.Duration) *SoundCloudClient {
	if baseURL == "" {
		baseURL = defaultSoundCloudBaseURL
	}
	if tokenURL == "" {
		tokenURL = defaultSoundCloudTokenURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	client := config.Client(context.Background())
	client.Timeout = timeout

	return &SoundCloudClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// NewSoundCloudClientWithHTTPClient creates a client with a caller-supplied
// [http.Client], used in tests to bypass the oauth2 transport.
func NewSoundCloudClientWithHTTPClient(baseURL string, httpClient *http.Client) *SoundCloudClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SoundCloudClient{baseURL: baseURL, httpClient: httpClient}
}

// doRequest performs a GET against the SoundCloud API and decodes the JSON response.
func (c *SoundCloudClient) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: soundcloud status %d", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// SearchTracks performs a free-text search returning stream candidates.
func (c *SoundCloudClient) SearchTracks(ctx context.Context, query string) ([]models.StreamCandidate, error) {
	endpoint := fmt.Sprintf("/tracks?q=%s&limit=50", url.QueryEscape(query))

	var raw []soundCloudTrack
	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	candidates := make([]models.StreamCandidate, 0, len(raw))
	for _, t := range raw {
		candidates = append(candidates, models.StreamCandidate{
			ID:          t.ID,
			Title:       t.Title,
			Uploader:    t.User.Username,
			DurationMS:  t.Duration,
			Permalink:   t.PermalinkURL,
			Description: t.Description,
		})
	}

	return candidates, nil
}

// UserTracks retrieves the tracks hosted on a user's profile.
func (c *SoundCloudClient) UserTracks(ctx context.Context, userID string) ([]models.StreamingTrack, error) {
	endpoint := fmt.Sprintf("/users/%s/tracks?limit=50", url.PathEscape(userID))

	var raw []soundCloudTrack
	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	tracks := make([]models.StreamingTrack, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, models.StreamingTrack{
			ID:            t.ID,
			Title:         t.Title,
			Permalink:     t.PermalinkURL,
			ArtworkURL:    t.ArtworkURL,
			DurationMS:    t.Duration,
			PlaybackCount: t.PlaybackCount,
			FavoriteCount: t.FavoritingsCount,
			CreatedAt:     t.CreatedAt,
		})
	}

	return tracks, nil
}

// Comments retrieves listener comments for a track.
func (c *SoundCloudClient) Comments(ctx context.Context, trackID int64) ([]models.Comment, error) {
	endpoint := fmt.Sprintf("/tracks/%d/comments", trackID)

	var raw []soundCloudComment
	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(raw))
	for _, cm := range raw {
		comments = append(comments, models.Comment{
			Author:    cm.User.Username,
			Body:      cm.Body,
			Timestamp: cm.Timestamp,
			CreatedAt: cm.CreatedAt,
		})
	}

	return comments, nil
}

// Favorites retrieves the favorite count for a track.
func (c *SoundCloudClient) Favorites(ctx context.Context, trackID int64) (int, error) {
	endpoint := fmt.Sprintf("/tracks/%d", trackID)

	var raw soundCloudTrack
	if err := c.doRequest(ctx, endpoint, &raw); err != nil {
		return 0, err
	}

	return raw.FavoritingsCount, nil
}
