// Discogs implementation of [CatalogSource]
//
// Response shapes based on https://www.discogs.com/developers
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

const defaultDiscogsBaseURL = "https://api.discogs.com"

// DiscogsClient implements [CatalogSource] against the Discogs REST API.
//
// Authentication is per-tenant: each call receives the tenant's credential
// block and sends its personal access token.
type DiscogsClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewDiscogsClient creates a Discogs client with the given base URL, user agent
// and request timeout. Discogs rejects requests without a User-Agent.
func NewDiscogsClient(baseURL, userAgent string, timeout time.Duration) *DiscogsClient {
	if baseURL == "" {
		baseURL = defaultDiscogsBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &DiscogsClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// doRequest performs an authenticated GET against the Discogs API and decodes
// the JSON response into result.
func (c *DiscogsClient) doRequest(ctx context.Context, endpoint, token string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Discogs token="+token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: discogs status %d", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type discogsReleaseList struct {
	Releases []ReleaseRef `json:"releases"`
}

// ListReleases retrieves the artist's releases sorted newest first.
func (c *DiscogsClient) ListReleases(ctx context.Context, auth models.DiscogsAuth) ([]ReleaseRef, error) {
	endpoint := fmt.Sprintf("/artists/%d/releases?sort=year&sort_order=desc", auth.ArtistID)

	var list discogsReleaseList
	if err := c.doRequest(ctx, endpoint, auth.Token, &list); err != nil {
		return nil, err
	}

	return list.Releases, nil
}

// Release retrieves full release detail including the raw tracklist.
func (c *DiscogsClient) Release(ctx context.Context, auth models.DiscogsAuth, releaseID int) (*ReleaseDetail, error) {
	endpoint := fmt.Sprintf("/releases/%d", releaseID)

	var detail ReleaseDetail
	if err := c.doRequest(ctx, endpoint, auth.Token, &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}
