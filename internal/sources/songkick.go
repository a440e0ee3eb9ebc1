// Songkick implementation of [EventSource]
//
// Response shapes based on https://www.songkick.com/developer
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

const defaultSongkickBaseURL = "https://api.songkick.com/api/3.0"

type songkickVenue struct {
	DisplayName string `json:"displayName"`
}

type songkickLocation struct {
	City string `json:"city"`
}

type songkickStart struct {
	Date string `json:"date"`
}

type songkickEvent struct {
	ID          int64            `json:"id"`
	DisplayName string           `json:"displayName"`
	URI         string           `json:"uri"`
	Venue       songkickVenue    `json:"venue"`
	Location    songkickLocation `json:"location"`
	Start       songkickStart    `json:"start"`
}

type songkickCalendar struct {
	ResultsPage struct {
		Results struct {
			Event []songkickEvent `json:"event"`
		} `json:"results"`
	} `json:"resultsPage"`
}

// SongkickClient implements [EventSource] against the Songkick API.
type SongkickClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewSongkickClient creates a Songkick client with the application API key.
func NewSongkickClient(baseURL, apiKey string, timeout time.Duration) *SongkickClient {
	if baseURL == "" {
		baseURL = defaultSongkickBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SongkickClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// UpcomingEvents retrieves the artist's upcoming calendar.
func (c *SongkickClient) UpcomingEvents(ctx context.Context, artistID int) ([]models.Event, error) {
	endpoint := fmt.Sprintf("%s/artists/%d/calendar.json?apikey=%s", c.baseURL, artistID, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: songkick status %d", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var calendar songkickCalendar
	if err := json.NewDecoder(resp.Body).Decode(&calendar); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	events := make([]models.Event, 0, len(calendar.ResultsPage.Results.Event))
	for _, ev := range calendar.ResultsPage.Results.Event {
		events = append(events, models.Event{
			ID:          ev.ID,
			DisplayName: ev.DisplayName,
			Venue:       ev.Venue.DisplayName,
			City:        ev.Location.City,
			Date:        ev.Start.Date,
			URI:         ev.URI,
		})
	}

	return events, nil
}
