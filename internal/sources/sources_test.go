package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	tu "github.com/desertthunder/encore/internal/testing"
)

func TestDiscogsClient(t *testing.T) {
	auth := models.DiscogsAuth{ArtistID: 2184, Token: "secret-token"}

	t.Run("ListReleases", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists/2184/releases" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Discogs token=secret-token" {
				t.Errorf("unexpected authorization header: %q", got)
			}
			if got := r.Header.Get("User-Agent"); got != "encore/0.1" {
				t.Errorf("unexpected user agent: %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"releases": [{"id": 100, "title": "There Is Love in You", "year": 2010}]}`))
		}))
		defer server.Close()

		client := NewDiscogsClient(server.URL, "encore/0.1", time.Second)
		refs, err := client.ListReleases(context.Background(), auth)
		if err != nil {
			t.Fatalf("list releases failed: %v", err)
		}

		if len(refs) != 1 || refs[0].ID != 100 || refs[0].Year != 2010 {
			t.Errorf("unexpected releases: %+v", refs)
		}
	})

	t.Run("Release", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/releases/100" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": 100,
				"title": "There Is Love in You",
				"labels": [{"name": "Domino", "catno": "WIGLP258"}],
				"tracklist": [
					{"position": "A1", "title": "Angel Echoes", "duration": "4:13",
					 "extraartists": [{"name": "Caribou", "role": "Remix"}]}
				]
			}`))
		}))
		defer server.Close()

		client := NewDiscogsClient(server.URL, "encore/0.1", time.Second)
		detail, err := client.Release(context.Background(), auth, 100)
		if err != nil {
			t.Fatalf("release failed: %v", err)
		}

		if detail.Labels[0].CatalogNumber != "WIGLP258" {
			t.Errorf("unexpected label: %+v", detail.Labels)
		}
		if len(detail.Tracklist) != 1 || detail.Tracklist[0].ExtraArtists[0].Role != "Remix" {
			t.Errorf("unexpected tracklist: %+v", detail.Tracklist)
		}
	})

	t.Run("UpstreamError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewDiscogsClient(server.URL, "encore/0.1", time.Second)
		_, err := client.ListReleases(context.Background(), auth)
		if !errors.Is(err, shared.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
}

func TestSoundCloudClient(t *testing.T) {
	t.Run("SearchTracks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("q"); got != "Four Tet - Angel Echoes" {
				t.Errorf("unexpected query: %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"id": 7, "title": "Angel Echoes", "duration": 253000,
				 "permalink_url": "https://soundcloud.com/four-tet/angel-echoes",
				 "user": {"username": "Four Tet"}}
			]`))
		}))
		defer server.Close()

		client := NewSoundCloudClientWithHTTPClient(server.URL, server.Client())
		candidates, err := client.SearchTracks(context.Background(), "Four Tet - Angel Echoes")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(candidates))
		}
		if candidates[0].Uploader != "Four Tet" || candidates[0].DurationMS != 253000 {
			t.Errorf("unexpected candidate: %+v", candidates[0])
		}
	})

	t.Run("UserTracks", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/users/user-77/tracks" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"id": 9, "title": "Loop", "duration": 180000,
				 "playback_count": 50000, "favoritings_count": 1200}
			]`))
		}))
		defer server.Close()

		client := NewSoundCloudClientWithHTTPClient(server.URL, server.Client())
		tracks, err := client.UserTracks(context.Background(), "user-77")
		if err != nil {
			t.Fatalf("user tracks failed: %v", err)
		}

		if len(tracks) != 1 || tracks[0].PlaybackCount != 50000 || tracks[0].FavoriteCount != 1200 {
			t.Errorf("unexpected tracks: %+v", tracks)
		}
	})

	t.Run("CommentsAndFavorites", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/tracks/7/comments":
				w.Write([]byte(`[{"body": "classic", "timestamp": 30000, "user": {"username": "fan"}}]`))
			case "/tracks/7":
				w.Write([]byte(`{"id": 7, "favoritings_count": 1200}`))
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))
		defer server.Close()

		client := NewSoundCloudClientWithHTTPClient(server.URL, server.Client())

		comments, err := client.Comments(context.Background(), 7)
		if err != nil {
			t.Fatalf("comments failed: %v", err)
		}
		if len(comments) != 1 || comments[0].Author != "fan" {
			t.Errorf("unexpected comments: %+v", comments)
		}

		favorites, err := client.Favorites(context.Background(), 7)
		if err != nil {
			t.Fatalf("favorites failed: %v", err)
		}
		if favorites != 1200 {
			t.Errorf("expected 1200 favorites, got %d", favorites)
		}
	})

	t.Run("UpstreamError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewSoundCloudClientWithHTTPClient(server.URL, server.Client())
		_, err := client.SearchTracks(context.Background(), "anything")
		if !errors.Is(err, shared.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})

	t.Run("TransportError", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
		}

		client := NewSoundCloudClientWithHTTPClient("http://soundcloud.invalid", httpClient)
		_, err := client.SearchTracks(context.Background(), "anything")
		if !errors.Is(err, shared.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
}

func TestSongkickClient(t *testing.T) {
	t.Run("UpcomingEvents", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists/63366/calendar.json" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("apikey"); got != "sk-key" {
				t.Errorf("unexpected api key: %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"resultsPage": {
					"results": {
						"event": [
							{"id": 1, "displayName": "Four Tet at Fabric",
							 "uri": "https://www.songkick.com/concerts/1",
							 "venue": {"displayName": "Fabric"},
							 "location": {"city": "London, UK"},
							 "start": {"date": "2026-09-12"}}
						]
					}
				}
			}`))
		}))
		defer server.Close()

		client := NewSongkickClient(server.URL, "sk-key", time.Second)
		events, err := client.UpcomingEvents(context.Background(), 63366)
		if err != nil {
			t.Fatalf("upcoming events failed: %v", err)
		}

		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Venue != "Fabric" || events[0].City != "London, UK" || events[0].Date != "2026-09-12" {
			t.Errorf("unexpected event: %+v", events[0])
		}
	})

	t.Run("EmptyCalendar", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"resultsPage": {"results": {}}}`))
		}))
		defer server.Close()

		client := NewSongkickClient(server.URL, "sk-key", time.Second)
		events, err := client.UpcomingEvents(context.Background(), 63366)
		if err != nil {
			t.Fatalf("upcoming events failed: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected no events, got %+v", events)
		}
	})

	t.Run("UpstreamError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewSongkickClient(server.URL, "sk-key", time.Second)
		_, err := client.UpcomingEvents(context.Background(), 63366)
		if !errors.Is(err, shared.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
}
