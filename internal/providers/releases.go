package providers

import (
	"context"
	"fmt"

	"github.com/desertthunder/encore/internal/match"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/sources"
)

// ReleaseProvider fetches a tenant's catalog releases and attaches a playable
// stream to each release track via the matcher.
type ReleaseProvider struct {
	pipeline  *Pipeline
	catalog   sources.CatalogSource
	streaming sources.StreamingSource
	matcher   *match.Matcher
}

// NewReleaseProvider creates the catalog provider.
func NewReleaseProvider(pipeline *Pipeline, catalog sources.CatalogSource, streaming sources.StreamingSource, matcher *match.Matcher) *ReleaseProvider {
	return &ReleaseProvider{
		pipeline:  pipeline,
		catalog:   catalog,
		streaming: streaming,
		matcher:   matcher,
	}
}

// Fetch returns the tenant's releases through the resilient pipeline.
func (p *ReleaseProvider) Fetch(ctx context.Context, tenant *models.Tenant) ([]models.Release, error) {
	if !tenant.HasCapability("discogs") {
		return nil, fmt.Errorf("%w: tenant %s has no discogs credentials", shared.ErrMissingCredentials, tenant.UID())
	}

	return fetchThrough(ctx, p.pipeline, tenant, CollectionReleases, func(ctx context.Context) ([]models.Release, error) {
		return p.fetchLive(ctx, tenant)
	})
}

// fetchLive lists the artist's releases, adapts each one and matches streams.
// A malformed release is skipped at record granularity rather than failing
// the whole fetch.
func (p *ReleaseProvider) fetchLive(ctx context.Context, tenant *models.Tenant) ([]models.Release, error) {
	auth := *tenant.Discogs()

	refs, err := p.catalog.ListReleases(ctx, auth)
	if err != nil {
		return nil, err
	}

	releases := make([]models.Release, 0, len(refs))
	for _, ref := range refs {
		detail, err := p.catalog.Release(ctx, auth, ref.ID)
		if err != nil {
			p.pipeline.Logger.Warn("skipping release, detail fetch failed",
				"tenant", tenant.UID(), "release", ref.ID, "err", err)
			continue
		}

		release, err := p.adapt(detail, tenant.ArtistName())
		if err != nil {
			p.pipeline.Logger.Warn("skipping malformed release",
				"tenant", tenant.UID(), "release", ref.ID, "err", err)
			continue
		}

		p.attachStreams(ctx, &release)
		releases = append(releases, release)
	}

	return releases, nil
}

// adapt converts a raw release detail into the canonical model.
func (p *ReleaseProvider) adapt(detail *sources.ReleaseDetail, artistName string) (models.Release, error) {
	if detail.Title == "" {
		return models.Release{}, fmt.Errorf("release %d has no title", detail.ID)
	}

	release := models.Release{
		CatalogID:   detail.ID,
		Artist:      artistName,
		Title:       detail.Title,
		ReleaseDate: detail.Released,
		Notes:       detail.Notes,
	}

	if len(detail.Artists) > 0 {
		release.Artist = detail.Artists[0].Name
	}
	if len(detail.Labels) > 0 {
		release.Label = detail.Labels[0].Name
		release.CatalogNumber = detail.Labels[0].CatalogNumber
	}
	for _, img := range detail.Images {
		if img.URI != "" {
			release.Images = append(release.Images, img.URI)
		}
	}

	for _, entry := range detail.Tracklist {
		if entry.Title == "" {
			continue
		}
		track := models.ReleaseTrack{
			Title:    entry.Title,
			Duration: entry.Duration,
			Position: entry.Position,
		}
		for _, a := range entry.Artists {
			track.Artists = append(track.Artists, models.TrackArtist{Name: a.Name})
		}
		for _, a := range entry.ExtraArtists {
			track.ExtraArtists = append(track.ExtraArtists, models.TrackArtist{Name: a.Name, Role: a.Role})
		}
		release.Tracks = append(release.Tracks, track)
	}

	if len(release.Tracks) == 0 {
		return models.Release{}, fmt.Errorf("release %d has no usable tracks", detail.ID)
	}

	return release, nil
}

// attachStreams runs the matcher for every track of the release. A failed
// search or inconclusive match leaves the track's stream nil.
func (p *ReleaseProvider) attachStreams(ctx context.Context, release *models.Release) {
	for i := range release.Tracks {
		track := &release.Tracks[i]

		query := match.BuildQuery(*track, release.Artist)
		candidates, err := p.streaming.SearchTracks(ctx, query)
		if err != nil {
			p.pipeline.Logger.Warn("stream search failed, track left unmatched",
				"track", track.Title, "err", err)
			continue
		}

		track.Stream = p.matcher.Match(ctx, *track, candidates, release.Artist, release.Label)
	}
}
