package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// ReleaseFetcher is the catalog provider contract consumed by the aggregator.
type ReleaseFetcher interface {
	Fetch(ctx context.Context, tenant *models.Tenant) ([]models.Release, error)
}

// TrackFetcher is the streaming provider contract consumed by the aggregator.
type TrackFetcher interface {
	Fetch(ctx context.Context, tenant *models.Tenant) ([]models.StreamingTrack, error)
}

// EventFetcher is the events provider contract consumed by the aggregator.
type EventFetcher interface {
	Fetch(ctx context.Context, tenant *models.Tenant) ([]models.Event, error)
}

// Aggregator merges all providers' results for one tenant into a single payload.
type Aggregator struct {
	releases ReleaseFetcher
	tracks   TrackFetcher
	events   EventFetcher
	logger   *log.Logger
}

// NewAggregator creates an Aggregator over the three providers.
func NewAggregator(releases ReleaseFetcher, tracks TrackFetcher, events EventFetcher, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Aggregator{
		releases: releases,
		tracks:   tracks,
		events:   events,
		logger:   logger,
	}
}

// GetReleases returns the tenant's catalog releases with matched streams.
func (a *Aggregator) GetReleases(ctx context.Context, tenant *models.Tenant) ([]models.Release, error) {
	return a.releases.Fetch(ctx, tenant)
}

// GetStreamingTracks returns the tracks hosted on the tenant's streaming profile.
func (a *Aggregator) GetStreamingTracks(ctx context.Context, tenant *models.Tenant) ([]models.StreamingTrack, error) {
	return a.tracks.Fetch(ctx, tenant)
}

// GetEvents returns the tenant's upcoming performances.
func (a *Aggregator) GetEvents(ctx context.Context, tenant *models.Tenant) ([]models.Event, error) {
	return a.events.Fetch(ctx, tenant)
}

// GetAll fans out to every provider the tenant carries credentials for and
// joins the results. Sources the tenant lacks credentials for resolve to an
// empty slot without any network call. Enabled providers run concurrently;
// because each provider converts failures into fallback-or-error, the join
// only ever observes resolved values, and one slow or failing source cannot
// cancel or delay its siblings.
//
// An error is returned only when every enabled provider failed, or when the
// tenant has no capabilities at all.
func (a *Aggregator) GetAll(ctx context.Context, tenant *models.Tenant) (*models.AggregateResult, error) {
	result := &models.AggregateResult{
		TenantUID: tenant.UID(),
		FetchedAt: time.Now(),
	}

	type slotResult struct {
		source string
		err    error
	}

	var wg sync.WaitGroup
	resCh := make(chan slotResult, 3)
	enabled := 0

	if tenant.HasCapability("discogs") {
		enabled++
		wg.Add(1)
		go func() {
			defer wg.Done()
			releases, err := a.releases.Fetch(ctx, tenant)
			result.Releases = releases
			resCh <- slotResult{source: "discogs", err: err}
		}()
	}

	if tenant.HasCapability("soundcloud") {
		enabled++
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracks, err := a.tracks.Fetch(ctx, tenant)
			result.Tracks = tracks
			resCh <- slotResult{source: "soundcloud", err: err}
		}()
	}

	if tenant.HasCapability("songkick") {
		enabled++
		wg.Add(1)
		go func() {
			defer wg.Done()
			events, err := a.events.Fetch(ctx, tenant)
			result.Events = events
			resCh <- slotResult{source: "songkick", err: err}
		}()
	}

	if enabled == 0 {
		return nil, fmt.Errorf("%w: tenant %s has no source credentials", shared.ErrMissingCredentials, tenant.UID())
	}

	wg.Wait()
	close(resCh)

	var firstErr error
	failures := 0
	for r := range resCh {
		if r.err != nil {
			failures++
			if firstErr == nil {
				firstErr = r.err
			}
			a.logger.Warn("source resolved empty", "tenant", tenant.UID(), "source", r.source, "err", r.err)
		}
	}

	if failures == enabled {
		return nil, fmt.Errorf("%w: all sources failed for tenant %s: %v", shared.ErrServiceUnavailable, tenant.UID(), firstErr)
	}

	return result, nil
}
