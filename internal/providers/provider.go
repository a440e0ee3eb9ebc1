package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/cache"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/shared"
)

// Collection names, also used as cache entry names and snapshot keys.
const (
	CollectionReleases = "releases"
	CollectionTracks   = "tracks"
	CollectionEvents   = "events"
)

// Pipeline bundles the collaborators every provider shares: the cache
// accelerator, the durable snapshot store, retry policy and logging.
type Pipeline struct {
	Cache      cache.Store
	Snapshots  *repositories.SnapshotRepository
	Logger     *log.Logger
	DefaultTTL time.Duration
	Attempts   int           // live fetch attempts, minimum 1
	Backoff    time.Duration // delay between attempts, grows linearly
}

// NewPipeline creates a pipeline with bounded-retry defaults.
func NewPipeline(store cache.Store, snapshots *repositories.SnapshotRepository, logger *log.Logger) *Pipeline {
	return &Pipeline{
		Cache:      store,
		Snapshots:  snapshots,
		Logger:     logger,
		DefaultTTL: time.Hour,
		Attempts:   2,
		Backoff:    500 * time.Millisecond,
	}
}

// fetchThrough runs one collection fetch through the shared pipeline:
// cache check, live fetch with retry, snapshot write, cache write, snapshot
// fallback. The snapshot write always precedes the cache write, so the cache
// is fresher-or-equal to the snapshot in normal operation.
func fetchThrough[T any](ctx context.Context, p *Pipeline, tenant *models.Tenant, collection string, live func(context.Context) ([]T, error)) ([]T, error) {
	policy := tenant.Policy()

	if policy.Use && p.Cache != nil {
		if cached, found := p.Cache.Get(tenant.UID(), collection); found {
			if value, ok := cached.([]T); ok {
				return value, nil
			}
		}
	}

	value, liveErr := fetchWithRetry(ctx, p, collection, live)
	if liveErr == nil {
		// Snapshot failure is logged, not surfaced: a fresh value already exists.
		if err := p.Snapshots.Upsert(tenant.UID(), collection, value); err != nil {
			p.Logger.Error("failed to persist snapshot", "tenant", tenant.UID(), "collection", collection, "err", err)
		}

		// An empty collection is never cached, so a transiently empty
		// upstream answer cannot mask a later real one.
		if policy.Use && p.Cache != nil && len(value) > 0 {
			p.Cache.Set(tenant.UID(), collection, value, policy.TTLFor(collection, p.DefaultTTL))
		}

		return value, nil
	}

	var fallback []T
	if err := p.Snapshots.Select(tenant.UID(), collection, &fallback); err != nil {
		if errors.Is(err, shared.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("%w: live fetch failed (%v) and no snapshot exists", shared.ErrSnapshotNotFound, liveErr)
		}
		// A snapshot read failure is transient, not absence.
		return nil, fmt.Errorf("%w: live fetch failed (%v) and snapshot read failed (%v)", shared.ErrUpstreamUnavailable, liveErr, err)
	}

	p.Logger.Warn("live fetch failed, serving snapshot",
		"tenant", tenant.UID(), "collection", collection, "err", liveErr)

	return fallback, nil
}

// fetchWithRetry issues the live request up to p.Attempts times with a
// linearly growing backoff between attempts.
func fetchWithRetry[T any](ctx context.Context, p *Pipeline, collection string, live func(context.Context) ([]T, error)) ([]T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := live(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		p.Logger.Debug("live fetch attempt failed, retrying",
			"collection", collection, "attempt", attempt, "err", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, ctx.Err())
		case <-time.After(p.Backoff * time.Duration(attempt)):
		}
	}

	return nil, lastErr
}
