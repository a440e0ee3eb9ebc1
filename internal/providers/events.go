package providers

import (
	"context"
	"fmt"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/sources"
)

// EventProvider fetches the tenant's upcoming performances.
type EventProvider struct {
	pipeline *Pipeline
	events   sources.EventSource
}

// NewEventProvider creates the events provider.
func NewEventProvider(pipeline *Pipeline, events sources.EventSource) *EventProvider {
	return &EventProvider{pipeline: pipeline, events: events}
}

// Fetch returns the tenant's upcoming events through the resilient pipeline.
func (p *EventProvider) Fetch(ctx context.Context, tenant *models.Tenant) ([]models.Event, error) {
	if !tenant.HasCapability("songkick") {
		return nil, fmt.Errorf("%w: tenant %s has no songkick credentials", shared.ErrMissingCredentials, tenant.UID())
	}

	return fetchThrough(ctx, p.pipeline, tenant, CollectionEvents, func(ctx context.Context) ([]models.Event, error) {
		return p.events.UpcomingEvents(ctx, tenant.Songkick().ArtistID)
	})
}
