package providers

import (
	"context"
	"fmt"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/sources"
)

// TrackProvider fetches the tracks hosted on the tenant's own streaming profile.
type TrackProvider struct {
	pipeline  *Pipeline
	streaming sources.StreamingSource
}

// NewTrackProvider creates the streaming provider.
func NewTrackProvider(pipeline *Pipeline, streaming sources.StreamingSource) *TrackProvider {
	return &TrackProvider{pipeline: pipeline, streaming: streaming}
}

// Fetch returns the tenant's hosted tracks through the resilient pipeline.
func (p *TrackProvider) Fetch(ctx context.Context, tenant *models.Tenant) ([]models.StreamingTrack, error) {
	if !tenant.HasCapability("soundcloud") {
		return nil, fmt.Errorf("%w: tenant %s has no soundcloud credentials", shared.ErrMissingCredentials, tenant.UID())
	}

	return fetchThrough(ctx, p.pipeline, tenant, CollectionTracks, func(ctx context.Context) ([]models.StreamingTrack, error) {
		return p.streaming.UserTracks(ctx, tenant.SoundCloud().UserID)
	})
}
