package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/tasks"
)

// TenantGetter resolves tenants by uid. Satisfied by the tenant repository.
type TenantGetter interface {
	GetByUID(uid string) (*models.Tenant, error)
}

// BatchRunner is the scheduler contract the HTTP boundary consumes.
type BatchRunner interface {
	RunBatch(ctx context.Context, progress chan<- tasks.ProgressUpdate) *models.RunSummary
	RefreshOne(ctx context.Context, tenant *models.Tenant) (*models.AggregateResult, error)
}

// ProfileHandler exposes the core operations over HTTP. It is glue only:
// all resilience lives in the providers, aggregator and scheduler.
type ProfileHandler struct {
	aggregator *tasks.Aggregator
	scheduler  BatchRunner
	tenants    TenantGetter
	logger     *log.Logger
}

// NewProfileHandler creates the handler over the core collaborators.
func NewProfileHandler(aggregator *tasks.Aggregator, scheduler BatchRunner, tenants TenantGetter, logger *log.Logger) *ProfileHandler {
	return &ProfileHandler{
		aggregator: aggregator,
		scheduler:  scheduler,
		tenants:    tenants,
		logger:     logger,
	}
}

// Register attaches all routes to the router.
func (h *ProfileHandler) Register(r Router) {
	r.Handle(http.MethodGet, "/tenants/{uid}/releases", http.HandlerFunc(h.Releases))
	r.Handle(http.MethodGet, "/tenants/{uid}/tracks", http.HandlerFunc(h.Tracks))
	r.Handle(http.MethodGet, "/tenants/{uid}/events", http.HandlerFunc(h.Events))
	r.Handle(http.MethodGet, "/tenants/{uid}/aggregate", http.HandlerFunc(h.Aggregate))
	r.Handle(http.MethodPost, "/tenants/{uid}/refresh", http.HandlerFunc(h.Refresh))
	r.Handle(http.MethodPost, "/batch/run", http.HandlerFunc(h.RunBatch))
}

// Releases serves the tenant's catalog releases with matched streams.
func (h *ProfileHandler) Releases(w http.ResponseWriter, req *http.Request) {
	tenant, ok := h.tenant(w, req)
	if !ok {
		return
	}

	releases, err := h.aggregator.GetReleases(req.Context(), tenant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, releases)
}

// Tracks serves the tenant's hosted streaming tracks.
func (h *ProfileHandler) Tracks(w http.ResponseWriter, req *http.Request) {
	tenant, ok := h.tenant(w, req)
	if !ok {
		return
	}

	tracks, err := h.aggregator.GetStreamingTracks(req.Context(), tenant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tracks)
}

// Events serves the tenant's upcoming events.
func (h *ProfileHandler) Events(w http.ResponseWriter, req *http.Request) {
	tenant, ok := h.tenant(w, req)
	if !ok {
		return
	}

	events, err := h.aggregator.GetEvents(req.Context(), tenant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

// Aggregate serves the merged payload across all of the tenant's sources.
func (h *ProfileHandler) Aggregate(w http.ResponseWriter, req *http.Request) {
	tenant, ok := h.tenant(w, req)
	if !ok {
		return
	}

	result, err := h.aggregator.GetAll(req.Context(), tenant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Refresh triggers an on-demand refresh for one tenant, bypassing the schedule.
func (h *ProfileHandler) Refresh(w http.ResponseWriter, req *http.Request) {
	tenant, ok := h.tenant(w, req)
	if !ok {
		return
	}

	result, err := h.scheduler.RefreshOne(req.Context(), tenant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// RunBatch triggers a full batch run and returns its summary.
func (h *ProfileHandler) RunBatch(w http.ResponseWriter, req *http.Request) {
	summary := h.scheduler.RunBatch(req.Context(), nil)
	h.writeJSON(w, http.StatusOK, summary)
}

// tenant resolves the {uid} path value, writing a 404 when unknown.
func (h *ProfileHandler) tenant(w http.ResponseWriter, req *http.Request) (*models.Tenant, bool) {
	uid := req.PathValue("uid")
	tenant, err := h.tenants.GetByUID(uid)
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return tenant, true
}

// writeError maps core errors onto HTTP statuses.
func (h *ProfileHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrTenantNotFound), errors.Is(err, shared.ErrSnapshotNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrMissingCredentials):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrUpstreamUnavailable), errors.Is(err, shared.ErrServiceUnavailable):
		status = http.StatusBadGateway
	}

	if h.logger != nil {
		h.logger.Warn("request failed", "status", status, "err", err)
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *ProfileHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}
