package models

import "time"

// AggregateResult is the merged per-tenant payload. A nil slot means the
// tenant lacks the credential block for that source, or the source failed
// with no snapshot to fall back on.
type AggregateResult struct {
	TenantUID string           `json:"tenant_uid"`
	Releases  []Release        `json:"releases,omitempty"`
	Tracks    []StreamingTrack `json:"tracks,omitempty"`
	Events    []Event          `json:"events,omitempty"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// TenantOutcome records one tenant's result inside a batch run.
type TenantOutcome struct {
	TenantUID string        `json:"tenant_uid"`
	Success   bool          `json:"success"`
	Err       string        `json:"error,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// RunSummary is the ephemeral record of one scheduled batch run.
type RunSummary struct {
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Outcomes   []TenantOutcome `json:"outcomes"`
}

// Failures returns the outcomes of tenants whose aggregate call failed.
func (s *RunSummary) Failures() []TenantOutcome {
	var failed []TenantOutcome
	for _, o := range s.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
