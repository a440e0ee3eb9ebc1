package tasks

import (
	"fmt"

	"github.com/desertthunder/encore/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced consumers
}

// Operation phase enumeration
type Phase int

const (
	WarmUp Phase = iota
	FetchTenant
	TenantDone
	RunComplete
)

func (p Phase) String() string {
	switch p {
	case WarmUp:
		return "warm_up"
	case FetchTenant:
		return "fetch_tenant"
	case TenantDone:
		return "tenant_done"
	case RunComplete:
		return "run_complete"
	default:
		return ""
	}
}

func warmupUpdate(step, total int, url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WarmUp,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Warming upstream endpoint %s...", url),
	}
}

func fetchTenantUpdate(step, total int, uid string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTenant,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Refreshing %s...", step, total, uid),
	}
}

func tenantDoneUpdate(step, total int, outcome models.TenantOutcome) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", step, total, outcome.TenantUID)
	if !outcome.Success {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, outcome.TenantUID, outcome.Err)
	}
	return ProgressUpdate{
		Phase:   TenantDone,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    outcome,
	}
}

func runCompleteUpdate(summary *models.RunSummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RunComplete,
		Step:    summary.Total,
		Total:   summary.Total,
		Message: fmt.Sprintf("Batch run complete: %d succeeded, %d failed", summary.Succeeded, summary.Failed),
		Data:    summary,
	}
}
