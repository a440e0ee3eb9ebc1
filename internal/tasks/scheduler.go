package tasks

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/alerts"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"golang.org/x/time/rate"
)

// TenantLister enumerates the tenants a batch run refreshes. Satisfied by the
// tenant repository.
type TenantLister interface {
	List(criteria map[string]any) ([]*models.Tenant, error)
}

// AggregateGetter is the aggregator contract consumed by the scheduler.
type AggregateGetter interface {
	GetAll(ctx context.Context, tenant *models.Tenant) (*models.AggregateResult, error)
}

// SchedulerOpts contains configuration for the batch scheduler.
type SchedulerOpts struct {
	Interval   time.Duration // refresh cadence (default: six hours)
	NumWorkers int           // concurrent tenant refreshes (default: 4)
	RateLimit  float64       // tenant dispatches per second (default: 2)
	WarmupURLs []string      // shared upstream endpoints warmed before each run
	HTTPClient *http.Client  // used for warmup requests
}

// Scheduler runs the aggregator for every tenant on a fixed cadence,
// isolating per-tenant failures and reporting a run summary to the alerting
// channel. The scheduler's control loop itself never errors out.
type Scheduler struct {
	aggregator AggregateGetter
	tenants    TenantLister
	notifier   alerts.Notifier
	logger     *log.Logger
	opts       SchedulerOpts
}

// NewScheduler creates a Scheduler with the provided collaborators.
func NewScheduler(aggregator AggregateGetter, tenants TenantLister, notifier alerts.Notifier, logger *log.Logger, opts SchedulerOpts) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = 6 * time.Hour
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Scheduler{
		aggregator: aggregator,
		tenants:    tenants,
		notifier:   notifier,
		logger:     logger,
		opts:       opts,
	}
}

// Start blocks, running a batch on startup and then on every tick until the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.logger.Info("batch scheduler started", "interval", s.opts.Interval, "workers", s.opts.NumWorkers)
	s.RunBatch(ctx, nil)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("batch scheduler stopped")
			return
		case <-ticker.C:
			s.RunBatch(ctx, nil)
		}
	}
}

// RunBatch refreshes every known tenant concurrently with bounded workers and
// rate limiting. Each tenant's failure is caught independently: it never
// aborts sibling tenants and never propagates out of the run. One failure
// notification is accumulated per failing tenant, plus a final summary.
func (s *Scheduler) RunBatch(ctx context.Context, progress chan<- ProgressUpdate) *models.RunSummary {
	summary := &models.RunSummary{StartedAt: time.Now()}

	tenants, err := s.tenants.List(nil)
	if err != nil {
		s.logger.Error("batch run could not list tenants", "err", err)
		summary.FinishedAt = time.Now()
		s.notifier.Notify(fmt.Sprintf("batch run aborted: could not list tenants: %v", err))
		return summary
	}

	s.warmup(ctx, progress)

	summary.Total = len(tenants)
	limiter := rate.NewLimiter(rate.Limit(s.opts.RateLimit), 1)

	jobs := make(chan *models.Tenant, len(tenants))
	results := make(chan models.TenantOutcome, len(tenants))

	var wg sync.WaitGroup
	for i := 0; i < s.opts.NumWorkers; i++ {
		wg.Add(1)
		go s.refreshWorker(ctx, &wg, jobs, results)
	}

	go func() {
		for i, tenant := range tenants {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			sendProgress(progress, fetchTenantUpdate(i+1, len(tenants), tenant.UID()))
			jobs <- tenant
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for outcome := range results {
		completed++
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
			s.notifier.Notify(fmt.Sprintf("tenant %s refresh failed: %s", outcome.TenantUID, outcome.Err))
		}
		sendProgress(progress, tenantDoneUpdate(completed, len(tenants), outcome))
	}

	summary.FinishedAt = time.Now()
	s.notifier.Notify(fmt.Sprintf("batch run finished: %d/%d tenants refreshed, %d failed",
		summary.Succeeded, summary.Total, summary.Failed))
	sendProgress(progress, runCompleteUpdate(summary))

	s.logger.Info("batch run finished",
		"total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed,
		"elapsed", summary.FinishedAt.Sub(summary.StartedAt))

	return summary
}

// RefreshOne bypasses the schedule and refreshes a single tenant immediately,
// returning the merged result synchronously to the caller. Used after a
// tenant's credentials change.
func (s *Scheduler) RefreshOne(ctx context.Context, tenant *models.Tenant) (*models.AggregateResult, error) {
	outcome, result := s.refreshTenant(ctx, tenant)
	if !outcome.Success {
		return nil, fmt.Errorf("refresh failed for tenant %s: %s", tenant.UID(), outcome.Err)
	}
	return result, nil
}

// refreshWorker drains the jobs channel, refreshing one tenant at a time.
func (s *Scheduler) refreshWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan *models.Tenant, results chan<- models.TenantOutcome) {
	defer wg.Done()

	for tenant := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome, _ := s.refreshTenant(ctx, tenant)
		results <- outcome
	}
}

// refreshTenant runs one tenant's aggregate call, converting panics and
// errors into a recorded outcome.
func (s *Scheduler) refreshTenant(ctx context.Context, tenant *models.Tenant) (outcome models.TenantOutcome, result *models.AggregateResult) {
	start := time.Now()
	outcome = models.TenantOutcome{TenantUID: tenant.UID()}

	defer func() {
		if r := recover(); r != nil {
			outcome.Success = false
			outcome.Err = fmt.Sprintf("panic: %v", r)
			outcome.Elapsed = time.Since(start)
			s.logger.Error("tenant refresh panicked", "tenant", tenant.UID(), "recover", r)
		}
	}()

	result, err := s.aggregator.GetAll(ctx, tenant)
	outcome.Elapsed = time.Since(start)
	if err != nil {
		outcome.Err = err.Error()
		return outcome, nil
	}

	outcome.Success = true
	return outcome, result
}

// warmup primes shared upstream routing endpoints before fanning out.
// Sequential with small delay offsets, best-effort: failures are logged only.
func (s *Scheduler) warmup(ctx context.Context, progress chan<- ProgressUpdate) {
	for i, url := range s.opts.WarmupURLs {
		sendProgress(progress, warmupUpdate(i+1, len(s.opts.WarmupURLs), url))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			s.logger.Warn("warmup request invalid", "url", url, "err", err)
			continue
		}

		resp, err := s.opts.HTTPClient.Do(req)
		if err != nil {
			s.logger.Warn("warmup request failed", "url", url, "err", err)
			continue
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
