// Package tasks orchestrates per-tenant aggregation and the scheduled batch
// refresh.
//
// The Aggregator fans out to every provider a tenant has credentials for and
// joins the resolved values into one payload; a failing source yields an
// empty slot and never cancels its siblings. The Scheduler drives the
// aggregator across all tenants on a fixed cadence with bounded concurrency,
// isolating per-tenant failures and emitting a run summary to the alerting
// channel. Long-running operations emit progress updates via channels for
// non-blocking status reporting to CLI layers.
package tasks
