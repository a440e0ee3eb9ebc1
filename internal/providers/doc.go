// Package providers implements the resilient fetch pipeline, one provider per
// external source.
//
// Every provider follows the same discipline: consult the process-local cache
// when the tenant's policy allows it, otherwise issue the live request with a
// bounded retry, adapt the raw payload, persist the snapshot (the durable
// source of truth), then populate the cache. On live failure the last
// snapshot is returned unchanged; only when no snapshot exists does the
// failure surface to the caller. Upstream errors never propagate past the
// provider boundary, and malformed individual records are skipped rather than
// failing the whole fetch.
package providers
