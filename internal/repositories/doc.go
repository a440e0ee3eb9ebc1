// Package repositories provides the persistence layer for tenants and
// snapshots over database/sql with SQLite.
//
// SnapshotRepository is the durable fallback of last resort for the provider
// pipeline: exactly one row per (tenant, collection), overwritten on every
// successful live fetch. TenantRepository implements models.Repository for
// tenant CRUD with soft deletes.
package repositories
