// Package models defines the data model for the artist profile aggregation service.
//
// Canonical entities (releases, streaming tracks, events) are plain serializable
// structs: they are persisted as-is to the snapshot store and returned unchanged
// on fallback. Tenant is a persisted model with validation, backed by the tenant
// repository.
package models
