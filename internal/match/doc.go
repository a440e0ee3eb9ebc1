// Package match implements the fuzzy cross-catalog track matcher.
//
// The matcher reconciles a catalog release track against free-text search
// results from the streaming source and selects the candidate most likely to
// be the canonical recording. Query construction, normalization and selection
// are pure functions over their inputs; network enrichment (comments,
// favorites) happens only after a candidate is chosen, behind the Enricher
// interface. A match is either fully populated or absent. Absence is a valid,
// final outcome, never an error.
package match
