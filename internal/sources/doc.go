// Package sources contains HTTP clients for the external catalog, streaming
// and events sources (Discogs, SoundCloud, Songkick).
//
// Clients are thin: they issue authenticated requests, decode responses and
// map them to model types where the mapping is mechanical. All resilience
// (caching, snapshot fallback, retry) lives in the providers package.
package sources
