package match

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/models"
)

// Enricher fetches comments and favorites for a selected candidate. Satisfied
// by the streaming source client.
type Enricher interface {
	Comments(ctx context.Context, trackID int64) ([]models.Comment, error)
	Favorites(ctx context.Context, trackID int64) (int, error)
}

// Matcher attaches playable streams to release tracks. Selection is pure;
// only the post-selection enrichment touches the network.
type Matcher struct {
	enricher Enricher
	logger   *log.Logger
}

// New creates a Matcher with the given enricher and logger.
func New(enricher Enricher, logger *log.Logger) *Matcher {
	return &Matcher{enricher: enricher, logger: logger}
}

// Select picks the candidate most likely to be the canonical recording of
// track, or nil when no candidate qualifies. Deterministic over its inputs.
//
// Selection order: exact title+uploader match wins immediately; remaining
// candidates pass a noise filter, a normalized-title containment check with a
// qualifier guard, and a permissive weak-signal filter; ties resolve to the
// longest duration.
func Select(track models.ReleaseTrack, candidates []models.StreamCandidate, artist, label string) *models.StreamCandidate {
	title := strings.TrimSpace(track.Title)

	for i := range candidates {
		c := &candidates[i]
		if strings.EqualFold(strings.TrimSpace(c.Title), title) && containsFold(c.Uploader, artist) {
			return c
		}
	}

	query := BuildQuery(track, artist)
	queryIsNoise := IsNoise(query)
	normQuery := Normalize(query, artist, label)

	var survivors []models.StreamCandidate
	for _, c := range candidates {
		// Noise titles are discarded unless the query itself carries the
		// pattern, which protects legitimate titles containing those words.
		if IsNoise(c.Title) && !queryIsNoise {
			continue
		}
		if !passesNormalized(c, normQuery, artist, label) {
			continue
		}
		if !passesWeakSignals(c, title, artist, label) {
			continue
		}
		survivors = append(survivors, c)
	}

	switch len(survivors) {
	case 0:
		return nil
	case 1:
		return &survivors[0]
	}

	// Snippets and radio edits run shorter than the canonical release track,
	// so the longest surviving candidate wins.
	best := 0
	for i := 1; i < len(survivors); i++ {
		if survivors[i].DurationMS > survivors[best].DurationMS {
			best = i
		}
	}
	return &survivors[best]
}

// passesNormalized checks normalized-title equality, or containment of the
// candidate title in the query with every candidate qualifier segment also
// present in the query. The guard prevents selecting a different remix than
// the one the query asked for.
func passesNormalized(c models.StreamCandidate, normQuery, artist, label string) bool {
	normTitle := Normalize(c.Title, artist, label)
	if normTitle == "" {
		return false
	}
	if normTitle == normQuery {
		return true
	}
	if !strings.Contains(normQuery, normTitle) {
		return false
	}
	for _, seg := range Segments(c.Title) {
		if normSeg := Normalize(seg, artist, label); normSeg != "" && !strings.Contains(normQuery, normSeg) {
			return false
		}
	}
	return true
}

// passesWeakSignals keeps candidates whose title contains the raw track title
// and whose uploader, title, permalink or description mentions the artist or
// label. Deliberately permissive: it accepts some false-positive risk to
// recover noisy real matches.
func passesWeakSignals(c models.StreamCandidate, title, artist, label string) bool {
	if !containsFold(c.Title, title) {
		return false
	}
	for _, field := range []string{c.Uploader, c.Title, c.Permalink, c.Description} {
		if artist != "" && containsFold(field, artist) {
			return true
		}
		if label != "" && containsFold(field, label) {
			return true
		}
	}
	return false
}

// Match selects and enriches a stream for track. Any failure anywhere in
// matching is logged and converted to nil: a missing stream is a valid, final
// outcome and must never fail release retrieval.
func (m *Matcher) Match(ctx context.Context, track models.ReleaseTrack, candidates []models.StreamCandidate, artist, label string) (stream *models.Stream) {
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("track matching panicked", "track", track.Title, "recover", r)
			}
			stream = nil
		}
	}()

	selected := Select(track, candidates, artist, label)
	if selected == nil {
		return nil
	}

	stream = &models.Stream{
		CandidateID: selected.ID,
		Title:       selected.Title,
		Uploader:    selected.Uploader,
		DurationMS:  selected.DurationMS,
		Permalink:   selected.Permalink,
		Description: selected.Description,
	}

	if m.enricher == nil {
		return stream
	}

	comments, err := m.enricher.Comments(ctx, selected.ID)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("failed to enrich match with comments", "track", track.Title, "err", err)
		}
		return nil
	}
	favorites, err := m.enricher.Favorites(ctx, selected.ID)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("failed to enrich match with favorites", "track", track.Title, "err", err)
		}
		return nil
	}

	stream.Comments = comments
	stream.Favorites = favorites
	return stream
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
