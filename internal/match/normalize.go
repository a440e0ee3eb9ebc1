package match

import (
	"regexp"
	"strings"
)

var (
	// noisePattern flags titles that are almost never the canonical recording.
	noisePattern = regexp.MustCompile(`(?i)\b(podcast|dj ?set|concert|live|snippet|extrait)\b`)

	// originalPhrase matches the redundant "(original mix)" family of qualifiers.
	originalPhrase = regexp.MustCompile(`(?i)\(?\s*\b(original mix|original version|original)\b\s*\)?`)

	// punctNoise is the punctuation stripped before comparisons.
	punctNoise = regexp.MustCompile("[&\\-\"'~#.,@_]")

	parenSegment   = regexp.MustCompile(`\(([^)]*)\)`)
	bracketSegment = regexp.MustCompile(`\[([^\]]*)\]`)

	whitespace = regexp.MustCompile(`\s+`)
)

// IsNoise reports whether a title matches the podcast/dj set/concert/live/
// snippet/extrait pattern.
func IsNoise(title string) bool {
	return noisePattern.MatchString(title)
}

// Normalize lowercases s and strips punctuation noise, the "(original mix)"
// qualifier family and any artist/label substrings, collapsing the remaining
// whitespace. The result is only used for containment and equality checks.
func Normalize(s, artist, label string) string {
	out := strings.ToLower(s)
	out = originalPhrase.ReplaceAllString(out, " ")
	out = punctNoise.ReplaceAllString(out, " ")

	for _, sub := range []string{artist, label} {
		if sub == "" {
			continue
		}
		cleaned := strings.ToLower(sub)
		cleaned = punctNoise.ReplaceAllString(cleaned, " ")
		cleaned = collapse(cleaned)
		if cleaned != "" {
			out = strings.ReplaceAll(out, cleaned, " ")
		}
	}

	return collapse(out)
}

// Segments extracts the parenthetical and bracketed qualifiers of a title.
func Segments(title string) []string {
	var segments []string
	for _, re := range []*regexp.Regexp{parenSegment, bracketSegment} {
		for _, m := range re.FindAllStringSubmatch(title, -1) {
			if seg := strings.TrimSpace(m[1]); seg != "" {
				segments = append(segments, seg)
			}
		}
	}
	return segments
}

// collapse trims and squeezes runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
