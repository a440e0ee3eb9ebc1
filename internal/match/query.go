package match

import (
	"strings"

	"github.com/desertthunder/encore/internal/models"
)

// BuildQuery constructs the streaming search query for a release track:
// "<artist> - <title>", with a derived remix tag appended when the title does
// not already carry a parenthetical or bracketed qualifier. Square brackets
// are normalized to parentheses.
func BuildQuery(track models.ReleaseTrack, artist string) string {
	title := strings.TrimSpace(track.Title)
	query := artist + " - " + title

	if !strings.ContainsAny(title, "([") {
		if tag := remixTag(track.ExtraArtists); tag != "" {
			query += " (" + tag + ")"
		}
	}

	return normalizeBrackets(query)
}

// remixTag derives the qualifier from a track's extra-artist credits.
//
// A single credit becomes "name role". With two or more credits, consecutive
// entries sharing a role fold into "A and B role"; runs with different roles
// are joined with commas.
func remixTag(extra []models.TrackArtist) string {
	switch len(extra) {
	case 0:
		return ""
	case 1:
		return strings.TrimSpace(extra[0].Name + " " + extra[0].Role)
	}

	var parts []string
	for i := 0; i < len(extra); {
		j := i
		names := []string{extra[i].Name}
		for j+1 < len(extra) && extra[j+1].Role == extra[i].Role {
			j++
			names = append(names, extra[j].Name)
		}
		parts = append(parts, strings.TrimSpace(strings.Join(names, " and ")+" "+extra[i].Role))
		i = j + 1
	}

	return strings.Join(parts, ", ")
}

// normalizeBrackets rewrites square brackets as parentheses.
func normalizeBrackets(s string) string {
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}
