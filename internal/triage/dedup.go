package triage

import (
	"strings"

	"github.com/ternarybob/sentinel/internal/models"
)

// DuplicateThreshold is the Jaccard similarity above which two titles
// are treated as the same story.
const DuplicateThreshold = 0.7

// Merge combines a primary headline list with candidates from a secondary
// discovery channel, dropping any candidate whose title is a near-duplicate
// of one already seen. Every candidate is compared against every known
// title, which is quadratic but bounded by the per-source fetch caps.
func Merge(primary []*models.Headline, secondary []*models.Headline) []*models.Headline {
	combined := make([]*models.Headline, 0, len(primary)+len(secondary))
	combined = append(combined, primary...)

	existing := make([]string, 0, len(primary)+len(secondary))
	for _, h := range primary {
		existing = append(existing, strings.ToLower(h.Title))
	}

	for _, candidate := range secondary {
		title := strings.ToLower(candidate.Title)
		duplicate := false
		for _, known := range existing {
			if TitleSimilarity(known, title) > DuplicateThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		combined = append(combined, candidate)
		existing = append(existing, title)
	}

	return combined
}

// TitleSimilarity computes word-level Jaccard similarity between two titles
func TitleSimilarity(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1.0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
