package triage

import (
	"sort"

	"github.com/ternarybob/sentinel/internal/models"
)

// Funnel runs keyword triage over a batch of headlines and selects the
// subset worth spending model calls on.
type Funnel struct {
	matcher *KeywordMatcher
}

// NewFunnel creates a triage funnel backed by the given matcher
func NewFunnel(matcher *KeywordMatcher) *Funnel {
	return &Funnel{matcher: matcher}
}

// Triage matches every headline against every asset taxonomy and returns
// results sorted by confidence, highest first. Discovered headlines carry
// model-assigned triage already and pass through untouched.
func (f *Funnel) Triage(headlines []*models.Headline, taxonomies map[string]models.KeywordTaxonomy) []models.TriageResult {
	results := make([]models.TriageResult, 0, len(headlines))

	assetIDs := make([]string, 0, len(taxonomies))
	for id := range taxonomies {
		assetIDs = append(assetIDs, id)
	}
	sort.Strings(assetIDs)

	for _, headline := range headlines {
		if headline.IsDiscovered() {
			results = append(results, models.TriageResult{
				Headline:        headline,
				Flagged:         headline.TriageStatus == models.TriageFlagged,
				Confidence:      headline.Confidence,
				MatchedAssets:   headline.MatchedAssets,
				MatchedKeywords: headline.MatchedKeywords,
			})
			continue
		}

		var best MatchResult
		var bestAsset string
		for _, assetID := range assetIDs {
			match := f.matcher.Match(headline, taxonomies[assetID])
			if match.Matches && match.Score > best.Score {
				best = match
				bestAsset = assetID
			}
		}

		headline.MatchedKeywords = best.Keywords
		headline.Confidence = best.Score
		if best.Matches {
			headline.TriageStatus = models.TriageFlagged
			headline.MatchedAssets = []string{bestAsset}
		} else {
			headline.TriageStatus = models.TriageNoise
			headline.MatchedAssets = nil
		}

		results = append(results, models.TriageResult{
			Headline:        headline,
			Flagged:         best.Matches,
			Confidence:      best.Score,
			MatchedAssets:   headline.MatchedAssets,
			MatchedKeywords: best.Keywords,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results
}

// TopFlagged returns up to limit flagged results, preserving the
// confidence ordering produced by Triage.
func TopFlagged(results []models.TriageResult, limit int) []models.TriageResult {
	flagged := make([]models.TriageResult, 0, limit)
	for _, r := range results {
		if !r.Flagged {
			continue
		}
		flagged = append(flagged, r)
		if len(flagged) >= limit {
			break
		}
	}
	return flagged
}
