// internal/workers/listing/recommend-category/classifier.go
package recommendcategory

import (
	"fmt"
	"sort"
	"strings"

	"listing-assistant/internal/common/lexicon"
)

// FallbackCategory is recommended when nothing matches and the caller
// offered no categories.
const FallbackCategory = "General"

type categoryScore struct {
	name string
	hits int
}

// Recommend classifies listing text against the lexicon. A category scores
// one point per keyword found as a substring of the text; the first category
// with the highest score wins.
func Recommend(lex *lexicon.Lexicon, title, description string, available []string) *Output {
	text := strings.ToLower(title + " " + description)

	scores := make([]categoryScore, 0, len(lex.Categories))
	best, bestHits := "", 0
	for _, c := range lex.Categories {
		hits := 0
		for _, kw := range c.Keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		scores = append(scores, categoryScore{name: c.Name, hits: hits})
		if hits > bestHits {
			best, bestHits = c.Name, hits
		}
	}

	if best == "" && len(available) > 0 {
		best = available[0]
	}

	alternatives := make([]categoryScore, 0, len(scores))
	for _, s := range scores {
		if s.name != best {
			alternatives = append(alternatives, s)
		}
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].hits > alternatives[j].hits
	})

	names := make([]string, 0, maxAlternatives)
	for i := 0; i < len(alternatives) && i < maxAlternatives; i++ {
		names = append(names, alternatives[i].name)
	}

	if best == "" {
		best = FallbackCategory
	}
	return &Output{
		Recommended:  best,
		Confidence:   confidenceFor(bestHits),
		Reasoning:    fmt.Sprintf("Based on keyword analysis of your title and description, this category best matches your product characteristics. Found %d relevant indicators.", bestHits),
		Alternatives: names,
	}
}

func confidenceFor(hits int) string {
	switch {
	case hits > 3:
		return ConfidenceHigh
	case hits > 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
