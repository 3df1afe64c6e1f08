// internal/workers/listing/extract-keywords/keywords.go
package extractkeywords

import (
	"listing-assistant/internal/common/textanalysis"
)

const (
	primaryCount   = 5
	secondaryCount = 7
)

// Extract ranks the listing's terms and synthesizes long-tail phrases from
// the title.
func Extract(stop textanalysis.StopWords, title, description string) *Output {
	keywords := textanalysis.ExtractKeywords(title+" "+description, stop)

	return &Output{
		Primary:      window(keywords, 0, primaryCount),
		Secondary:    window(keywords, primaryCount, primaryCount+secondaryCount),
		LongTail:     longTail(title),
		SearchVolume: searchVolume(len(keywords)),
	}
}

func window(words []string, from, to int) []string {
	if from > len(words) {
		from = len(words)
	}
	if to > len(words) {
		to = len(words)
	}
	return append([]string{}, words[from:to]...)
}

func longTail(title string) []string {
	words := textanalysis.SignificantWords(title)
	first := wordAt(words, 0, "product")
	name := or(title, "product")

	return []string{
		"best " + first,
		"buy " + name + " online",
		wordAt(words, 0, "quality") + " " + wordAt(words, 1, "product") + " for sale",
		"premium " + name + " deals",
		"top rated " + first,
	}
}

func wordAt(words []string, i int, fallback string) string {
	if i < len(words) {
		return words[i]
	}
	return fallback
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// searchVolume buckets the number of distinct terms.
func searchVolume(distinct int) string {
	switch {
	case distinct > 15:
		return VolumeHigh
	case distinct > 8:
		return VolumeMedium
	default:
		return VolumeLow
	}
}
