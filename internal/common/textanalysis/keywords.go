// Package textanalysis tokenizes listing text into ranked keywords.
package textanalysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// MinKeywordLength is the shortest token kept; shorter tokens are noise.
const MinKeywordLength = 4

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

// StopWords is a set of lowercase words excluded from keyword extraction.
type StopWords map[string]struct{}

// NewStopWords builds a set from a word list.
func NewStopWords(words []string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		s[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return s
}

// Contains reports whether word is a stop word. A nil set contains nothing.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// ExtractKeywords returns the distinct significant terms of text, most
// frequent first. Terms with equal counts keep first-seen order.
func ExtractKeywords(text string, stop StopWords) []string {
	normalized := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < MinKeywordLength || stop.Contains(word) {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

// SignificantWords lowercases s and returns its whitespace-separated words
// longer than three characters. Punctuation is kept.
func SignificantWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len(w) >= MinKeywordLength {
			out = append(out, w)
		}
	}
	return out
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CapitalizeWords uppercases the first letter of every word, where a word
// starts after any character that is not a letter, digit or underscore.
func CapitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		isWord := r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
		if isWord && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = isWord
	}
	return b.String()
}
