// Package lexicon holds the keyword-to-category table and stop-word list the
// heuristic components read. The data is loaded once and treated as
// read-only while requests are served.
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"listing-assistant/internal/common/textanalysis"
)

// DefaultMultiplier applies to categories missing from the table.
const DefaultMultiplier = 1.0

//go:embed default.yaml
var defaultYAML []byte

// Category is one classifier bucket.
type Category struct {
	Name            string   `yaml:"name" json:"name"`
	Keywords        []string `yaml:"keywords" json:"keywords"`
	PriceMultiplier float64  `yaml:"price_multiplier" json:"price_multiplier"`
}

// Lexicon is an ordered category table plus stop words. Category order is
// the classifier's tie-break order.
type Lexicon struct {
	Categories []Category `yaml:"categories" json:"categories"`
	StopWords  []string   `yaml:"stop_words" json:"stop_words"`

	stop textanalysis.StopWords
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	lex, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// Parse decodes YAML (or JSON, which is valid YAML) and validates it.
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	lex.index()
	return &lex, nil
}

// Validate rejects empty or duplicate category names and non-positive
// multipliers.
func (l *Lexicon) Validate() error {
	if len(l.Categories) == 0 {
		return fmt.Errorf("lexicon has no categories")
	}
	seen := make(map[string]bool, len(l.Categories))
	for i, c := range l.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("category %q: duplicate name", name)
		}
		seen[name] = true
		if c.PriceMultiplier <= 0 {
			return fmt.Errorf("category %q: price_multiplier must be positive, got %v", name, c.PriceMultiplier)
		}
	}
	return nil
}

func (l *Lexicon) index() {
	for i := range l.Categories {
		kws := l.Categories[i].Keywords
		for j, kw := range kws {
			kws[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	l.stop = textanalysis.NewStopWords(l.StopWords)
}

// Stop returns the stop-word set.
func (l *Lexicon) Stop() textanalysis.StopWords {
	if l.stop == nil {
		return textanalysis.NewStopWords(l.StopWords)
	}
	return l.stop
}

// Multiplier returns the price multiplier for an exact category name.
func (l *Lexicon) Multiplier(category string) float64 {
	for _, c := range l.Categories {
		if c.Name == category {
			return c.PriceMultiplier
		}
	}
	return DefaultMultiplier
}

// Names lists category names in declaration order.
func (l *Lexicon) Names() []string {
	names := make([]string, len(l.Categories))
	for i, c := range l.Categories {
		names[i] = c.Name
	}
	return names
}

// Encode serializes the lexicon as "yaml" or "json".
func (l *Lexicon) Encode(format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(l, "", "  ")
	case "yaml", "":
		return yaml.Marshal(l)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
