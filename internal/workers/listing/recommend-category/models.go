// internal/workers/listing/recommend-category/models.go
package recommendcategory

import (
	"fmt"

	"listing-assistant/internal/models"
)

type Input struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	AvailableCategories []string `json:"availableCategories"`
}

type Output struct {
	Recommended  string   `json:"recommended"`
	Confidence   string   `json:"confidence"`
	Reasoning    string   `json:"reasoning"`
	Alternatives []string `json:"alternatives"`
	models.Provenance
}

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

const maxAlternatives = 2

// Validate checks a generated recommendation and trims extra alternatives.
func (o *Output) Validate() error {
	if o.Recommended == "" {
		return fmt.Errorf("recommended is empty")
	}
	switch o.Confidence {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
	default:
		return fmt.Errorf("unknown confidence %q", o.Confidence)
	}
	if o.Alternatives == nil {
		o.Alternatives = []string{}
	}
	if len(o.Alternatives) > maxAlternatives {
		o.Alternatives = o.Alternatives[:maxAlternatives]
	}
	return nil
}
