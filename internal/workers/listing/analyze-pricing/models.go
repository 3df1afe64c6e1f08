// internal/workers/listing/analyze-pricing/models.go
package analyzepricing

import (
	"fmt"

	"listing-assistant/internal/models"
)

type Input struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	CurrentPrice models.FlexNumber `json:"currentPrice"`
	Category     string            `json:"category"`
}

type Output struct {
	SuggestedMin float64     `json:"suggestedMin"`
	SuggestedMax float64     `json:"suggestedMax"`
	Optimal      float64     `json:"optimal"`
	Reasoning    string      `json:"reasoning"`
	PricePoints  PricePoints `json:"pricePoints"`
	models.Provenance
}

type PricePoints struct {
	Budget   float64 `json:"budget"`
	Standard float64 `json:"standard"`
	Premium  float64 `json:"premium"`
}

func (o *Output) Validate() error {
	if o.Optimal <= 0 {
		return fmt.Errorf("optimal price must be positive, got %v", o.Optimal)
	}
	if o.SuggestedMin > o.SuggestedMax {
		return fmt.Errorf("suggested range is inverted: %v > %v", o.SuggestedMin, o.SuggestedMax)
	}
	return nil
}
