// internal/workers/listing/analyze-pricing/pricing.go
package analyzepricing

import (
	"fmt"
	"math"
	"unicode/utf8"

	"listing-assistant/internal/common/lexicon"
	"listing-assistant/internal/models"
)

// DefaultBasePrice stands in for a missing or non-positive current price.
const DefaultBasePrice = 29.99

const (
	ratioMin      = 0.75
	ratioMax      = 1.35
	ratioBudget   = 0.80
	ratioPremium  = 1.30
	maxQuality    = 1.2
	qualityChars  = 200.0
	generalMarket = "general"
)

// Suggest derives a price band from the base price, the category multiplier
// and a description quality factor.
func Suggest(lex *lexicon.Lexicon, description string, currentPrice models.FlexNumber, category string) *Output {
	base := DefaultBasePrice
	if currentPrice.Valid && currentPrice.Value > 0 {
		base = currentPrice.Value
	}

	final := base * lex.Multiplier(category) * qualityFactor(description)

	market := category
	if market == "" {
		market = generalMarket
	}
	return &Output{
		SuggestedMin: roundCents(final * ratioMin),
		SuggestedMax: roundCents(final * ratioMax),
		Optimal:      roundCents(final),
		Reasoning: fmt.Sprintf("Pricing analysis based on %s category market standards, product description quality, and competitive positioning. "+
			"This range balances profitability with market competitiveness.", market),
		PricePoints: PricePoints{
			Budget:   roundCents(final * ratioBudget),
			Standard: roundCents(final),
			Premium:  roundCents(final * ratioPremium),
		},
	}
}

// qualityFactor is min(len/200, 1.2), or 1 without a description.
func qualityFactor(description string) float64 {
	if description == "" {
		return 1.0
	}
	return math.Min(float64(utf8.RuneCountInString(description))/qualityChars, maxQuality)
}

// roundCents rounds half up to two decimals.
func roundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
