// internal/workers/listing/generate-description/templates.go
package generatedescription

import (
	"fmt"

	"listing-assistant/internal/models"
)

// Variants fills the three description templates.
func Variants(title string, price models.FlexNumber, category string) *Output {
	product := title
	if product == "" {
		product = "product"
	}
	priceText := "competitively priced"
	if price.Present() {
		priceText = "$" + price.String()
	}
	market := category
	if market == "" {
		market = "marketplace"
	}

	return &Output{Variants: []Variant{
		{
			Style: StyleProfessional,
			Text: fmt.Sprintf("This premium %s represents exceptional quality and outstanding value in the %s. "+
				"Engineered with meticulous attention to detail, it meets the highest industry standards for performance and reliability. "+
				"Designed for discerning customers who refuse to compromise on excellence, this product delivers consistent results you can depend on. "+
				"Every aspect has been carefully considered to ensure maximum satisfaction and long-lasting durability. "+
				"Backed by our unwavering commitment to quality and customer service, this investment provides peace of mind and proven performance.",
				product, market),
			Description: "Formal and detailed, emphasizing quality",
		},
		{
			Style: StyleCasual,
			Text: fmt.Sprintf("Looking for an awesome %s? You just found it! "+
				"This has become one of our absolute customer favorites, and honestly, we're not surprised. "+
				"It's super practical, really well-made, and just works exactly like you'd want it to. "+
				"At %s, it's genuinely a fantastic deal. "+
				"People keep coming back to tell us how happy they are with their purchase. "+
				"Don't sleep on this one - grab yours while we still have them in stock!",
				product, priceText),
			Description: "Friendly and conversational",
		},
		{
			Style: StyleMarketing,
			Text: fmt.Sprintf("Transform your experience with this incredible %s! "+
				"Why settle for ordinary when extraordinary is within reach? "+
				"This isn't just another purchase - it's an investment in quality that pays dividends every single day. "+
				"Join thousands of delighted customers who've already made the smart choice. "+
				"With limited availability and growing demand, now is the perfect time to secure yours. "+
				"Order today and discover the difference that true quality makes. Your satisfaction is guaranteed!",
				product),
			Description: "Persuasive with strong call-to-action",
		},
	}}
}
