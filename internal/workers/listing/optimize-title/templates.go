// internal/workers/listing/optimize-title/templates.go
package optimizetitle

const analysis = "Optimized for clarity, SEO, and conversion. Added descriptive keywords and value propositions " +
	"to improve search visibility and click-through rates."

// Suggest returns the three title patterns for a non-empty title.
func Suggest(title, category string) *Output {
	prefix := ""
	if category != "" {
		prefix = category + " - "
	}
	return &Output{
		Original: title,
		Suggestions: []string{
			"Premium " + title + " - High Quality & Durable",
			prefix + title + " | Professional Grade",
			"Best " + title + " - Top Rated & Trusted",
		},
		Analysis: analysis,
	}
}
