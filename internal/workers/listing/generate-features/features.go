// internal/workers/listing/generate-features/features.go
package generatefeatures

import (
	"listing-assistant/internal/common/textanalysis"
)

var baseFeatures = []string{
	"Premium quality construction ensures lasting durability and reliability",
	"Easy to use right out of the box with intuitive design",
	"Versatile functionality suitable for multiple applications",
	"Exceptional value combining quality with competitive pricing",
	"Trusted by thousands of satisfied customers worldwide",
	"Backed by comprehensive warranty for complete peace of mind",
}

// Features builds the bullet list. The description's top keyword leads the
// list and the second one closes it, within the seven-entry cap.
func Features(stop textanalysis.StopWords, description string) *Output {
	var keywords []string
	if description != "" {
		keywords = textanalysis.ExtractKeywords(description, stop)
	}

	features := make([]string, 0, len(baseFeatures)+2)
	if len(keywords) > 0 {
		features = append(features, textanalysis.CapitalizeWords(keywords[0])+" technology for superior performance")
	}
	features = append(features, baseFeatures...)
	if len(keywords) > 1 {
		features = append(features, "Advanced "+keywords[1]+" design for optimal results")
	}

	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}
	return &Output{Features: features}
}
