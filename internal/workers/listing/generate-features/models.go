// internal/workers/listing/generate-features/models.go
package generatefeatures

import (
	"fmt"

	"listing-assistant/internal/models"
)

type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Output struct {
	Features []string `json:"features"`
	models.Provenance
}

const maxFeatures = 7

func (o *Output) Validate() error {
	if len(o.Features) == 0 {
		return fmt.Errorf("no features")
	}
	if len(o.Features) > maxFeatures {
		o.Features = o.Features[:maxFeatures]
	}
	return nil
}
