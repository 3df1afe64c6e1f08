// internal/workers/listing/generate-description/models.go
package generatedescription

import (
	"fmt"

	"listing-assistant/internal/models"
)

type Input struct {
	Title               string            `json:"title"`
	Price               models.FlexNumber `json:"price"`
	Category            string            `json:"category"`
	ExistingDescription string            `json:"existingDescription"`
}

type Output struct {
	Variants []Variant `json:"variants"`
	models.Provenance
}

// Variant is one description written in a given style.
type Variant struct {
	Style       string `json:"style"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

const (
	StyleProfessional = "professional"
	StyleCasual       = "casual"
	StyleMarketing    = "marketing"
)

func (o *Output) Validate() error {
	if len(o.Variants) == 0 {
		return fmt.Errorf("no variants")
	}
	for i, v := range o.Variants {
		if v.Style == "" || v.Text == "" {
			return fmt.Errorf("variant %d: style and text are required", i)
		}
	}
	return nil
}
