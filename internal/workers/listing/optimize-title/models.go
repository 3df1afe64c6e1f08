// internal/workers/listing/optimize-title/models.go
package optimizetitle

import (
	"fmt"

	"listing-assistant/internal/models"
)

type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type Output struct {
	Original    string   `json:"original"`
	Suggestions []string `json:"suggestions"`
	Analysis    string   `json:"analysis"`
	models.Provenance
}

const maxSuggestions = 3

// ErrTitleRequired is returned as the action result for an empty title.
var ErrTitleRequired = models.NewSoftError("Title is required")

func (o *Output) Validate() error {
	if len(o.Suggestions) == 0 {
		return fmt.Errorf("no suggestions")
	}
	if len(o.Suggestions) > maxSuggestions {
		o.Suggestions = o.Suggestions[:maxSuggestions]
	}
	return nil
}
