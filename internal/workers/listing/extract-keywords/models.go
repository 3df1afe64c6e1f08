// internal/workers/listing/extract-keywords/models.go
package extractkeywords

import (
	"fmt"

	"listing-assistant/internal/models"
)

type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Output struct {
	Primary      []string `json:"primary"`
	Secondary    []string `json:"secondary"`
	LongTail     []string `json:"longTail"`
	SearchVolume string   `json:"searchVolume"`
	models.Provenance
}

const (
	VolumeLow    = "low"
	VolumeMedium = "medium"
	VolumeHigh   = "high"
)

func (o *Output) Validate() error {
	switch o.SearchVolume {
	case VolumeLow, VolumeMedium, VolumeHigh:
	default:
		return fmt.Errorf("unknown search volume %q", o.SearchVolume)
	}
	if len(o.Primary) == 0 {
		return fmt.Errorf("no primary keywords")
	}
	if o.Secondary == nil {
		o.Secondary = []string{}
	}
	if o.LongTail == nil {
		o.LongTail = []string{}
	}
	return nil
}
