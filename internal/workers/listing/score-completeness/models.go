// internal/workers/listing/score-completeness/models.go
package scorecompleteness

import "listing-assistant/internal/models"

// Input is the listing draft to score. A productId loads the stored listing
// first; fields sent alongside it take precedence.
type Input struct {
	models.ListingDraft
}

type Output struct {
	Score           int            `json:"score"`
	MaxScore        int            `json:"maxScore"`
	Percentage      int            `json:"percentage"`
	QualityLevel    string         `json:"qualityLevel"`
	QualityMessage  string         `json:"qualityMessage"`
	Feedback        []FeedbackItem `json:"feedback"`
	Recommendations []string       `json:"recommendations"`
}

type FeedbackItem struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// Deficit is the number of points still available.
func (f FeedbackItem) Deficit() int {
	return f.MaxScore - f.Score
}

const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
	StatusMissing  = "missing"
)

const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"
)
