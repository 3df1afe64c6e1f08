// internal/workers/listing/score-completeness/rubric.go
package scorecompleteness

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"listing-assistant/internal/common/textanalysis"
	"listing-assistant/internal/models"
)

const (
	maxTitle       = 15
	maxDescription = 25
	maxImages      = 20
	maxCategory    = 10
	maxPrice       = 10
	maxStock       = 10
	maxKeywords    = 10

	MaxScore = maxTitle + maxDescription + maxImages + maxCategory + maxPrice + maxStock + maxKeywords

	titleMinChars       = 20
	titleMaxChars       = 80
	descriptionMinWords = 50
	descriptionMinChars = 200
	targetImages        = 4
	keywordMinChars     = 100

	maxRecommendations = 3
)

// Score applies the completeness rubric to a draft. It is total: every
// draft, including the empty one, produces a result.
func Score(d models.ListingDraft) *Output {
	feedback := []FeedbackItem{
		scoreTitle(d.Title),
		scoreDescription(d.Description),
		scoreImages(d.Images),
		scoreCategory(d.CategoryID),
		scorePrice(d.Price),
		scoreStock(d.Stock),
		scoreKeywords(d.Title, d.Description),
	}

	total := 0
	for _, f := range feedback {
		total += f.Score
	}
	level, message := classifyQuality(total)

	return &Output{
		Score:           total,
		MaxScore:        MaxScore,
		Percentage:      total,
		QualityLevel:    level,
		QualityMessage:  message,
		Feedback:        feedback,
		Recommendations: recommendations(feedback),
	}
}

func scoreTitle(title string) FeedbackItem {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case length >= titleMinChars && length <= titleMaxChars:
		return FeedbackItem{"Title", maxTitle, maxTitle, StatusComplete, "Excellent title length"}
	case length > 0:
		msg := "Title is too long. Keep it under 80 characters."
		if length < titleMinChars {
			msg = "Title is too short. Aim for 20-80 characters."
		}
		return FeedbackItem{"Title", proportional(length, 50, maxTitle), maxTitle, StatusPartial, msg}
	default:
		return FeedbackItem{"Title", 0, maxTitle, StatusMissing, "Add a descriptive title (20-80 characters)"}
	}
}

func scoreDescription(description string) FeedbackItem {
	trimmed := strings.TrimSpace(description)
	length := utf8.RuneCountInString(trimmed)
	words := textanalysis.WordCount(trimmed)

	switch {
	case words >= descriptionMinWords && length >= descriptionMinChars:
		return FeedbackItem{"Description", maxDescription, maxDescription, StatusComplete, "Comprehensive description"}
	case length > 0:
		msg := fmt.Sprintf("Add %d more words for better detail (%d/50 words)", descriptionMinWords-words, words)
		if words >= descriptionMinWords {
			msg = "Expand the description to at least 200 characters"
		}
		return FeedbackItem{"Description", proportional(words, descriptionMinWords, maxDescription), maxDescription, StatusPartial, msg}
	default:
		return FeedbackItem{"Description", 0, maxDescription, StatusMissing, "Add a detailed description (at least 50 words)"}
	}
}

func scoreImages(images []string) FeedbackItem {
	n := len(images)
	switch {
	case n >= targetImages:
		return FeedbackItem{"Images", maxImages, maxImages, StatusComplete, fmt.Sprintf("Great! %d images added", n)}
	case n > 0:
		return FeedbackItem{"Images", n * 5, maxImages, StatusPartial, fmt.Sprintf("Add %d more images (%d/4)", targetImages-n, n)}
	default:
		return FeedbackItem{"Images", 0, maxImages, StatusMissing, "Add at least 4 product images"}
	}
}

func scoreCategory(categoryID string) FeedbackItem {
	if strings.TrimSpace(categoryID) != "" {
		return FeedbackItem{"Category", maxCategory, maxCategory, StatusComplete, "Category selected"}
	}
	return FeedbackItem{"Category", 0, maxCategory, StatusMissing, "Select a category for better discoverability"}
}

func scorePrice(price models.FlexNumber) FeedbackItem {
	if price.Valid && price.Value > 0 {
		return FeedbackItem{"Price", maxPrice, maxPrice, StatusComplete, "Price set"}
	}
	return FeedbackItem{"Price", 0, maxPrice, StatusMissing, "Set a competitive price"}
}

func scoreStock(stock models.FlexNumber) FeedbackItem {
	if stock.Valid && stock.Value >= 0 {
		return FeedbackItem{"Stock", maxStock, maxStock, StatusComplete, "Stock quantity specified"}
	}
	return FeedbackItem{"Stock", 0, maxStock, StatusMissing, "Specify stock quantity"}
}

func scoreKeywords(title, description string) FeedbackItem {
	if title == "" || description == "" {
		return FeedbackItem{"Keywords", 0, maxKeywords, StatusMissing, "Add keywords for better search visibility"}
	}
	if utf8.RuneCountInString(title+" "+description) > keywordMinChars {
		return FeedbackItem{"Keywords", maxKeywords, maxKeywords, StatusComplete, "Good keyword coverage"}
	}
	return FeedbackItem{"Keywords", 5, maxKeywords, StatusPartial, "Add more descriptive keywords"}
}

// proportional is min(limit, floor(n/target*limit)).
func proportional(n, target, limit int) int {
	score := int(math.Floor(float64(n) / float64(target) * float64(limit)))
	if score > limit {
		return limit
	}
	return score
}

func classifyQuality(score int) (string, string) {
	switch {
	case score >= 90:
		return LevelExcellent, "Excellent listing! Ready to publish."
	case score >= 75:
		return LevelGood, "Good listing. A few improvements would make it great."
	case score >= 50:
		return LevelFair, "Fair listing. Add more details to attract buyers."
	default:
		return LevelPoor, "Needs work. Complete missing fields for better results."
	}
}

// recommendations returns up to three messages for unfinished fields, the
// largest deficit first. Ties keep rubric order.
func recommendations(feedback []FeedbackItem) []string {
	open := make([]FeedbackItem, 0, len(feedback))
	for _, f := range feedback {
		if f.Status != StatusComplete {
			open = append(open, f)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Deficit() > open[j].Deficit()
	})

	out := make([]string, 0, maxRecommendations)
	for i := 0; i < len(open) && i < maxRecommendations; i++ {
		out = append(out, open[i].Message)
	}
	return out
}
