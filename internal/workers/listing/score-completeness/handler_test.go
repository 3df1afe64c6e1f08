// internal/workers/listing/score-completeness/handler_test.go
package scorecompleteness

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func createTestHandler(t *testing.T, store ProductStore) *Handler {
	return NewHandler(&Config{}, store, logger.NewTestLogger(t))
}

func completeDraft() models.ListingDraft {
	return models.ListingDraft{
		Title:       "Wireless Bluetooth Headphones Pro",
		Description: strings.Repeat("great sound ", 30),
		Images:      []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"},
		CategoryID:  "electronics",
		Price:       models.NewFlexNumber(99),
		Stock:       models.NewFlexNumber(10),
	}
}

func feedbackFor(out *Output, category string) FeedbackItem {
	for _, f := range out.Feedback {
		if f.Category == category {
			return f
		}
	}
	return FeedbackItem{}
}

// ==========================
// Rubric Tests
// ==========================

func TestScore_EmptyDraft(t *testing.T) {
	out := Score(models.ListingDraft{})

	assert.Equal(t, 0, out.Score)
	assert.Equal(t, 100, out.MaxScore)
	assert.Equal(t, LevelPoor, out.QualityLevel)
	assert.Equal(t, "Needs work. Complete missing fields for better results.", out.QualityMessage)
	require.Len(t, out.Feedback, 7)
	for _, f := range out.Feedback {
		assert.Equal(t, StatusMissing, f.Status, f.Category)
	}
	assert.Equal(t, []string{
		"Add a detailed description (at least 50 words)",
		"Add at least 4 product images",
		"Add a descriptive title (20-80 characters)",
	}, out.Recommendations)
}

func TestScore_CompleteDraft(t *testing.T) {
	out := Score(completeDraft())

	assert.Equal(t, 100, out.Score)
	assert.Equal(t, 100, out.Percentage)
	assert.Equal(t, LevelExcellent, out.QualityLevel)
	assert.Equal(t, "Excellent listing! Ready to publish.", out.QualityMessage)
	assert.Equal(t, "Great! 4 images added", feedbackFor(out, "Images").Message)
	assert.NotNil(t, out.Recommendations)
	assert.Empty(t, out.Recommendations)
}

func TestScore_PartialDraft(t *testing.T) {
	var input Input
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Lamp",
		"description": "Nice lamp for desk",
		"images": ["a.jpg", "b.jpg"],
		"category_id": "  ",
		"price": "abc",
		"stock": "0"
	}`), &input))

	out := Score(input.ListingDraft)

	assert.Equal(t, FeedbackItem{"Title", 1, 15, StatusPartial, "Title is too short. Aim for 20-80 characters."}, out.Feedback[0])
	assert.Equal(t, FeedbackItem{"Description", 2, 25, StatusPartial, "Add 46 more words for better detail (4/50 words)"}, out.Feedback[1])
	assert.Equal(t, FeedbackItem{"Images", 10, 20, StatusPartial, "Add 2 more images (2/4)"}, out.Feedback[2])
	assert.Equal(t, StatusMissing, out.Feedback[3].Status)
	assert.Equal(t, StatusMissing, out.Feedback[4].Status)
	assert.Equal(t, StatusComplete, out.Feedback[5].Status)
	assert.Equal(t, FeedbackItem{"Keywords", 5, 10, StatusPartial, "Add more descriptive keywords"}, out.Feedback[6])

	assert.Equal(t, 28, out.Score)
	assert.Equal(t, LevelPoor, out.QualityLevel)
	assert.Equal(t, []string{
		"Add 46 more words for better detail (4/50 words)",
		"Title is too short. Aim for 20-80 characters.",
		"Add 2 more images (2/4)",
	}, out.Recommendations)
}

func TestScoreTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		score  int
		status string
	}{
		{"exactly 20", strings.Repeat("a", 20), 15, StatusComplete},
		{"exactly 80", strings.Repeat("a", 80), 15, StatusComplete},
		{"too long capped", strings.Repeat("a", 81), 15, StatusPartial},
		{"short", strings.Repeat("a", 10), 3, StatusPartial},
		{"whitespace only", "    ", 0, StatusMissing},
		{"padded to complete", "  " + strings.Repeat("b", 25) + "  ", 15, StatusComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := scoreTitle(tt.title)
			assert.Equal(t, tt.score, f.Score)
			assert.Equal(t, tt.status, f.Status)
		})
	}

	assert.Equal(t, "Title is too long. Keep it under 80 characters.", scoreTitle(strings.Repeat("a", 81)).Message)
}

func TestScoreDescription_WordsWithoutLength(t *testing.T) {
	f := scoreDescription(strings.Repeat("ab ", 50))

	assert.Equal(t, StatusPartial, f.Status)
	assert.Equal(t, 25, f.Score)
	assert.Equal(t, "Expand the description to at least 200 characters", f.Message)
}

func TestScoreDescription_Monotonic(t *testing.T) {
	prev := -1
	for words := 0; words <= 60; words++ {
		f := scoreDescription(strings.Repeat("word ", words))
		assert.GreaterOrEqual(t, f.Score, prev, "words=%d", words)
		prev = f.Score
	}
}

func TestScoreStock(t *testing.T) {
	assert.Equal(t, StatusComplete, scoreStock(models.NewFlexNumber(0)).Status)
	assert.Equal(t, StatusMissing, scoreStock(models.NewFlexNumber(-1)).Status)
	assert.Equal(t, StatusMissing, scoreStock(models.FlexNumber{}).Status)
}

func TestClassifyQuality(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, LevelExcellent},
		{90, LevelExcellent},
		{89, LevelGood},
		{75, LevelGood},
		{74, LevelFair},
		{50, LevelFair},
		{49, LevelPoor},
		{0, LevelPoor},
	}
	for _, tt := range tests {
		level, _ := classifyQuality(tt.score)
		assert.Equal(t, tt.want, level, "score=%d", tt.score)
	}
}

func TestScore_Invariants(t *testing.T) {
	drafts := []models.ListingDraft{
		{},
		completeDraft(),
		{Title: "x", Images: []string{"a"}},
		{Description: strings.Repeat("long words here ", 40), Price: models.NewFlexNumber(-5)},
		{Title: strings.Repeat("t", 200), Description: "d", Stock: models.NewFlexNumber(3)},
	}

	for i, d := range drafts {
		out := Score(d)

		sum := 0
		for _, f := range out.Feedback {
			assert.GreaterOrEqual(t, f.Score, 0)
			assert.LessOrEqual(t, f.Score, f.MaxScore)
			sum += f.Score
		}
		assert.Equal(t, out.Score, sum, "draft %d", i)
		assert.GreaterOrEqual(t, out.Score, 0)
		assert.LessOrEqual(t, out.Score, 100)
		assert.LessOrEqual(t, len(out.Recommendations), 3)

		incomplete := map[string]bool{}
		for _, f := range out.Feedback {
			if f.Status != StatusComplete {
				incomplete[f.Message] = true
			}
		}
		for _, r := range out.Recommendations {
			assert.True(t, incomplete[r], "recommendation %q", r)
		}

		again, _ := json.Marshal(Score(d))
		first, _ := json.Marshal(out)
		assert.JSONEq(t, string(first), string(again))
	}
}

// ==========================
// Handler Tests
// ==========================

func TestExecute_LoadsStoredListing(t *testing.T) {
	store := new(mockProductStore)
	stored := completeDraft()
	store.On("GetProduct", mock.Anything, "p-1").Return(&models.Product{
		ID:          "p-1",
		Title:       stored.Title,
		Description: stored.Description,
		Price:       99,
		Stock:       3,
		CategoryID:  "electronics",
		Images:      stored.Images,
	}, nil)

	h := createTestHandler(t, store)
	out, err := h.Execute(context.Background(), &Input{models.ListingDraft{ProductID: "p-1", Title: "Lamp"}})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, out.Feedback[0].Status)
	assert.Equal(t, 86, out.Score)
	store.AssertExpectations(t)
}

func TestExecute_StoreError(t *testing.T) {
	store := new(mockProductStore)
	store.On("GetProduct", mock.Anything, "missing").Return(nil, errors.NewListingNotFoundError("missing"))

	h := createTestHandler(t, store)
	_, err := h.Execute(context.Background(), &Input{models.ListingDraft{ProductID: "missing"}})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeListingNotFound, errors.CodeOf(err))
}

func TestExecute_NoStoreIgnoresProductID(t *testing.T) {
	h := createTestHandler(t, nil)
	out, err := h.Execute(context.Background(), &Input{models.ListingDraft{ProductID: "p-1"}})

	require.NoError(t, err)
	assert.Equal(t, 0, out.Score)
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, int64(2000), LoadConfig(config.WorkerConfig{Timeout: 2000}).Timeout.Milliseconds())
	assert.Equal(t, int64(10000), LoadConfig(config.WorkerConfig{}).Timeout.Milliseconds())
}
