// internal/workers/listing/generate-description/handler_test.go
package generatedescription

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-assistant/internal/common/genai/genaitest"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/models"
)

func TestVariants(t *testing.T) {
	out := Variants("Oak Desk", models.NewFlexNumber(249.5), "Home & Garden")

	require.Len(t, out.Variants, 3)
	assert.Equal(t, []string{StyleProfessional, StyleCasual, StyleMarketing},
		[]string{out.Variants[0].Style, out.Variants[1].Style, out.Variants[2].Style})
	assert.Contains(t, out.Variants[0].Text, "This premium Oak Desk represents exceptional quality and outstanding value in the Home & Garden.")
	assert.Contains(t, out.Variants[1].Text, "Looking for an awesome Oak Desk?")
	assert.Contains(t, out.Variants[1].Text, "At $249.5, it's genuinely a fantastic deal.")
	assert.Contains(t, out.Variants[2].Text, "Transform your experience with this incredible Oak Desk!")
	assert.Equal(t, "Persuasive with strong call-to-action", out.Variants[2].Description)
}

func TestVariants_Defaults(t *testing.T) {
	out := Variants("", models.FlexNumber{}, "")

	assert.Contains(t, out.Variants[0].Text, "This premium product represents")
	assert.Contains(t, out.Variants[0].Text, "value in the marketplace.")
	assert.Contains(t, out.Variants[1].Text, "At competitively priced, it's")
}

func TestVariants_PriceAsSent(t *testing.T) {
	var input Input
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Mug","price":"12.00"}`), &input))

	out := Variants(input.Title, input.Price, input.Category)
	assert.Contains(t, out.Variants[1].Text, "At $12.00,")
}

func TestExecute(t *testing.T) {
	t.Run("demo mode", func(t *testing.T) {
		h := NewHandler(&Config{}, genaitest.Demo(), logger.NewTestLogger(t))
		out, err := h.Execute(context.Background(), &Input{Title: "Mug"})
		require.NoError(t, err)
		assert.True(t, out.DemoMode)
		assert.Len(t, out.Variants, 3)
	})

	t.Run("generative", func(t *testing.T) {
		gen := genaitest.Reply(`{"variants":[{"style":"casual","text":"A mug you will love.","description":"friendly"}]}`)
		h := NewHandler(&Config{}, gen, logger.NewTestLogger(t))
		out, err := h.Execute(context.Background(), &Input{Title: "Mug", ExistingDescription: "white mug"})
		require.NoError(t, err)
		assert.False(t, out.DemoMode)
		require.Len(t, out.Variants, 1)
		assert.Contains(t, gen.Prompts()[0], "Current description: white mug")
	})

	t.Run("unparseable reply", func(t *testing.T) {
		h := NewHandler(&Config{}, genaitest.Reply("Sure! Here are some descriptions."), logger.NewTestLogger(t))
		_, err := h.Execute(context.Background(), &Input{Title: "Mug"})
		assert.Error(t, err)
	})
}
