// internal/workers/listing/generate-features/handler_test.go
package generatefeatures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-assistant/internal/common/genai/genaitest"
	"listing-assistant/internal/common/lexicon"
	"listing-assistant/internal/common/logger"
)

func TestFeatures_NoDescription(t *testing.T) {
	out := Features(lexicon.Default().Stop(), "")
	assert.Equal(t, baseFeatures, out.Features)
}

func TestFeatures_OneKeyword(t *testing.T) {
	out := Features(lexicon.Default().Stop(), "the titanium is")

	require.Len(t, out.Features, 7)
	assert.Equal(t, "Titanium technology for superior performance", out.Features[0])
	assert.Equal(t, baseFeatures, out.Features[1:])
}

func TestFeatures_CapAtSeven(t *testing.T) {
	out := Features(lexicon.Default().Stop(), "noise cancelling noise reduction")

	require.Len(t, out.Features, 7)
	assert.Equal(t, "Noise technology for superior performance", out.Features[0])
	assert.NotContains(t, out.Features, "Advanced cancelling design for optimal results")
}

func TestFeatures_DoesNotShareBaseList(t *testing.T) {
	out := Features(lexicon.Default().Stop(), "")
	out.Features[0] = "changed"
	assert.NotEqual(t, "changed", baseFeatures[0])
}

func TestExecute(t *testing.T) {
	t.Run("demo mode", func(t *testing.T) {
		h := NewHandler(&Config{}, genaitest.Demo(), lexicon.NewCache(nil), logger.NewTestLogger(t))
		out, err := h.Execute(context.Background(), &Input{Title: "Kettle", Description: "electric kettle"})
		require.NoError(t, err)
		assert.True(t, out.DemoMode)
		assert.Equal(t, "Electric technology for superior performance", out.Features[0])
	})

	t.Run("generative capped", func(t *testing.T) {
		gen := genaitest.Reply(`{"features":["1","2","3","4","5","6","7","8","9"]}`)
		h := NewHandler(&Config{}, gen, lexicon.NewCache(nil), logger.NewTestLogger(t))
		out, err := h.Execute(context.Background(), &Input{Title: "Kettle"})
		require.NoError(t, err)
		assert.False(t, out.DemoMode)
		assert.Len(t, out.Features, 7)
	})
}
