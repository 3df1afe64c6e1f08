package camunda

import (
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/models"
)

type sampleInput struct {
	Title string            `json:"title"`
	Price models.FlexNumber `json:"price"`
}

type sampleOutput struct {
	Score int `json:"score"`
}

func createMockJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                12345,
		Type:               "listing-assistant.score-completeness",
		ProcessInstanceKey: 67890,
		Retries:            3,
		Variables:          variables,
	}}
}

func TestDecodeVariables(t *testing.T) {
	in, err := DecodeVariables[sampleInput](createMockJob(`{"title":"Desk Lamp","price":"19.50"}`))
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", in.Title)
	assert.InDelta(t, 19.5, in.Price.Value, 1e-9)
}

func TestDecodeVariables_Empty(t *testing.T) {
	in, err := DecodeVariables[sampleInput](createMockJob(""))
	require.NoError(t, err)
	assert.Empty(t, in.Title)
	assert.False(t, in.Price.Valid)
}

func TestDecodeVariables_Invalid(t *testing.T) {
	_, err := DecodeVariables[sampleInput](createMockJob(`{"title":`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestJobVariables(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out := &sampleOutput{Score: 80}
		vars, err := JobVariables(out, nil)
		require.NoError(t, err)
		assert.Same(t, out, vars)
	})

	t.Run("soft error becomes result", func(t *testing.T) {
		vars, err := JobVariables[sampleOutput](nil, fmt.Errorf("wrap: %w", models.NewSoftError("Title is required")))
		require.NoError(t, err)
		assert.Equal(t, models.ErrorResult{Error: "Title is required"}, vars)
	})

	t.Run("hard error passes through", func(t *testing.T) {
		hard := errors.NewListingNotFoundError("p-1")
		vars, err := JobVariables[sampleOutput](nil, hard)
		assert.Nil(t, vars)
		assert.Same(t, hard, err)
	})
}

func TestBackoffDelay(t *testing.T) {
	rc := DefaultRetryConfig
	assert.Equal(t, rc.BaseDelay, backoffDelay(rc, 0))
	assert.Equal(t, 2*rc.BaseDelay, backoffDelay(rc, 1))
	assert.Equal(t, rc.MaxDelay, backoffDelay(rc, 10))
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(fmt.Errorf("rpc error: code = Unavailable")))
	assert.True(t, isRetryableZeebeError(fmt.Errorf("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(fmt.Errorf("permission denied")))
}
