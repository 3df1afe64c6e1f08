package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"listing-assistant/internal/common/metrics"
	"listing-assistant/internal/models"
)

// ErrUnavailable means the generative path produced nothing usable and the
// heuristic should answer instead.
var ErrUnavailable = errors.New("generative backend unavailable")

// ErrMalformedResponse means the backend answered but the reply could not be
// parsed into the action's result shape. It is not retried and does not fall
// back.
var ErrMalformedResponse = models.NewSoftError("Failed to parse AI response")

// Tagged results can be marked as heuristic output.
type Tagged interface {
	MarkDemo()
}

// WithFallback prefers generate and falls back to heuristic on any failure
// except ErrMalformedResponse. Heuristic results are tagged demo mode.
func WithFallback[R Tagged](ctx context.Context, generate func(context.Context) (R, error), heuristic func() R) (R, error) {
	out, err := generate(ctx)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrMalformedResponse) {
		var zero R
		return zero, err
	}

	out = heuristic()
	out.MarkDemo()
	return out, nil
}

type validatable interface {
	Validate() error
}

// Complete runs one prompt and decodes the JSON object in the reply into a
// fresh T. A failed or demo-mode completion yields ErrUnavailable; a reply
// that is not a valid T yields ErrMalformedResponse.
func Complete[T any](ctx context.Context, gen Generator, prompt, systemPrompt string) (*T, error) {
	if gen == nil {
		return nil, ErrUnavailable
	}
	completion := gen.Generate(ctx, prompt, systemPrompt)
	if !completion.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, completion.Error)
	}

	var out T
	if err := DecodeJSON(completion.Content, &out); err != nil {
		metrics.GenAIRequests.WithLabelValues(metrics.OutcomeMalformed).Inc()
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if v, ok := any(&out).(validatable); ok {
		if err := v.Validate(); err != nil {
			metrics.GenAIRequests.WithLabelValues(metrics.OutcomeMalformed).Inc()
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return &out, nil
}

// DecodeJSON extracts the outermost JSON object from content, tolerating
// markdown code fences and surrounding prose, and decodes it into dst.
func DecodeJSON(content string, dst interface{}) error {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return fmt.Errorf("no JSON object in response")
	}
	return json.Unmarshal([]byte(text[start:end+1]), dst)
}
