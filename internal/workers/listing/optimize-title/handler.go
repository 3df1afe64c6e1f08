// internal/workers/listing/optimize-title/handler.go
package optimizetitle

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"listing-assistant/internal/common/camunda"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/genai"
	"listing-assistant/internal/common/logger"
)

const (
	TaskType   = "listing-assistant.optimize-title"
	WorkerName = "optimize-title"
)

const systemPrompt = "You are an SEO copywriter for marketplace listings. Answer with a single JSON object and nothing else."

type Handler struct {
	config       *Config
	logger       logger.Logger
	generator    genai.Generator
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, gen genai.Generator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		generator:    gen,
		errorHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.RunJob(camunda.JobRunner{
		Timeout:      h.config.Timeout,
		ErrorHandler: h.errorHandler,
		Logger:       h.logger,
	}, client, job, h.Execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	output, err := genai.WithFallback(ctx,
		func(ctx context.Context) (*Output, error) {
			out, err := genai.Complete[Output](ctx, h.generator, buildPrompt(input), systemPrompt)
			if err == nil {
				out.Original = input.Title
			}
			return out, err
		},
		func() *Output {
			return Suggest(input.Title, input.Category)
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.Info("title optimized", map[string]interface{}{
		"suggestions": len(output.Suggestions),
		"demoMode":    output.DemoMode,
	})
	return output, nil
}

func buildPrompt(input *Input) string {
	return fmt.Sprintf(`Suggest three improved titles for this marketplace listing.

Title: %s
Description: %s
Category: %s

Respond with JSON: {"suggestions": [3 strings], "analysis": string}`,
		input.Title, input.Description, input.Category)
}
