// internal/workers/listing/generate-features/handler.go
package generatefeatures

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"listing-assistant/internal/common/camunda"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/genai"
	"listing-assistant/internal/common/lexicon"
	"listing-assistant/internal/common/logger"
)

const (
	TaskType   = "listing-assistant.generate-features"
	WorkerName = "generate-features"
)

const systemPrompt = "You write concise product feature bullets for marketplace listings. Answer with a single JSON object and nothing else."

type Handler struct {
	config       *Config
	logger       logger.Logger
	generator    genai.Generator
	lexicon      *lexicon.Cache
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, gen genai.Generator, lex *lexicon.Cache, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		generator:    gen,
		lexicon:      lex,
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
	lex, err := h.lexicon.Get(ctx)
	if err != nil {
		return nil, err
	}

	output, err := genai.WithFallback(ctx,
		func(ctx context.Context) (*Output, error) {
			return genai.Complete[Output](ctx, h.generator, buildPrompt(input), systemPrompt)
		},
		func() *Output {
			return Features(lex.Stop(), input.Description)
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.Info("features generated", map[string]interface{}{
		"features": len(output.Features),
		"demoMode": output.DemoMode,
	})
	return output, nil
}

func buildPrompt(input *Input) string {
	return fmt.Sprintf(`List up to 7 key selling features for this product, one short sentence each.

Title: %s
Description: %s

Respond with JSON: {"features": [strings]}`, input.Title, input.Description)
}
