// internal/workers/listing/extract-keywords/handler.go
package extractkeywords

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
	TaskType   = "listing-assistant.extract-keywords"
	WorkerName = "extract-keywords"
)

const systemPrompt = "You are an SEO specialist for online marketplaces. Answer with a single JSON object and nothing else."

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
			return Extract(lex.Stop(), input.Title, input.Description)
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("keywords extracted", map[string]interface{}{
		"primary":      len(output.Primary),
		"searchVolume": output.SearchVolume,
		"demoMode":     output.DemoMode,
	})
	return output, nil
}

func buildPrompt(input *Input) string {
	return fmt.Sprintf(`Extract search keywords for this marketplace listing.

Title: %s
Description: %s

Respond with JSON: {"primary": [5 strings], "secondary": [up to 7 strings], "longTail": [5 phrases],
"searchVolume": "low"|"medium"|"high"}`, input.Title, input.Description)
}
