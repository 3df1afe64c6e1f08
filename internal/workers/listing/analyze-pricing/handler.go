// internal/workers/listing/analyze-pricing/handler.go
package analyzepricing

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
	TaskType   = "listing-assistant.analyze-pricing"
	WorkerName = "analyze-pricing"
)

const systemPrompt = "You are an e-commerce pricing analyst. Answer with a single JSON object and nothing else."

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
			return Suggest(lex, input.Description, input.CurrentPrice, input.Category)
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.Info("pricing analyzed", map[string]interface{}{
		"category": input.Category,
		"optimal":  output.Optimal,
		"demoMode": output.DemoMode,
	})
	return output, nil
}

func buildPrompt(input *Input) string {
	price := "not set"
	if input.CurrentPrice.Valid {
		price = input.CurrentPrice.String()
	}
	return fmt.Sprintf(`Suggest a price range for this marketplace listing.

Title: %s
Description: %s
Category: %s
Current price: %s

Respond with JSON: {"suggestedMin": number, "suggestedMax": number, "optimal": number, "reasoning": string,
"pricePoints": {"budget": number, "standard": number, "premium": number}}`,
		input.Title, input.Description, input.Category, price)
}
