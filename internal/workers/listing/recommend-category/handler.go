// internal/workers/listing/recommend-category/handler.go
package recommendcategory

import (
	"context"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"listing-assistant/internal/common/camunda"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/genai"
	"listing-assistant/internal/common/lexicon"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/models"
)

const (
	TaskType   = "listing-assistant.recommend-category"
	WorkerName = "recommend-category"
)

const systemPrompt = "You are a marketplace taxonomy expert. Answer with a single JSON object and nothing else."

// CategoryLister returns the catalog's category names of one type.
type CategoryLister interface {
	CategoryNames(ctx context.Context, categoryType string) ([]string, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	generator    genai.Generator
	lexicon      *lexicon.Cache
	categories   CategoryLister
	errorHandler *errors.ErrorHandler
}

// NewHandler builds the classifier. categories may be nil.
func NewHandler(config *Config, gen genai.Generator, lex *lexicon.Cache, categories CategoryLister, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		generator:    gen,
		lexicon:      lex,
		categories:   categories,
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

	available := h.availableCategories(ctx, input)

	output, err := genai.WithFallback(ctx,
		func(ctx context.Context) (*Output, error) {
			return genai.Complete[Output](ctx, h.generator, h.buildPrompt(input, available), systemPrompt)
		},
		func() *Output {
			return Recommend(lex, input.Title, input.Description, available)
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.Info("category recommended", map[string]interface{}{
		"recommended": output.Recommended,
		"confidence":  output.Confidence,
		"demoMode":    output.DemoMode,
	})
	return output, nil
}

func (h *Handler) availableCategories(ctx context.Context, input *Input) []string {
	if len(input.AvailableCategories) > 0 || h.categories == nil {
		return input.AvailableCategories
	}
	names, err := h.categories.CategoryNames(ctx, models.CategoryTypeProduct)
	if err != nil {
		h.logger.Warn("catalog categories unavailable", map[string]interface{}{"error": err})
		return nil
	}
	return names
}

func (h *Handler) buildPrompt(input *Input, available []string) string {
	var b strings.Builder
	b.WriteString("Recommend the best marketplace category for this product.\n\n")
	fmt.Fprintf(&b, "Title: %s\nDescription: %s\n", input.Title, input.Description)
	if len(available) > 0 {
		fmt.Fprintf(&b, "Choose from: %s\n", strings.Join(available, ", "))
	}
	b.WriteString("\nRespond with JSON: {\"recommended\": string, \"confidence\": \"low\"|\"medium\"|\"high\", " +
		"\"reasoning\": string, \"alternatives\": [up to 2 other category names]}")
	return b.String()
}
