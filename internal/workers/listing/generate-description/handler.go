// internal/workers/listing/generate-description/handler.go
package generatedescription

import (
	"context"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"listing-assistant/internal/common/camunda"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/genai"
	"listing-assistant/internal/common/logger"
)

const (
	TaskType   = "listing-assistant.generate-description"
	WorkerName = "generate-description"
)

const systemPrompt = "You are a professional e-commerce copywriter. Answer with a single JSON object and nothing else."

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
	output, err := genai.WithFallback(ctx,
		func(ctx context.Context) (*Output, error) {
			return genai.Complete[Output](ctx, h.generator, buildPrompt(input), systemPrompt)
		},
		func() *Output {
			return Variants(input.Title, input.Price, input.Category)
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.Info("descriptions generated", map[string]interface{}{
		"variants": len(output.Variants),
		"demoMode": output.DemoMode,
	})
	return output, nil
}

func buildPrompt(input *Input) string {
	var b strings.Builder
	b.WriteString("Write three product descriptions for this marketplace listing.\n\n")
	fmt.Fprintf(&b, "Product: %s\n", input.Title)
	if input.Price.Present() {
		fmt.Fprintf(&b, "Price: $%s\n", input.Price.String())
	}
	if input.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", input.Category)
	}
	if input.ExistingDescription != "" {
		fmt.Fprintf(&b, "Current description: %s\n", input.ExistingDescription)
	}
	b.WriteString("\nUse the styles professional, casual and marketing. Respond with JSON: " +
		`{"variants": [{"style": string, "text": string, "description": string}]}`)
	return b.String()
}
