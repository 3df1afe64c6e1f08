// internal/workers/listing/score-completeness/handler.go
package scorecompleteness

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"listing-assistant/internal/common/camunda"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/models"
)

const (
	TaskType   = "listing-assistant.score-completeness"
	WorkerName = "score-completeness"
)

// ProductStore loads stored listings by id.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	products     ProductStore
	errorHandler *errors.ErrorHandler
}

// NewHandler builds the scorer. products may be nil, in which case a
// productId in the input is ignored.
func NewHandler(config *Config, products ProductStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		products:     products,
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
	draft := input.ListingDraft
	if draft.ProductID != "" && h.products != nil {
		product, err := h.products.GetProduct(ctx, draft.ProductID)
		if err != nil {
			return nil, err
		}
		draft = draft.MergeOnto(product.Draft())
	}

	output := Score(draft)

	h.logger.Info("completeness scored", map[string]interface{}{
		"productId":    draft.ProductID,
		"score":        output.Score,
		"qualityLevel": output.QualityLevel,
	})
	return output, nil
}
