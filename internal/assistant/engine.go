// internal/assistant/engine.go
package assistant

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/genai"
	"listing-assistant/internal/common/lexicon"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/common/metrics"
	"listing-assistant/internal/common/observability"
	"listing-assistant/internal/common/validation"
	"listing-assistant/internal/models"
	analyzepricing "listing-assistant/internal/workers/listing/analyze-pricing"
	extractkeywords "listing-assistant/internal/workers/listing/extract-keywords"
	generatedescription "listing-assistant/internal/workers/listing/generate-description"
	generatefeatures "listing-assistant/internal/workers/listing/generate-features"
	optimizetitle "listing-assistant/internal/workers/listing/optimize-title"
	recommendcategory "listing-assistant/internal/workers/listing/recommend-category"
	scorecompleteness "listing-assistant/internal/workers/listing/score-completeness"
	"listing-assistant/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Catalog is the optional read side of the marketplace database.
type Catalog interface {
	scorecompleteness.ProductStore
	recommendcategory.CategoryLister
}

// Dependencies are the collaborators shared by the action handlers.
// Catalog and Observability may be nil.
type Dependencies struct {
	Generator     genai.Generator
	Lexicon       *lexicon.Cache
	Catalog       Catalog
	Observability *observability.Observability
	Registry      *registry.ActionRegistry
}

// Engine owns one handler per action. It is safe for concurrent use.
type Engine struct {
	logger  logger.Logger
	obs     *observability.Observability
	schemas *validation.SchemaSet

	score       *scorecompleteness.Handler
	description *generatedescription.Handler
	title       *optimizetitle.Handler
	category    *recommendcategory.Handler
	pricing     *analyzepricing.Handler
	keywords    *extractkeywords.Handler
	features    *generatefeatures.Handler
}

func NewEngine(cfg *config.Config, deps Dependencies, log logger.Logger) (*Engine, error) {
	if deps.Lexicon == nil {
		deps.Lexicon = lexicon.NewCache(nil)
	}
	if deps.Registry == nil {
		deps.Registry = registry.Default()
	}

	schemas, err := compileSchemas(deps.Registry)
	if err != nil {
		return nil, fmt.Errorf("compile action schemas: %w", err)
	}

	wcfg := func(a Action) config.WorkerConfig { return config.GetWorkerConfig(cfg, a.WorkerName()) }
	gen, lex := deps.Generator, deps.Lexicon

	return &Engine{
		logger:  log.With(map[string]interface{}{"component": "engine"}),
		obs:     deps.Observability,
		schemas: schemas,

		score:       scorecompleteness.NewHandler(scorecompleteness.LoadConfig(wcfg(ActionScoreCompleteness)), deps.Catalog, log),
		description: generatedescription.NewHandler(generatedescription.LoadConfig(wcfg(ActionGenerateDescription)), gen, log),
		title:       optimizetitle.NewHandler(optimizetitle.LoadConfig(wcfg(ActionOptimizeTitle)), gen, log),
		category:    recommendcategory.NewHandler(recommendcategory.LoadConfig(wcfg(ActionRecommendCategory)), gen, lex, deps.Catalog, log),
		pricing:     analyzepricing.NewHandler(analyzepricing.LoadConfig(wcfg(ActionAnalyzePricing)), gen, lex, log),
		keywords:    extractkeywords.NewHandler(extractkeywords.LoadConfig(wcfg(ActionExtractKeywords)), gen, lex, log),
		features:    generatefeatures.NewHandler(generatefeatures.LoadConfig(wcfg(ActionGenerateFeatures)), gen, lex, log),
	}, nil
}

type envelope struct {
	Action interface{}     `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Process handles one {action, data} envelope. Soft failures come back as
// a models.ErrorResult with a nil error.
func (e *Engine) Process(ctx context.Context, body []byte) (interface{}, error) {
	if !json.Valid(body) {
		return nil, errors.NewInvalidRequestError("Invalid JSON body", nil)
	}
	if err := e.validate(envelopeSchemaName, body); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.NewInvalidRequestError("Invalid JSON body", err)
	}

	name, _ := env.Action.(string)
	action, err := ParseAction(name)
	if err != nil {
		return nil, errors.NewInvalidActionError(name)
	}

	data := env.Data
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("{}")
	}
	if err := e.validate(string(action), data); err != nil {
		return nil, err
	}

	req, err := DecodeRequest(action, data)
	if err != nil {
		return nil, err
	}

	out, err := e.Dispatch(ctx, req)
	if body, ok := models.SoftResult(err); ok {
		return body, nil
	}
	return out, err
}

func (e *Engine) validate(schema string, doc []byte) error {
	result, err := e.schemas.ValidateJSON(schema, doc)
	if err != nil {
		return errors.NewInvalidRequestError("Invalid JSON body", err)
	}
	if !result.Valid {
		return errors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; "), result.Err())
	}
	return nil
}

// Dispatch runs the handler for req and records metrics for the call.
func (e *Engine) Dispatch(ctx context.Context, req Request) (interface{}, error) {
	action := string(req.Action())
	defer metrics.TrackActive(action)()
	start := time.Now()

	var (
		out interface{}
		err error
	)
	switch r := req.(type) {
	case ScoreCompletenessRequest:
		out, err = unwrap(e.score.Execute(ctx, &r.Input))
	case GenerateDescriptionRequest:
		out, err = unwrap(e.description.Execute(ctx, &r.Input))
	case OptimizeTitleRequest:
		out, err = unwrap(e.title.Execute(ctx, &r.Input))
	case RecommendCategoryRequest:
		out, err = unwrap(e.category.Execute(ctx, &r.Input))
	case AnalyzePricingRequest:
		out, err = unwrap(e.pricing.Execute(ctx, &r.Input))
	case ExtractKeywordsRequest:
		out, err = unwrap(e.keywords.Execute(ctx, &r.Input))
	case GenerateFeaturesRequest:
		out, err = unwrap(e.features.Execute(ctx, &r.Input))
	default:
		err = fmt.Errorf("%w: %T", ErrInvalidAction, req)
	}

	e.observe(ctx, action, out, err, time.Since(start))
	return out, err
}

// unwrap keeps a typed nil pointer out of the interface result.
func unwrap[T any](out *T, err error) (interface{}, error) {
	if err != nil || out == nil {
		return nil, err
	}
	return out, nil
}

type demoTagged interface {
	IsDemo() bool
}

func (e *Engine) observe(ctx context.Context, action string, out interface{}, err error, elapsed time.Duration) {
	fields := map[string]interface{}{
		"action":     action,
		"durationMs": elapsed.Milliseconds(),
	}

	if err != nil {
		code := errorCode(err)
		metrics.ObserveActionError(action, code, elapsed)
		e.obs.RecordAction(ctx, action, "error", elapsed)
		fields["errorCode"] = code
		fields["error"] = err.Error()
		e.logger.Warn("action failed", fields)
		return
	}

	source, status := metrics.SourceHeuristic, "success"
	if tagged, ok := out.(demoTagged); ok {
		if tagged.IsDemo() {
			status = "demo"
		} else {
			source = metrics.SourceGenerative
		}
		fields["demoMode"] = tagged.IsDemo()
	}
	metrics.ObserveAction(action, source, elapsed)
	e.obs.RecordAction(ctx, action, status, elapsed)
	e.logger.Info("action dispatched", fields)
}

func errorCode(err error) string {
	if stderrors.Is(err, genai.ErrMalformedResponse) {
		return string(errors.ErrCodeAIResponseMalformed)
	}
	if _, ok := models.SoftResult(err); ok {
		return string(errors.ErrCodeInvalidRequest)
	}
	if stderrors.Is(err, ErrInvalidAction) {
		return string(errors.ErrCodeInvalidAction)
	}
	return string(errors.CodeOf(err))
}

// JobWorker binds one action's job type to its Zeebe handler.
type JobWorker struct {
	Name     string
	TaskType string
	Handler  worker.JobHandler
}

// JobWorkers lists a Zeebe handler for every action.
func (e *Engine) JobWorkers() []JobWorker {
	handlers := map[Action]worker.JobHandler{
		ActionScoreCompleteness:   e.score.Handle,
		ActionGenerateDescription: e.description.Handle,
		ActionOptimizeTitle:       e.title.Handle,
		ActionRecommendCategory:   e.category.Handle,
		ActionAnalyzePricing:      e.pricing.Handle,
		ActionExtractKeywords:     e.keywords.Handle,
		ActionGenerateFeatures:    e.features.Handle,
	}

	out := make([]JobWorker, 0, len(allActions))
	for _, a := range allActions {
		out = append(out, JobWorker{Name: a.WorkerName(), TaskType: a.TaskType(), Handler: handlers[a]})
	}
	return out
}
