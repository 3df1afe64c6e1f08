// internal/assistant/request.go
package assistant

import (
	"encoding/json"
	"fmt"

	"listing-assistant/internal/common/errors"
	analyzepricing "listing-assistant/internal/workers/listing/analyze-pricing"
	extractkeywords "listing-assistant/internal/workers/listing/extract-keywords"
	generatedescription "listing-assistant/internal/workers/listing/generate-description"
	generatefeatures "listing-assistant/internal/workers/listing/generate-features"
	optimizetitle "listing-assistant/internal/workers/listing/optimize-title"
	recommendcategory "listing-assistant/internal/workers/listing/recommend-category"
	scorecompleteness "listing-assistant/internal/workers/listing/score-completeness"
)

// Request is one decoded action payload. The set of implementations is
// closed; Engine.Dispatch switches over all of them.
type Request interface {
	Action() Action
	isRequest()
}

type ScoreCompletenessRequest struct{ Input scorecompleteness.Input }
type GenerateDescriptionRequest struct{ Input generatedescription.Input }
type OptimizeTitleRequest struct{ Input optimizetitle.Input }
type RecommendCategoryRequest struct{ Input recommendcategory.Input }
type AnalyzePricingRequest struct{ Input analyzepricing.Input }
type ExtractKeywordsRequest struct{ Input extractkeywords.Input }
type GenerateFeaturesRequest struct{ Input generatefeatures.Input }

func (ScoreCompletenessRequest) Action() Action   { return ActionScoreCompleteness }
func (GenerateDescriptionRequest) Action() Action { return ActionGenerateDescription }
func (OptimizeTitleRequest) Action() Action       { return ActionOptimizeTitle }
func (RecommendCategoryRequest) Action() Action   { return ActionRecommendCategory }
func (AnalyzePricingRequest) Action() Action      { return ActionAnalyzePricing }
func (ExtractKeywordsRequest) Action() Action     { return ActionExtractKeywords }
func (GenerateFeaturesRequest) Action() Action    { return ActionGenerateFeatures }

func (ScoreCompletenessRequest) isRequest()   {}
func (GenerateDescriptionRequest) isRequest() {}
func (OptimizeTitleRequest) isRequest()       {}
func (RecommendCategoryRequest) isRequest()   {}
func (AnalyzePricingRequest) isRequest()      {}
func (ExtractKeywordsRequest) isRequest()     {}
func (GenerateFeaturesRequest) isRequest()    {}

// DecodeRequest builds the request variant for action from its data object.
// Empty data decodes as {}.
func DecodeRequest(action Action, data json.RawMessage) (Request, error) {
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("{}")
	}

	switch action {
	case ActionScoreCompleteness:
		return build(data, func(in scorecompleteness.Input) ScoreCompletenessRequest { return ScoreCompletenessRequest{Input: in} })
	case ActionGenerateDescription:
		return build(data, func(in generatedescription.Input) GenerateDescriptionRequest { return GenerateDescriptionRequest{Input: in} })
	case ActionOptimizeTitle:
		return build(data, func(in optimizetitle.Input) OptimizeTitleRequest { return OptimizeTitleRequest{Input: in} })
	case ActionRecommendCategory:
		return build(data, func(in recommendcategory.Input) RecommendCategoryRequest { return RecommendCategoryRequest{Input: in} })
	case ActionAnalyzePricing:
		return build(data, func(in analyzepricing.Input) AnalyzePricingRequest { return AnalyzePricingRequest{Input: in} })
	case ActionExtractKeywords:
		return build(data, func(in extractkeywords.Input) ExtractKeywordsRequest { return ExtractKeywordsRequest{Input: in} })
	case ActionGenerateFeatures:
		return build(data, func(in generatefeatures.Input) GenerateFeaturesRequest { return GenerateFeaturesRequest{Input: in} })
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
}

func build[In any, R Request](data json.RawMessage, wrap func(In) R) (Request, error) {
	var in In
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.NewInvalidRequestError("Invalid data payload", err)
	}
	return wrap(in), nil
}
