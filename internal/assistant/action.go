// Package assistant dispatches listing-assistant actions to their handlers.
package assistant

import (
	"errors"
	"fmt"
	"strings"
)

// Action names one assistant operation.
type Action string

const (
	ActionScoreCompleteness   Action = "score_completeness"
	ActionGenerateDescription Action = "generate_description"
	ActionOptimizeTitle       Action = "optimize_title"
	ActionRecommendCategory   Action = "recommend_category"
	ActionAnalyzePricing      Action = "analyze_pricing"
	ActionExtractKeywords     Action = "extract_keywords"
	ActionGenerateFeatures    Action = "generate_features"
)

// TaskTypePrefix namespaces the Zeebe job types.
const TaskTypePrefix = "listing-assistant."

var ErrInvalidAction = errors.New("invalid action")

var allActions = []Action{
	ActionScoreCompleteness,
	ActionGenerateDescription,
	ActionOptimizeTitle,
	ActionRecommendCategory,
	ActionAnalyzePricing,
	ActionExtractKeywords,
	ActionGenerateFeatures,
}

// Actions lists every action in a fixed order.
func Actions() []Action {
	return append([]Action(nil), allActions...)
}

func ParseAction(s string) (Action, error) {
	for _, a := range allActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// WorkerName is the config key and job type suffix, e.g. "score-completeness".
func (a Action) WorkerName() string {
	return strings.ReplaceAll(string(a), "_", "-")
}

func (a Action) TaskType() string {
	return TaskTypePrefix + a.WorkerName()
}
