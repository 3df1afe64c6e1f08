// Package errors provides standardized error handling for the assistant's
// HTTP transport and its Zeebe job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidAction  ErrorCode = "INVALID_ACTION"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeAIResponseMalformed ErrorCode = "AI_RESPONSE_MALFORMED"
	ErrCodeGenAIUnavailable    ErrorCode = "GENAI_UNAVAILABLE"

	ErrCodeListingNotFound    ErrorCode = "LISTING_NOT_FOUND"
	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeLexiconLoadFailed  ErrorCode = "LEXICON_LOAD_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// AsStandardError extracts a *StandardError from anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidActionError is returned for an unrecognized dispatch key. The
// message is the exact text surfaced to HTTP callers.
func NewInvalidActionError(action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAction,
		Message:   "Invalid action",
		Details:   fmt.Sprintf("action: %q", action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError wraps a decode or schema failure of the request payload.
func NewInvalidRequestError(message string, cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewAIResponseMalformedError marks a generative reply that could not be parsed.
func NewAIResponseMalformedError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAIResponseMalformed,
		Message:   "Failed to parse AI response",
		Details:   errDetails(cause),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewGenAIUnavailableError records a failed generative call. Callers fall
// back to heuristics, so this only ever reaches logs and metrics.
func NewGenAIUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIUnavailable,
		Message:   "Generative backend unavailable",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewListingNotFoundError creates a non-retryable lookup error.
func NewListingNotFoundError(productID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeListingNotFound,
		Message:   "Listing not found",
		Details:   fmt.Sprintf("productId: %s", productID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryFailedError creates a retryable catalog database error.
func NewCatalogQueryFailedError(query string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Catalog query failed",
		Details:   fmt.Sprintf("query: %s, error: %s", query, errDetails(cause)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewLexiconLoadFailedError creates a retryable lexicon source error.
func NewLexiconLoadFailedError(source string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLexiconLoadFailed,
		Message:   "Failed to load lexicon",
		Details:   fmt.Sprintf("source: %s, error: %s", source, errDetails(cause)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInternalError wraps anything unclassified.
func NewInternalError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   errDetails(cause),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes modelled on BPMN
// error boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidAction:       "INVALID_ACTION",
	ErrCodeInvalidRequest:      "INVALID_REQUEST",
	ErrCodeAIResponseMalformed: "AI_RESPONSE_MALFORMED",
	ErrCodeGenAIUnavailable:    "GENAI_UNAVAILABLE",
	ErrCodeListingNotFound:     "LISTING_NOT_FOUND",
	ErrCodeCatalogQueryFailed:  "CATALOG_QUERY_FAILED",
	ErrCodeLexiconLoadFailed:   "LEXICON_LOAD_FAILED",
	ErrCodeInternal:            "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogQueryFailed:
		return 3
	case ErrCodeLexiconLoadFailed:
		return 2
	case ErrCodeGenAIUnavailable:
		return 1
	default:
		return 0 // business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "AI_") || strings.HasPrefix(codeStr, "GENAI"):
		return "AI"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "LISTING"):
		return "DATABASE"
	case strings.Contains(codeStr, "LEXICON"):
		return "CONFIGURATION"
	case strings.HasPrefix(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// CodeOf returns the error code of err, or ErrCodeInternal if err carries none.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}
