// internal/models/listing.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ListingDraft is the product listing a seller is authoring. Every field is
// optional; absence is scored, never rejected.
type ListingDraft struct {
	ProductID           string     `json:"productId,omitempty"`
	Title               string     `json:"title,omitempty"`
	Description         string     `json:"description,omitempty"`
	Price               FlexNumber `json:"price"`
	Stock               FlexNumber `json:"stock"`
	CategoryID          string     `json:"category_id,omitempty"`
	Images              []string   `json:"images,omitempty"`
	ExistingDescription string     `json:"existingDescription,omitempty"`
}

// FlexNumber accepts a JSON number, a numeric string or null. Form fields
// arrive as strings from the listing editor, so both shapes are valid.
type FlexNumber struct {
	Value float64
	Valid bool
	raw   string
}

// NewFlexNumber returns a valid number.
func NewFlexNumber(v float64) FlexNumber {
	return FlexNumber{Value: v, Valid: true}
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	*n = FlexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.raw = s
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			n.Value, n.Valid = v, true
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value, n.Valid = v, true
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// Present reports whether the caller supplied a non-empty, non-zero value.
func (n FlexNumber) Present() bool {
	if n.raw != "" {
		return true
	}
	return n.Valid && n.Value != 0
}

// String renders the value the way the caller sent it.
func (n FlexNumber) String() string {
	if n.raw != "" {
		return n.raw
	}
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Provenance is embedded in every generative-backed result.
type Provenance struct {
	DemoMode bool `json:"demoMode,omitempty"`
}

// MarkDemo tags the result as heuristic output.
func (p *Provenance) MarkDemo() { p.DemoMode = true }

// IsDemo reports whether the heuristic produced the result.
func (p *Provenance) IsDemo() bool { return p.DemoMode }

// ErrorResult is the body of a soft failure: an action that ran but could
// not produce its normal result.
type ErrorResult struct {
	Error string `json:"error"`
}

// SoftError is an action outcome reported to the caller as an ErrorResult
// rather than as a transport failure.
type SoftError struct {
	Message string
}

func NewSoftError(message string) *SoftError {
	return &SoftError{Message: message}
}

func (e *SoftError) Error() string { return e.Message }

// SoftResult returns the ErrorResult body for a soft error anywhere in err's
// chain.
func SoftResult(err error) (ErrorResult, bool) {
	var soft *SoftError
	if errors.As(err, &soft) {
		return ErrorResult{Error: soft.Message}, true
	}
	return ErrorResult{}, false
}

// MergeOnto returns base with every field d sets laid over it.
func (d ListingDraft) MergeOnto(base ListingDraft) ListingDraft {
	out := base
	if d.ProductID != "" {
		out.ProductID = d.ProductID
	}
	if d.Title != "" {
		out.Title = d.Title
	}
	if d.Description != "" {
		out.Description = d.Description
	}
	if d.Price.Valid || d.Price.raw != "" {
		out.Price = d.Price
	}
	if d.Stock.Valid || d.Stock.raw != "" {
		out.Stock = d.Stock
	}
	if d.CategoryID != "" {
		out.CategoryID = d.CategoryID
	}
	if d.Images != nil {
		out.Images = d.Images
	}
	if d.ExistingDescription != "" {
		out.ExistingDescription = d.ExistingDescription
	}
	return out
}
