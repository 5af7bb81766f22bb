// Package picker provides the interactive multi-select capability:
// given an ordered list of identifiers, return the user-confirmed
// subset, or an empty cancelled result when the user aborts.
package picker

import (
	"context"
	"errors"
)

// Request describes one interactive selection run.
type Request struct {
	// Items is the ordered list presented for selection
	Items []string
	// Query pre-fills the filter input
	Query string
}

// Result is the outcome of a selection run. Cancellation is a normal
// outcome, not an error: Cancelled is true and Selected is empty.
type Result struct {
	Selected  []string
	Cancelled bool
}

// Picker runs an interactive multi-selection over a list of items.
// Implementations yield selections in their own order; callers that
// need a deterministic order normalize afterwards.
type Picker interface {
	// Pick blocks until the user confirms or cancels the selection
	Pick(ctx context.Context, req Request) (*Result, error)
	// Name identifies the picker implementation for logging
	Name() string
}

// Picker errors
var (
	ErrInvalidPickerType = errors.New("invalid picker type")
	ErrPickerUnavailable = errors.New("picker unavailable")
)
