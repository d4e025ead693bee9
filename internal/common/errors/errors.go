// Package errors provides standardized error records for the query
// pipeline. Pipeline stages carry sentinel errors for control flow; the
// registry renders failures through StandardError so every error record
// a user can see has the same shape.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeIntentParsingFailed ErrorCode = "INTENT_PARSING_FAILED"
	ErrCodeIntentAPIFailed     ErrorCode = "INTENT_API_FAILED"

	ErrCodeCollectorNotFound ErrorCode = "COLLECTOR_NOT_FOUND"
	ErrCodeCollectorFailed   ErrorCode = "COLLECTOR_FAILED"

	ErrCodeSynthesisFailed ErrorCode = "SYNTHESIS_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewCollectorNotFoundError marks an unknown collector name. Not
// retryable: the registry's set of names is fixed for the process
// lifetime.
func NewCollectorNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCollectorNotFound,
		Message:   fmt.Sprintf("Unknown function: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCollectorFailedError wraps a failure inside a collector.
func NewCollectorFailedError(name string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCollectorFailed,
		Message:   fmt.Sprintf("Error calling %s: %v", name, err),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
