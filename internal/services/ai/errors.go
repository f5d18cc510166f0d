// File: internal/services/ai/errors.go
package ai

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig   ErrorType = "CONFIG"
	ErrTypeNetwork  ErrorType = "NETWORK"
	ErrTypeUpstream ErrorType = "UPSTREAM"
	ErrTypeEmpty    ErrorType = "EMPTY"
)

type AIError struct {
	Type      ErrorType
	Code      int // upstream HTTP status, when known
	Message   string
	Model     string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewNetworkError(operation string, cause error) *AIError {
	return &AIError{Type: ErrTypeNetwork, Operation: operation, Message: "request did not reach the model endpoint", Cause: cause}
}

func NewUpstreamError(operation string, code int, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeUpstream, Operation: operation, Code: code, Message: msg, Cause: cause}
}

// ErrorTypeOf returns the AIError type of err, or "" for foreign errors.
func ErrorTypeOf(err error) ErrorType {
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return aiErr.Type
	}
	return ""
}
