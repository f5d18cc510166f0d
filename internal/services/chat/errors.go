// File: internal/services/chat/errors.go
package chat

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeParse      ErrorType = "PARSE"
	ErrTypeStore      ErrorType = "STORE"
)

// Parser failure modes. Parse never returns them; ParseStrict does.
var (
	ErrNoFencedBlock       = errors.New("no fenced json block in reply")
	ErrMalformedVendorJSON = errors.New("fenced json block is not a vendor array")
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	Key       string
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStoreError(operation, key string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeStore, Operation: operation, Message: "session store failure", Key: key, Cause: cause}
}

// IsValidation reports whether err is a caller input problem.
func IsValidation(err error) bool {
	var ce *ChatError
	return errors.As(err, &ce) && ce.Type == ErrTypeValidation
}
