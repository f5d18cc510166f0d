// File: internal/middleware/constants.go
package middleware

import "context"

// Context keys for middleware communication
type contextKey string

const (
	OwnerKey     contextKey = "vault_owner"
	RequestIDKey contextKey = "request_id"
)

// Logger defines the logging interface used by middleware
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// OwnerFromContext returns the vault owner set by the auth middleware, or
// "" for the anonymous owner.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(OwnerKey).(string)
	return owner
}
