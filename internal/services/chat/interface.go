// File: internal/services/chat/interface.go
package chat

import (
	"context"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// Reply is one model answer split into its readable part and the vendor
// records embedded in it.
type Reply struct {
	Prose   string          `json:"prose"`
	Vendors []domain.Vendor `json:"vendors"`
	// Fallback is set when the model call failed and Prose is the canned
	// apology. Callers must not retry the turn on their own.
	Fallback bool `json:"fallback"`
}

// Responder sends an already-bounded history to the model and always
// produces a Reply; upstream failures surface as a fallback reply.
type Responder interface {
	Respond(ctx context.Context, history []domain.Message) Reply
}
