// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// AssistantService defines the interface for the conversational AI backend.
// Implementations speak to a remote model over HTTP or a vendor SDK.
type AssistantService interface {
	// Reply sends a message, optionally with an attached image, and returns
	// the assistant's free-text reply.
	Reply(ctx context.Context, message string, imageData []byte) (string, error)

	// IsAvailable checks if the assistant is configured and reachable.
	IsAvailable() bool
}
