// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// ChatHistoryRepository stores each user's rolling assistant conversation.
type ChatHistoryRepository interface {
	// Append adds a message to the end of the user's history, trimming the
	// oldest entries beyond the retention window.
	Append(ctx context.Context, userID uuid.UUID, message *entity.ChatMessage) error

	// List returns the retained history, oldest first.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.ChatMessage, error)

	// Clear removes the user's entire history.
	Clear(ctx context.Context, userID uuid.UUID) error
}
