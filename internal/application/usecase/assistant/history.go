package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// GetHistoryUseCase returns a user's retained conversation.
type GetHistoryUseCase struct {
	historyRepo adapter.ChatHistoryRepository
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(historyRepo adapter.ChatHistoryRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{historyRepo: historyRepo}
}

// Execute lists the stored history, oldest first. A user with no stored
// messages gets the standing greeting so the conversation never opens
// empty.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.ChatMessage, error) {
	messages, err := uc.historyRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat history: %w", err)
	}
	if len(messages) == 0 {
		return []*entity.ChatMessage{entity.NewChatMessage(entity.ChatRoleAssistant, Greeting)}, nil
	}
	return messages, nil
}

// ClearHistoryUseCase discards a user's conversation.
type ClearHistoryUseCase struct {
	historyRepo adapter.ChatHistoryRepository
}

// NewClearHistoryUseCase creates a new ClearHistoryUseCase instance.
func NewClearHistoryUseCase(historyRepo adapter.ChatHistoryRepository) *ClearHistoryUseCase {
	return &ClearHistoryUseCase{historyRepo: historyRepo}
}

// Execute removes all stored messages for the user.
func (uc *ClearHistoryUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	if err := uc.historyRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
