// Package assistant contains the AI chat and receipt parsing use cases.
package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// Greeting opens every fresh conversation.
const Greeting = "Hello! I'm your financial AI assistant. I can help you understand your spending, answer questions about your finances, and provide money management tips. How can I help you today?"

// ErrorReply is returned in place of the assistant's answer when the
// upstream call fails; the conversation keeps going.
const ErrorReply = "Sorry, I encountered an error. Please try again."

// EmptyReply stands in for an upstream response with no content.
const EmptyReply = "No response from AI"

// SendMessageInput represents the input for sending a chat message.
type SendMessageInput struct {
	UserID  uuid.UUID
	Message string
}

// SendMessageOutput represents the output of sending a chat message.
type SendMessageOutput struct {
	Reply *entity.ChatMessage
}

// SendMessageUseCase handles one round of the assistant conversation.
type SendMessageUseCase struct {
	assistantService adapter.AssistantService
	historyRepo      adapter.ChatHistoryRepository
	logger           *slog.Logger
}

// NewSendMessageUseCase creates a new SendMessageUseCase instance.
func NewSendMessageUseCase(
	assistantService adapter.AssistantService,
	historyRepo adapter.ChatHistoryRepository,
	logger *slog.Logger,
) *SendMessageUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendMessageUseCase{
		assistantService: assistantService,
		historyRepo:      historyRepo,
		logger:           logger,
	}
}

// Execute sends the user's message to the assistant and records both
// sides of the exchange. Upstream failures do not fail the request; the
// user gets ErrorReply and can try again.
func (uc *SendMessageUseCase) Execute(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domainerror.NewAssistantError(
			domainerror.ErrCodeEmptyMessage,
			"message is required",
			domainerror.ErrEmptyMessage,
		)
	}

	uc.appendHistory(ctx, input.UserID, entity.NewChatMessage(entity.ChatRoleUser, message))

	content, err := uc.assistantService.Reply(ctx, message, nil)
	if err != nil {
		uc.logger.Error("assistant call failed", "user_id", input.UserID, "error", err)
		content = ErrorReply
	} else if strings.TrimSpace(content) == "" {
		content = EmptyReply
	}

	reply := entity.NewChatMessage(entity.ChatRoleAssistant, content)
	uc.appendHistory(ctx, input.UserID, reply)

	return &SendMessageOutput{Reply: reply}, nil
}

// appendHistory records a message; history is best-effort and never
// fails the conversation.
func (uc *SendMessageUseCase) appendHistory(ctx context.Context, userID uuid.UUID, message *entity.ChatMessage) {
	if err := uc.historyRepo.Append(ctx, userID, message); err != nil {
		uc.logger.Error("failed to record chat message", "user_id", userID, "error", err)
	}
}
