package dto

import (
	"time"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// ChatRequest represents the request body for sending a chat message.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatMessageResponse represents a single chat message in API responses.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatResponse represents the assistant's reply to a chat message.
type ChatResponse struct {
	Reply ChatMessageResponse `json:"reply"`
}

// ChatHistoryResponse represents the stored conversation, oldest first.
type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ParseReceiptRequest represents the request body for receipt parsing.
// ImageData is the base64 encoded receipt image.
type ParseReceiptRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}

// ReceiptResponse represents the extracted receipt fields for the user
// to confirm before creating a transaction.
type ReceiptResponse struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Merchant    string `json:"merchant,omitempty"`
}

// ToChatMessageResponse converts a chat message entity to its response DTO.
func ToChatMessageResponse(m *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID.String(),
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// ToChatHistoryResponse converts a chat message list to a ChatHistoryResponse.
func ToChatHistoryResponse(messages []*entity.ChatMessage) ChatHistoryResponse {
	responses := make([]ChatMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToChatMessageResponse(m)
	}
	return ChatHistoryResponse{Messages: responses}
}

// ToReceiptResponse converts extracted receipt data to its response DTO.
func ToReceiptResponse(r *entity.ReceiptData) ReceiptResponse {
	return ReceiptResponse{
		Amount:      r.Amount.String(),
		Description: r.Description,
		Date:        r.Date.Format(entity.DateLayout),
		Category:    r.Category,
		Merchant:    r.Merchant,
	}
}
