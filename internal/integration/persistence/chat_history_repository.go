// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// ChatHistoryLimit is how many messages are retained per user.
const ChatHistoryLimit = 50

const chatHistoryKeyFormat = "chat_history:%s"

// chatHistoryRepository stores conversations as Redis lists, trimmed to
// the retention window on every append.
type chatHistoryRepository struct {
	redis *redis.Client
}

// NewChatHistoryRepository creates a new chat history repository instance.
func NewChatHistoryRepository(redisClient *redis.Client) adapter.ChatHistoryRepository {
	return &chatHistoryRepository{
		redis: redisClient,
	}
}

func chatHistoryKey(userID uuid.UUID) string {
	return fmt.Sprintf(chatHistoryKeyFormat, userID)
}

// Append adds a message to the end of the user's history and trims the
// list to the newest ChatHistoryLimit entries.
func (r *chatHistoryRepository) Append(ctx context.Context, userID uuid.UUID, message *entity.ChatMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	key := chatHistoryKey(userID)
	pipe := r.redis.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -ChatHistoryLimit, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// List returns the retained history, oldest first.
func (r *chatHistoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*entity.ChatMessage, error) {
	raw, err := r.redis.LRange(ctx, chatHistoryKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	messages := make([]*entity.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var message entity.ChatMessage
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat message: %w", err)
		}
		messages = append(messages, &message)
	}
	return messages, nil
}

// Clear removes the user's entire history.
func (r *chatHistoryRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := r.redis.Del(ctx, chatHistoryKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
