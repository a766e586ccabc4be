package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// fakeAssistant returns a scripted reply or error.
type fakeAssistant struct {
	reply      string
	err        error
	lastPrompt string
	lastImage  []byte
}

func (f *fakeAssistant) Reply(_ context.Context, message string, imageData []byte) (string, error) {
	f.lastPrompt = message
	f.lastImage = imageData
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeAssistant) IsAvailable() bool { return true }

// fakeHistory is an in-memory adapter.ChatHistoryRepository.
type fakeHistory struct {
	messages  map[uuid.UUID][]*entity.ChatMessage
	appendErr error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{messages: make(map[uuid.UUID][]*entity.ChatMessage)}
}

func (f *fakeHistory) Append(_ context.Context, userID uuid.UUID, message *entity.ChatMessage) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.messages[userID] = append(f.messages[userID], message)
	return nil
}

func (f *fakeHistory) List(_ context.Context, userID uuid.UUID) ([]*entity.ChatMessage, error) {
	return f.messages[userID], nil
}

func (f *fakeHistory) Clear(_ context.Context, userID uuid.UUID) error {
	delete(f.messages, userID)
	return nil
}

func TestSendMessage(t *testing.T) {
	t.Run("records both sides of the exchange", func(t *testing.T) {
		service := &fakeAssistant{reply: "You spent most on groceries."}
		history := newFakeHistory()
		uc := NewSendMessageUseCase(service, history, nil)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), SendMessageInput{UserID: userID, Message: "  where does my money go? "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reply.Content != "You spent most on groceries." {
			t.Errorf("reply = %q", out.Reply.Content)
		}
		if out.Reply.Role != entity.ChatRoleAssistant {
			t.Errorf("role = %q", out.Reply.Role)
		}

		stored := history.messages[userID]
		if len(stored) != 2 {
			t.Fatalf("expected 2 stored messages, got %d", len(stored))
		}
		if stored[0].Role != entity.ChatRoleUser || stored[0].Content != "where does my money go?" {
			t.Errorf("user message not trimmed and stored: %+v", stored[0])
		}
	})

	t.Run("empty message rejected", func(t *testing.T) {
		uc := NewSendMessageUseCase(&fakeAssistant{}, newFakeHistory(), nil)
		_, err := uc.Execute(context.Background(), SendMessageInput{UserID: uuid.New(), Message: "   "})
		if !errors.Is(err, domainerror.ErrEmptyMessage) {
			t.Fatalf("expected empty message error, got %v", err)
		}
	})

	t.Run("upstream failure yields canned reply", func(t *testing.T) {
		service := &fakeAssistant{err: errors.New("upstream 500")}
		history := newFakeHistory()
		uc := NewSendMessageUseCase(service, history, nil)
		userID := uuid.New()

		out, err := uc.Execute(context.Background(), SendMessageInput{UserID: userID, Message: "hi"})
		if err != nil {
			t.Fatalf("upstream failure must not fail the request: %v", err)
		}
		if out.Reply.Content != ErrorReply {
			t.Errorf("reply = %q, want %q", out.Reply.Content, ErrorReply)
		}
		if len(history.messages[userID]) != 2 {
			t.Errorf("error reply should still be recorded")
		}
	})

	t.Run("blank reply substituted", func(t *testing.T) {
		uc := NewSendMessageUseCase(&fakeAssistant{reply: "  "}, newFakeHistory(), nil)
		out, err := uc.Execute(context.Background(), SendMessageInput{UserID: uuid.New(), Message: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reply.Content != EmptyReply {
			t.Errorf("reply = %q, want %q", out.Reply.Content, EmptyReply)
		}
	})

	t.Run("history failure does not block the reply", func(t *testing.T) {
		history := newFakeHistory()
		history.appendErr = errors.New("redis down")
		uc := NewSendMessageUseCase(&fakeAssistant{reply: "ok"}, history, nil)

		out, err := uc.Execute(context.Background(), SendMessageInput{UserID: uuid.New(), Message: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reply.Content != "ok" {
			t.Errorf("reply = %q", out.Reply.Content)
		}
	})
}

func TestGetHistory(t *testing.T) {
	t.Run("empty history opens with greeting", func(t *testing.T) {
		uc := NewGetHistoryUseCase(newFakeHistory())
		messages, err := uc.Execute(context.Background(), uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(messages) != 1 || messages[0].Content != Greeting {
			t.Fatalf("expected greeting, got %+v", messages)
		}
	})

	t.Run("stored messages returned in order", func(t *testing.T) {
		history := newFakeHistory()
		userID := uuid.New()
		first := entity.NewChatMessage(entity.ChatRoleUser, "one")
		second := entity.NewChatMessage(entity.ChatRoleAssistant, "two")
		_ = history.Append(context.Background(), userID, first)
		_ = history.Append(context.Background(), userID, second)

		uc := NewGetHistoryUseCase(history)
		messages, err := uc.Execute(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(messages) != 2 || messages[0].Content != "one" {
			t.Fatalf("unexpected history: %+v", messages)
		}
	})
}

func TestClearHistory(t *testing.T) {
	history := newFakeHistory()
	userID := uuid.New()
	_ = history.Append(context.Background(), userID, entity.NewChatMessage(entity.ChatRoleUser, "one"))

	if err := NewClearHistoryUseCase(history).Execute(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.messages[userID]) != 0 {
		t.Error("history not cleared")
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			text: `{"amount": 12}`,
			want: `{"amount": 12}`,
			ok:   true,
		},
		{
			name: "object inside prose",
			text: "Here is the data you asked for: {\"amount\": 12, \"note\": \"ok\"} hope it helps!",
			want: `{"amount": 12, "note": "ok"}`,
			ok:   true,
		},
		{
			name: "nested objects stay balanced",
			text: `prefix {"outer": {"inner": 1}} suffix`,
			want: `{"outer": {"inner": 1}}`,
			ok:   true,
		},
		{
			name: "braces inside strings ignored",
			text: `{"note": "a } inside"}`,
			want: `{"note": "a } inside"}`,
			ok:   true,
		},
		{
			name: "no object",
			text: "sorry, I could not read that receipt",
			ok:   false,
		},
		{
			name: "unterminated object",
			text: `{"amount": 12`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseReceipt(t *testing.T) {
	image := []byte("fake-image-bytes")

	t.Run("valid reply", func(t *testing.T) {
		service := &fakeAssistant{reply: "```json\n{\"amount\": 42.90, \"description\": \"Groceries\", \"date\": \"2025-03-05\", \"category\": \"Food & Dining\", \"merchant\": \"SuperMart\"}\n```"}
		uc := NewParseReceiptUseCase(service, nil)

		out, err := uc.Execute(context.Background(), ParseReceiptInput{UserID: uuid.New(), ImageData: image})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		receipt := out.Receipt
		if !receipt.Amount.Equal(decimal.RequireFromString("42.90")) {
			t.Errorf("amount = %s", receipt.Amount)
		}
		if receipt.Description != "Groceries" || receipt.Category != "Food & Dining" || receipt.Merchant != "SuperMart" {
			t.Errorf("unexpected receipt: %+v", receipt)
		}
		if receipt.Date.Format(entity.DateLayout) != "2025-03-05" {
			t.Errorf("date = %s", receipt.Date)
		}
		if len(service.lastImage) == 0 {
			t.Error("image data not forwarded to the assistant")
		}
	})

	t.Run("defaults for date and category", func(t *testing.T) {
		service := &fakeAssistant{reply: `{"amount": "10", "description": "Lunch"}`}
		uc := NewParseReceiptUseCase(service, nil)
		today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return today.Add(15 * time.Hour) }

		out, err := uc.Execute(context.Background(), ParseReceiptInput{UserID: uuid.New(), ImageData: image})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Receipt.Date.Equal(today) {
			t.Errorf("date = %s, want today", out.Receipt.Date)
		}
		if out.Receipt.Category != entity.DefaultReceiptCategory {
			t.Errorf("category = %q, want %q", out.Receipt.Category, entity.DefaultReceiptCategory)
		}
	})

	t.Run("missing image", func(t *testing.T) {
		uc := NewParseReceiptUseCase(&fakeAssistant{}, nil)
		_, err := uc.Execute(context.Background(), ParseReceiptInput{UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrMissingReceiptImage) {
			t.Fatalf("expected missing image error, got %v", err)
		}
	})

	failureReplies := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "upstream error", err: errors.New("timeout")},
		{name: "no JSON in reply", reply: "I cannot read this image"},
		{name: "malformed JSON", reply: `{"amount": }`},
		{name: "missing amount", reply: `{"description": "Lunch"}`},
		{name: "zero amount", reply: `{"amount": 0, "description": "Lunch"}`},
		{name: "missing description", reply: `{"amount": 10}`},
	}

	for _, tt := range failureReplies {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewParseReceiptUseCase(&fakeAssistant{reply: tt.reply, err: tt.err}, nil)
			_, err := uc.Execute(context.Background(), ParseReceiptInput{UserID: uuid.New(), ImageData: image})

			var assistantErr *domainerror.AssistantError
			if !errors.As(err, &assistantErr) || assistantErr.Code != domainerror.ErrCodeReceiptParseFailed {
				t.Fatalf("expected receipt parse failure, got %v", err)
			}
			if assistantErr.Message != domainerror.ReceiptParseUserMessage {
				t.Errorf("message = %q", assistantErr.Message)
			}
		})
	}
}
