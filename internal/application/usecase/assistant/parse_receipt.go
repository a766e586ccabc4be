package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// receiptPromptFormat instructs the model to answer with a bare JSON
// object describing the receipt.
const receiptPromptFormat = `You are a receipt parser. I'm sending you a receipt image. Please analyze it and extract the following information in JSON format:
{
  "amount": <total amount as number>,
  "description": "<brief description of purchase>",
  "date": "<date in YYYY-MM-DD format, use today if not visible>",
  "category": "<best matching category: Food & Dining, Shopping, Transportation, Healthcare, Entertainment, Bills & Utilities, or Other>",
  "merchant": "<store/merchant name>"
}

Image data (base64): %s...

Only return the JSON object, no other text.`

// ParseReceiptInput represents the input for receipt parsing.
type ParseReceiptInput struct {
	UserID    uuid.UUID
	ImageData []byte
}

// ParseReceiptOutput represents the output of receipt parsing.
type ParseReceiptOutput struct {
	Receipt *entity.ReceiptData
}

// ParseReceiptUseCase extracts transaction data from a receipt image.
type ParseReceiptUseCase struct {
	assistantService adapter.AssistantService
	logger           *slog.Logger
	now              func() time.Time
}

// NewParseReceiptUseCase creates a new ParseReceiptUseCase instance.
func NewParseReceiptUseCase(assistantService adapter.AssistantService, logger *slog.Logger) *ParseReceiptUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseReceiptUseCase{
		assistantService: assistantService,
		logger:           logger,
		now:              time.Now,
	}
}

// receiptWire tolerates the model returning the amount as a number or
// a quoted string.
type receiptWire struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Merchant    string      `json:"merchant"`
}

// Execute asks the assistant to read the receipt and validates its
// answer. Amount and description are required; date falls back to today
// and category to the catch-all.
func (uc *ParseReceiptUseCase) Execute(ctx context.Context, input ParseReceiptInput) (*ParseReceiptOutput, error) {
	if len(input.ImageData) == 0 {
		return nil, domainerror.NewAssistantError(
			domainerror.ErrCodeMissingReceiptImage,
			"receipt image is required",
			domainerror.ErrMissingReceiptImage,
		)
	}

	encoded := base64.StdEncoding.EncodeToString(input.ImageData)
	preview := encoded
	if len(preview) > 100 {
		preview = preview[:100]
	}
	prompt := fmt.Sprintf(receiptPromptFormat, preview)

	reply, err := uc.assistantService.Reply(ctx, prompt, input.ImageData)
	if err != nil {
		uc.logger.Error("receipt parsing call failed", "user_id", input.UserID, "error", err)
		return nil, uc.parseFailure(err)
	}

	raw, ok := extractJSONObject(reply)
	if !ok {
		uc.logger.Warn("no JSON object in receipt reply", "user_id", input.UserID)
		return nil, uc.parseFailure(domainerror.ErrReceiptParseFailed)
	}

	var wire receiptWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		uc.logger.Warn("malformed receipt JSON", "user_id", input.UserID, "error", err)
		return nil, uc.parseFailure(err)
	}

	amount, err := decimal.NewFromString(wire.Amount.String())
	if err != nil || !amount.IsPositive() || wire.Description == "" {
		return nil, uc.parseFailure(domainerror.ErrReceiptParseFailed)
	}

	date, err := time.Parse(entity.DateLayout, wire.Date)
	if err != nil {
		date = uc.now().UTC().Truncate(24 * time.Hour)
	}

	category := wire.Category
	if category == "" {
		category = entity.DefaultReceiptCategory
	}

	return &ParseReceiptOutput{
		Receipt: &entity.ReceiptData{
			Amount:      amount,
			Description: wire.Description,
			Date:        date,
			Category:    category,
			Merchant:    wire.Merchant,
		},
	}, nil
}

// parseFailure wraps any upstream or extraction problem into the single
// user-facing parse error.
func (uc *ParseReceiptUseCase) parseFailure(err error) error {
	return domainerror.NewAssistantError(
		domainerror.ErrCodeReceiptParseFailed,
		domainerror.ReceiptParseUserMessage,
		err,
	)
}
