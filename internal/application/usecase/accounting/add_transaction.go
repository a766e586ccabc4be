package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// AddTransactionInput represents the input for transaction creation.
type AddTransactionInput struct {
	Type        entity.TransactionType
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID // Optional
	Description string
	Date        time.Time
}

// AddTransaction validates and persists a new transaction, then
// re-fetches the user's transaction list so the session carries the
// store's ordering and resolved category data.
func (a *Aggregator) AddTransaction(ctx context.Context, userID uuid.UUID, input AddTransactionInput) (*entity.Transaction, error) {
	if err := a.validateTransactionFields(ctx, userID, input.Type, input.Amount, input.Description, input.CategoryID); err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	transaction := entity.NewTransaction(userID, input.Type, input.Amount, input.CategoryID, input.Description, input.Date)

	if err := a.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	a.reloadTransactions(ctx, userID)

	return transaction, nil
}

// validateTransactionFields checks the shared create/edit constraints.
func (a *Aggregator) validateTransactionFields(
	ctx context.Context,
	userID uuid.UUID,
	transactionType entity.TransactionType,
	amount decimal.Decimal,
	description string,
	categoryID *uuid.UUID,
) error {
	if !entity.IsValidTransactionType(transactionType) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionRequired,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}

	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if categoryID != nil {
		return a.verifyCategoryOwnership(ctx, userID, *categoryID)
	}
	return nil
}

// verifyCategoryOwnership ensures the referenced category exists and
// belongs to the user.
func (a *Aggregator) verifyCategoryOwnership(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := a.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if domainerror.IsNotFound(err) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != userID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	return nil
}
