package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// EditTransaction applies a partial update to a transaction owned by
// the user, then re-fetches the transaction list so ordering and
// resolved categories reflect the store.
func (a *Aggregator) EditTransaction(ctx context.Context, userID, transactionID uuid.UUID, update *adapter.TransactionUpdate) error {
	if update == nil || update.IsEmpty() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNoFieldsToUpdate,
			"at least one field must be provided",
			domainerror.ErrNoFieldsToUpdate,
		)
	}

	if update.Type != nil && !entity.IsValidTransactionType(*update.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if update.Amount != nil && !update.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if update.Description != nil {
		if *update.Description == "" {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionRequired,
				"description is required",
				domainerror.ErrDescriptionRequired,
			)
		}
		if len(*update.Description) > MaxDescriptionLength {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
	}

	if update.CategoryID != nil && !update.ClearCategory {
		if err := a.verifyCategoryOwnership(ctx, userID, *update.CategoryID); err != nil {
			return err
		}
	}

	if err := a.verifyTransactionOwnership(ctx, userID, transactionID); err != nil {
		return err
	}

	if err := a.transactionRepo.Update(ctx, transactionID, update); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	a.reloadTransactions(ctx, userID)

	return nil
}

// verifyTransactionOwnership ensures the transaction exists and belongs
// to the user.
func (a *Aggregator) verifyTransactionOwnership(ctx context.Context, userID, transactionID uuid.UUID) error {
	transaction, err := a.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		if domainerror.IsNotFound(err) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}
	if transaction.UserID != userID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return nil
}
