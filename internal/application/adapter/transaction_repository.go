// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// TransactionUpdate carries the fields of a partial transaction update.
// Nil pointers leave the stored value untouched. ClearCategory removes
// the category reference regardless of CategoryID.
type TransactionUpdate struct {
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
	Description   *string
	Date          *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u *TransactionUpdate) IsEmpty() bool {
	return u.Type == nil && u.Amount == nil && u.CategoryID == nil &&
		!u.ClearCategory && u.Description == nil && u.Date == nil
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUserWithCategory retrieves all transactions for a user with their
	// categories resolved, newest date first, then newest created first.
	// Transactions whose category was deleted come back with a nil category.
	FindByUserWithCategory(ctx context.Context, userID uuid.UUID) ([]*entity.TransactionWithCategory, error)

	// Update applies a partial update to a transaction.
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
