package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// Transaction represents a single income or expense movement.
// CategoryID is a weak reference: deleting the category leaves the
// transaction in place and the reference resolves to nothing.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(userID uuid.UUID, transactionType TransactionType, amount decimal.Decimal, categoryID *uuid.UUID, description string, date time.Time) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsValidTransactionType checks if the given type is valid.
func IsValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// TransactionWithCategory pairs a transaction with its resolved category.
// Category is nil when the reference points at a deleted category or was
// never set; display layers render it as UncategorizedName.
type TransactionWithCategory struct {
	Transaction
	Category *Category
}

// CategoryName returns the resolved category name or UncategorizedName.
func (t *TransactionWithCategory) CategoryName() string {
	if t.Category == nil {
		return UncategorizedName
	}
	return t.Category.Name
}
