package dto

import (
	"time"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  *string `json:"category_id,omitempty"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Date        string  `json:"date" binding:"required"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// All fields are optional; at least one must be present.
type UpdateTransactionRequest struct {
	Type          *string  `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Amount        *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ClearCategory bool     `json:"clear_category,omitempty"`
	Description   *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Date          *string  `json:"date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
// Category carries the resolved category or "Uncategorized" styling when
// the reference is gone.
type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	CategoryID    *string   `json:"category_id,omitempty"`
	CategoryName  string    `json:"category_name"`
	CategoryIcon  string    `json:"category_icon"`
	CategoryColor string    `json:"category_color"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Loading      bool                  `json:"loading"`
}

// CreatedTransactionResponse represents the response after creating a transaction.
type CreatedTransactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	CategoryID  *string `json:"category_id,omitempty"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ToTransactionResponse converts a resolved transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.TransactionWithCategory) TransactionResponse {
	response := TransactionResponse{
		ID:            t.ID.String(),
		Type:          string(t.Type),
		Amount:        t.Amount.String(),
		CategoryName:  entity.UncategorizedName,
		CategoryIcon:  entity.UncategorizedIcon,
		CategoryColor: entity.UncategorizedColor,
		Description:   t.Description,
		Date:          t.Date.Format(entity.DateLayout),
		CreatedAt:     t.CreatedAt,
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		response.CategoryID = &id
	}
	if t.Category != nil {
		response.CategoryName = t.Category.Name
		response.CategoryIcon = t.Category.Icon
		response.CategoryColor = t.Category.Color
	}
	return response
}

// ToTransactionListResponse converts a transaction list to a TransactionListResponse.
func ToTransactionListResponse(transactions []*entity.TransactionWithCategory, loading bool) TransactionListResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: responses,
		Loading:      loading,
	}
}

// ToCreatedTransactionResponse converts a created transaction entity to its response DTO.
func ToCreatedTransactionResponse(t *entity.Transaction) CreatedTransactionResponse {
	response := CreatedTransactionResponse{
		ID:          t.ID.String(),
		Type:        string(t.Type),
		Amount:      t.Amount.String(),
		Description: t.Description,
		Date:        t.Date.Format(entity.DateLayout),
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		response.CategoryID = &id
	}
	return response
}
