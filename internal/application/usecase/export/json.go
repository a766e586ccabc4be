package export

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/usecase/analytics"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// TransactionsDocument is the JSON export of a transaction list.
type TransactionsDocument struct {
	ExportDate   time.Time           `json:"exportDate"`
	Transactions []TransactionRecord `json:"transactions"`
	Summary      SummaryRecord       `json:"summary"`
}

// TransactionRecord is one exported transaction.
type TransactionRecord struct {
	ID          uuid.UUID       `json:"id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SummaryRecord totals the exported transactions.
type SummaryRecord struct {
	TotalTransactions int             `json:"totalTransactions"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
}

// TransactionsJSON builds the JSON export document for a transaction
// list, preserving input order and resolving deleted categories to
// "Uncategorized".
func TransactionsJSON(transactions []*entity.TransactionWithCategory, exportedAt time.Time) *TransactionsDocument {
	records := make([]TransactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, TransactionRecord{
			ID:          t.ID,
			Date:        t.Date.Format(entity.DateLayout),
			Type:        string(t.Type),
			Category:    t.CategoryName(),
			Amount:      t.Amount,
			Description: t.Description,
		})
	}

	summary := analytics.Summarize(transactions)

	return &TransactionsDocument{
		ExportDate:   exportedAt,
		Transactions: records,
		Summary: SummaryRecord{
			TotalTransactions: len(transactions),
			TotalIncome:       summary.TotalIncome,
			TotalExpense:      summary.TotalExpense,
		},
	}
}

// CategoriesDocument is the JSON export of a category list.
type CategoriesDocument struct {
	ExportDate time.Time        `json:"exportDate"`
	Categories []CategoryRecord `json:"categories"`
}

// CategoryRecord is one exported category.
type CategoryRecord struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoriesJSON builds the JSON export document for a category list.
func CategoriesJSON(categories []*entity.Category, exportedAt time.Time) *CategoriesDocument {
	records := make([]CategoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, CategoryRecord{
			Name:  c.Name,
			Type:  string(c.Type),
			Icon:  c.Icon,
			Color: c.Color,
		})
	}
	return &CategoriesDocument{ExportDate: exportedAt, Categories: records}
}
