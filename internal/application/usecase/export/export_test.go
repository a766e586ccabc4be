package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

func exportTransaction(date, typ, description, amount string, category *entity.Category) *entity.TransactionWithCategory {
	parsed, _ := time.Parse(entity.DateLayout, date)
	return &entity.TransactionWithCategory{
		Transaction: entity.Transaction{
			Type:        entity.TransactionType(typ),
			Amount:      decimal.RequireFromString(amount),
			Description: description,
			Date:        parsed,
		},
		Category: category,
	}
}

func TestTransactionsCSV(t *testing.T) {
	t.Run("empty list yields header only", func(t *testing.T) {
		got := TransactionsCSV(nil)
		if got != "date,type,category,amount,description" {
			t.Fatalf("unexpected output: %q", got)
		}
	})

	t.Run("fields are quoted and ordered", func(t *testing.T) {
		food := &entity.Category{Name: "Food & Dining"}
		got := TransactionsCSV([]*entity.TransactionWithCategory{
			exportTransaction("2025-03-05", "expense", "lunch", "12.50", food),
			exportTransaction("2025-03-01", "income", "pay", "300", nil),
		})

		lines := strings.Split(got, "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[1] != `"2025-03-05","expense","Food & Dining","12.5","lunch"` {
			t.Errorf("unexpected row: %s", lines[1])
		}
		if lines[2] != `"2025-03-01","income","Uncategorized","300","pay"` {
			t.Errorf("unexpected fallback row: %s", lines[2])
		}
	})

	t.Run("embedded quotes are doubled", func(t *testing.T) {
		got := TransactionsCSV([]*entity.TransactionWithCategory{
			exportTransaction("2025-03-05", "expense", `the "special" menu, with sides`, "9.99", nil),
		})
		if !strings.Contains(got, `"the ""special"" menu, with sides"`) {
			t.Fatalf("quotes not escaped: %s", got)
		}
	})
}

func TestTransactionsJSON(t *testing.T) {
	exportedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	doc := TransactionsJSON([]*entity.TransactionWithCategory{
		exportTransaction("2025-03-05", "expense", "lunch", "100", nil),
		exportTransaction("2025-03-01", "income", "pay", "300", nil),
		exportTransaction("2025-02-20", "expense", "fuel", "50", nil),
	}, exportedAt)

	if doc.Summary.TotalTransactions != 3 {
		t.Errorf("totalTransactions = %d, want 3", doc.Summary.TotalTransactions)
	}
	if !doc.Summary.TotalIncome.Equal(decimal.NewFromInt(300)) {
		t.Errorf("totalIncome = %s, want 300", doc.Summary.TotalIncome)
	}
	if !doc.Summary.TotalExpense.Equal(decimal.NewFromInt(150)) {
		t.Errorf("totalExpense = %s, want 150", doc.Summary.TotalExpense)
	}
	if doc.Transactions[0].Category != entity.UncategorizedName {
		t.Errorf("category = %q, want %q", doc.Transactions[0].Category, entity.UncategorizedName)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"exportDate"`, `"transactions"`, `"summary"`, `"totalTransactions"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("document missing %s", key)
		}
	}
}

func TestCategoriesJSON(t *testing.T) {
	exportedAt := time.Now().UTC()
	doc := CategoriesJSON([]*entity.Category{
		{Name: "Salary", Type: entity.CategoryTypeIncome, Icon: "account-balance-wallet", Color: "#10B981"},
	}, exportedAt)

	if len(doc.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(doc.Categories))
	}
	got := doc.Categories[0]
	if got.Name != "Salary" || got.Type != "income" || got.Icon != "account-balance-wallet" || got.Color != "#10B981" {
		t.Errorf("unexpected record: %+v", got)
	}
}
