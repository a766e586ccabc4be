package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

func newTransaction(userID uuid.UUID, categoryID *uuid.UUID, amount string, date time.Time) *entity.Transaction {
	return entity.NewTransaction(
		userID,
		entity.TransactionTypeExpense,
		decimal.RequireFromString(amount),
		categoryID,
		"test transaction",
		date,
	)
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("list ordering", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewTransactionRepository(db)
		userID := uuid.New()
		day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

		older := newTransaction(userID, nil, "10", day)
		older.CreatedAt = day.Add(1 * time.Minute)
		newer := newTransaction(userID, nil, "20", day)
		newer.CreatedAt = day.Add(2 * time.Minute)
		earlierDay := newTransaction(userID, nil, "30", day.AddDate(0, 0, -3))
		earlierDay.CreatedAt = day.Add(3 * time.Minute)

		for _, tr := range []*entity.Transaction{older, newer, earlierDay} {
			if err := repo.Create(ctx, tr); err != nil {
				t.Fatalf("create: %v", err)
			}
		}

		transactions, err := repo.FindByUserWithCategory(ctx, userID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(transactions))
		}
		// Newest date first; same-date rows ordered by newest created.
		if transactions[0].ID != newer.ID || transactions[1].ID != older.ID || transactions[2].ID != earlierDay.ID {
			t.Errorf("unexpected order: %v, %v, %v", transactions[0].Amount, transactions[1].Amount, transactions[2].Amount)
		}
	})

	t.Run("category resolution survives category deletion", func(t *testing.T) {
		db := newTestDB(t)
		categoryRepo := NewCategoryRepository(db)
		repo := NewTransactionRepository(db)
		userID := uuid.New()

		category := newCategory(userID, "Food & Dining", time.Now().UTC())
		if err := categoryRepo.Create(ctx, category); err != nil {
			t.Fatalf("create category: %v", err)
		}
		transaction := newTransaction(userID, &category.ID, "12.50", time.Now().UTC())
		if err := repo.Create(ctx, transaction); err != nil {
			t.Fatalf("create transaction: %v", err)
		}

		transactions, err := repo.FindByUserWithCategory(ctx, userID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if transactions[0].Category == nil || transactions[0].Category.Name != "Food & Dining" {
			t.Fatalf("expected resolved category, got %+v", transactions[0].Category)
		}

		// Deleting the category must not delete the transaction; the
		// reference just stops resolving.
		if err := categoryRepo.Delete(ctx, category.ID); err != nil {
			t.Fatalf("delete category: %v", err)
		}
		transactions, err = repo.FindByUserWithCategory(ctx, userID)
		if err != nil {
			t.Fatalf("list after category delete: %v", err)
		}
		if len(transactions) != 1 {
			t.Fatalf("transaction disappeared with its category")
		}
		if transactions[0].Category != nil {
			t.Errorf("expected unresolved category, got %+v", transactions[0].Category)
		}
		if transactions[0].CategoryName() != entity.UncategorizedName {
			t.Errorf("fallback name = %q", transactions[0].CategoryName())
		}
	})

	t.Run("partial update touches only named fields", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewTransactionRepository(db)
		userID := uuid.New()
		transaction := newTransaction(userID, nil, "10", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		if err := repo.Create(ctx, transaction); err != nil {
			t.Fatalf("create: %v", err)
		}

		amount := decimal.RequireFromString("99.90")
		if err := repo.Update(ctx, transaction.ID, &adapter.TransactionUpdate{Amount: &amount}); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := repo.FindByID(ctx, transaction.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if !got.Amount.Equal(amount) {
			t.Errorf("amount = %s, want %s", got.Amount, amount)
		}
		if got.Description != "test transaction" {
			t.Errorf("description changed: %q", got.Description)
		}
		if !got.UpdatedAt.After(transaction.UpdatedAt) {
			t.Error("updated_at did not advance")
		}
	})

	t.Run("clear category reference", func(t *testing.T) {
		db := newTestDB(t)
		categoryRepo := NewCategoryRepository(db)
		repo := NewTransactionRepository(db)
		userID := uuid.New()

		category := newCategory(userID, "Food & Dining", time.Now().UTC())
		if err := categoryRepo.Create(ctx, category); err != nil {
			t.Fatalf("create category: %v", err)
		}
		transaction := newTransaction(userID, &category.ID, "10", time.Now().UTC())
		if err := repo.Create(ctx, transaction); err != nil {
			t.Fatalf("create: %v", err)
		}

		if err := repo.Update(ctx, transaction.ID, &adapter.TransactionUpdate{ClearCategory: true}); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := repo.FindByID(ctx, transaction.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.CategoryID != nil {
			t.Errorf("category reference not cleared: %v", got.CategoryID)
		}
	})

	t.Run("delete hides transaction", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewTransactionRepository(db)
		userID := uuid.New()
		transaction := newTransaction(userID, nil, "10", time.Now().UTC())
		if err := repo.Create(ctx, transaction); err != nil {
			t.Fatalf("create: %v", err)
		}

		if err := repo.Delete(ctx, transaction.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		transactions, err := repo.FindByUserWithCategory(ctx, userID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("expected deleted transaction hidden, got %d", len(transactions))
		}
	})

	t.Run("update missing transaction", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))
		amount := decimal.NewFromInt(5)
		err := repo.Update(ctx, uuid.New(), &adapter.TransactionUpdate{Amount: &amount})
		if !domainerror.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}
