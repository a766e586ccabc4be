package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

func newCategory(userID uuid.UUID, name string, createdAt time.Time) *entity.Category {
	category := entity.NewCategory(userID, name, entity.CategoryTypeExpense, "tag", "#EF4444")
	category.CreatedAt = createdAt
	return category
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find by user oldest first", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		userID := uuid.New()
		other := uuid.New()
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

		for i, name := range []string{"Health", "Salary", "Food & Dining"} {
			if err := repo.Create(ctx, newCategory(userID, name, base.Add(time.Duration(i)*time.Hour))); err != nil {
				t.Fatalf("create %q: %v", name, err)
			}
		}
		if err := repo.Create(ctx, newCategory(other, "Other User", base)); err != nil {
			t.Fatalf("create for other user: %v", err)
		}

		categories, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("find by user: %v", err)
		}
		if len(categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(categories))
		}
		got := []string{categories[0].Name, categories[1].Name, categories[2].Name}
		want := []string{"Health", "Salary", "Food & Dining"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("duplicate name for same user is rejected", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		userID := uuid.New()
		now := time.Now().UTC()

		if err := repo.Create(ctx, newCategory(userID, "Travel", now)); err != nil {
			t.Fatalf("first create: %v", err)
		}
		err := repo.Create(ctx, newCategory(userID, "Travel", now))
		if err == nil {
			t.Fatal("expected duplicate error")
		}
		if !domainerror.IsDuplicate(err) {
			t.Errorf("IsDuplicate(%v) = false, want true", err)
		}

		// The same name is fine for a different user.
		if err := repo.Create(ctx, newCategory(uuid.New(), "Travel", now)); err != nil {
			t.Errorf("create for different user: %v", err)
		}
	})

	t.Run("create batch", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		userID := uuid.New()
		now := time.Now().UTC()

		batch := []*entity.Category{
			newCategory(userID, "One", now),
			newCategory(userID, "Two", now.Add(time.Second)),
		}
		if err := repo.CreateBatch(ctx, batch); err != nil {
			t.Fatalf("create batch: %v", err)
		}

		categories, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("find by user: %v", err)
		}
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
	})

	t.Run("delete hides category from listings", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		userID := uuid.New()
		category := newCategory(userID, "Travel", time.Now().UTC())
		if err := repo.Create(ctx, category); err != nil {
			t.Fatalf("create: %v", err)
		}

		if err := repo.Delete(ctx, category.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		categories, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("find by user: %v", err)
		}
		if len(categories) != 0 {
			t.Errorf("expected deleted category hidden, got %d", len(categories))
		}
		if _, err := repo.FindByID(ctx, category.ID); !domainerror.IsNotFound(err) {
			t.Errorf("expected not found after delete, got %v", err)
		}
	})

	t.Run("deleted name can be reused", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		userID := uuid.New()
		first := newCategory(userID, "Food & Dining", time.Now().UTC())

		if err := repo.Create(ctx, first); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Delete(ctx, first.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		second := newCategory(userID, "Food & Dining", time.Now().UTC())
		if err := repo.Create(ctx, second); err != nil {
			t.Fatalf("re-create after delete: %v", err)
		}

		categories, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("find by user: %v", err)
		}
		if len(categories) != 1 || categories[0].ID != second.ID {
			t.Errorf("expected only the new category, got %+v", categories)
		}
	})

	t.Run("delete missing category", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		if err := repo.Delete(ctx, uuid.New()); !domainerror.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}
