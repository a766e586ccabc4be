// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// CreateBatch creates a set of categories in one call. Duplicates are
	// reported per category; the rest are still created.
	CreateBatch(ctx context.Context, categories []*entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories for a user, oldest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// Delete soft-deletes a category. Transactions referencing it are untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
