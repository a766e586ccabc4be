package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// RemoveCategory deletes a category owned by the user. Transactions
// referencing it are left untouched; their category resolves to nothing
// on the next load and renders as "Uncategorized".
func (a *Aggregator) RemoveCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := a.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if domainerror.IsNotFound(err) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if category.UserID != userID {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	if err := a.categoryRepo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	a.withSession(userID, func(s *session) {
		kept := s.categories[:0:0]
		for _, c := range s.categories {
			if c.ID != categoryID {
				kept = append(kept, c)
			}
		}
		s.categories = kept
	})

	return nil
}
