package accounting

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// AddCategoryInput represents the input for category creation.
type AddCategoryInput struct {
	Name  string
	Type  entity.CategoryType
	Icon  string // Optional, defaults to DefaultCategoryIcon
	Color string // Optional, defaults to DefaultCategoryColor
}

// AddCategory validates and persists a new category, then appends it to
// the user's session. Created categories keep their creation order, so
// appending preserves the oldest-first invariant.
func (a *Aggregator) AddCategory(ctx context.Context, userID uuid.UUID, input AddCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}

	if len(input.Name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	if !entity.IsValidCategoryType(input.Type) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	if input.Color != "" && !hexColorRegex.MatchString(input.Color) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	// Apply default values for optional fields
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	category := entity.NewCategory(userID, input.Name, input.Type, icon, color)

	if err := a.categoryRepo.Create(ctx, category); err != nil {
		if domainerror.IsDuplicate(err) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"a category with this name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	a.withSession(userID, func(s *session) {
		s.categories = append(s.categories, category)
	})

	return category, nil
}
