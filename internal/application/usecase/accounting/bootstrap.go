package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// defaultCatalogEntry describes one starter category.
type defaultCatalogEntry struct {
	Name  string
	Type  entity.CategoryType
	Icon  string
	Color string
}

// defaultCatalog is the starter set created for every new user.
var defaultCatalog = []defaultCatalogEntry{
	{Name: "Salary", Type: entity.CategoryTypeIncome, Icon: "account-balance-wallet", Color: "#10B981"},
	{Name: "Business", Type: entity.CategoryTypeIncome, Icon: "business", Color: "#3B82F6"},
	{Name: "Food & Dining", Type: entity.CategoryTypeExpense, Icon: "restaurant", Color: "#EF4444"},
	{Name: "Transportation", Type: entity.CategoryTypeExpense, Icon: "directions-car", Color: "#F59E0B"},
	{Name: "Shopping", Type: entity.CategoryTypeExpense, Icon: "shopping-bag", Color: "#EC4899"},
	{Name: "Bills & Utilities", Type: entity.CategoryTypeExpense, Icon: "receipt", Color: "#6366F1"},
	{Name: "Entertainment", Type: entity.CategoryTypeExpense, Icon: "movie", Color: "#8B5CF6"},
	{Name: "Health", Type: entity.CategoryTypeExpense, Icon: "local-hospital", Color: "#14B8A6"},
}

// bootstrapDefaults seeds the starter catalog for a user. Duplicate
// errors mean a concurrent load already seeded them and are not failures.
func (a *Aggregator) bootstrapDefaults(ctx context.Context, userID uuid.UUID) error {
	categories := make([]*entity.Category, 0, len(defaultCatalog))
	for _, def := range defaultCatalog {
		categories = append(categories, entity.NewCategory(userID, def.Name, def.Type, def.Icon, def.Color))
	}

	if err := a.categoryRepo.CreateBatch(ctx, categories); err != nil {
		if domainerror.IsDuplicate(err) {
			a.logger.Debug("default categories already seeded", "user_id", userID)
			return nil
		}
		return fmt.Errorf("failed to create default categories: %w", err)
	}
	return nil
}
