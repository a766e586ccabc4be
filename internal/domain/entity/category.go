// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// UncategorizedName is the display name used for transactions whose
// category was deleted or never set.
const UncategorizedName = "Uncategorized"

// UncategorizedColor is the display color used alongside UncategorizedName.
const UncategorizedColor = "#6B7280"

// UncategorizedIcon is the display icon used alongside UncategorizedName.
const UncategorizedIcon = "help-outline"

// Category represents a transaction category owned by a single user.
// Name, type, icon and color are fixed at creation; categories are
// created and deleted, never edited.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	Icon      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType, icon, color string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValidCategoryType checks if the given type is valid.
func IsValidCategoryType(t CategoryType) bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}
