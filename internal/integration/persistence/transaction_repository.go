// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByUserWithCategory retrieves all transactions for a user with
// their categories resolved, newest date first, then newest created.
// Soft-deleted categories are excluded from the preload, so orphaned
// references come back with a nil category.
func (r *transactionRepository) FindByUserWithCategory(ctx context.Context, userID uuid.UUID) ([]*entity.TransactionWithCategory, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithCategory()
	}
	return transactions, nil
}

// Update applies a partial update to a transaction. Only the fields set
// on the update are written; updated_at always moves forward.
func (r *transactionRepository) Update(ctx context.Context, id uuid.UUID, update *adapter.TransactionUpdate) error {
	values := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.Type != nil {
		values["type"] = string(*update.Type)
	}
	if update.Amount != nil {
		values["amount"] = *update.Amount
	}
	if update.ClearCategory {
		values["category_id"] = nil
	} else if update.CategoryID != nil {
		values["category_id"] = *update.CategoryID
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if update.Date != nil {
		values["date"] = *update.Date
	}

	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
