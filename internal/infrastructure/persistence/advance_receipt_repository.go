package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAdvanceReceiptRepository implements AdvanceReceiptRepository using GORM
type GormAdvanceReceiptRepository struct {
	db *gorm.DB
}

// NewGormAdvanceReceiptRepository creates a new GormAdvanceReceiptRepository
func NewGormAdvanceReceiptRepository(db *gorm.DB) *GormAdvanceReceiptRepository {
	return &GormAdvanceReceiptRepository{db: db}
}

// Create persists an advance receipt
func (r *GormAdvanceReceiptRepository) Create(ctx context.Context, receipt *finance.AdvanceReceipt) error {
	if err := dbFromContext(ctx, r.db).WithContext(ctx).Create(receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByCustomer returns a customer's receipts, newest first
func (r *GormAdvanceReceiptRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.AdvanceReceipt, error) {
	var receipts []finance.AdvanceReceipt
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

var _ finance.AdvanceReceiptRepository = (*GormAdvanceReceiptRepository)(nil)
