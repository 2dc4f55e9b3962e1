package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormAdvanceTransactionRepository implements AdvanceTransactionRepository
// using GORM. Ledger entries are append-only.
type GormAdvanceTransactionRepository struct {
	db *gorm.DB
}

// NewGormAdvanceTransactionRepository creates a new GormAdvanceTransactionRepository
func NewGormAdvanceTransactionRepository(db *gorm.DB) *GormAdvanceTransactionRepository {
	return &GormAdvanceTransactionRepository{db: db}
}

// Create appends a ledger entry
func (r *GormAdvanceTransactionRepository) Create(ctx context.Context, tx *partner.AdvanceTransaction) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(tx).Error
}

// FindByCustomer returns a customer's ledger entries, newest first
func (r *GormAdvanceTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]partner.AdvanceTransaction, error) {
	var entries []partner.AdvanceTransaction
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var _ partner.AdvanceTransactionRepository = (*GormAdvanceTransactionRepository)(nil)
