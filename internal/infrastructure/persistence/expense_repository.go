package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseVoucherRepository implements ExpenseVoucherRepository using GORM
type GormExpenseVoucherRepository struct {
	db *gorm.DB
}

// NewGormExpenseVoucherRepository creates a new GormExpenseVoucherRepository
func NewGormExpenseVoucherRepository(db *gorm.DB) *GormExpenseVoucherRepository {
	return &GormExpenseVoucherRepository{db: db}
}

// Create persists an expense voucher
func (r *GormExpenseVoucherRepository) Create(ctx context.Context, voucher *finance.ExpenseVoucher) error {
	if err := dbFromContext(ctx, r.db).WithContext(ctx).Create(voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds an expense voucher by its ID
func (r *GormExpenseVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseVoucher, error) {
	var voucher finance.ExpenseVoucher
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&voucher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// ListIncurredBetween returns vouchers incurred in [from, to), oldest first
func (r *GormExpenseVoucherRepository) ListIncurredBetween(ctx context.Context, from, to time.Time) ([]finance.ExpenseVoucher, error) {
	var vouchers []finance.ExpenseVoucher
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("incurred_at >= ? AND incurred_at < ?", from, to).
		Order("incurred_at ASC").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

var _ finance.ExpenseVoucherRepository = (*GormExpenseVoucherRepository)(nil)
