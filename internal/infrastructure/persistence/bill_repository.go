package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create persists a new bill together with its payment lines
func (r *GormBillRepository) Create(ctx context.Context, bill *sales.Bill) error {
	if err := dbFromContext(ctx, r.db).WithContext(ctx).Create(bill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a bill by its ID including payment lines
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Bill, error) {
	var bill sales.Bill
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// Save persists the bill and replaces its payment lines. Line mutations
// happen in memory on the aggregate, so the stored set is rewritten as a
// whole instead of diffing individual rows.
func (r *GormBillRepository) Save(ctx context.Context, bill *sales.Bill) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(bill).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&sales.PaymentLine{}).Error; err != nil {
			return err
		}
		if len(bill.Lines) == 0 {
			return nil
		}
		return tx.Create(&bill.Lines).Error
	})
}

// FindOpen returns all bills that have not been closed yet, oldest first
func (r *GormBillRepository) FindOpen(ctx context.Context) ([]sales.Bill, error) {
	var bills []sales.Bill
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("status = ?", sales.BillStatusOpen).
		Order("created_at ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

var _ sales.BillRepository = (*GormBillRepository)(nil)
