package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var customer partner.Customer
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// SaveWithLock persists the customer guarded by its version. The row is
// matched on the version the customer was loaded with and the stored version
// is bumped; zero matched rows means another writer got there first.
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&partner.Customer{}).
		Where("id = ? AND version = ?", customer.ID, customer.Version).
		Updates(map[string]interface{}{
			"name":            customer.Name,
			"phone":           customer.Phone,
			"advance_balance": customer.AdvanceBalance,
			"version":         customer.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	customer.Version++
	return nil
}

// Create persists a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	if err := dbFromContext(ctx, r.db).WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
