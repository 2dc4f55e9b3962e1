package persistence

import (
	"context"
	"errors"

	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormKOTRepository implements KOTRepository using GORM
type GormKOTRepository struct {
	db *gorm.DB
}

// NewGormKOTRepository creates a new GormKOTRepository
func NewGormKOTRepository(db *gorm.DB) *GormKOTRepository {
	return &GormKOTRepository{db: db}
}

// Create persists a kitchen order ticket with its items
func (r *GormKOTRepository) Create(ctx context.Context, ticket *sales.KitchenOrderTicket) error {
	if err := dbFromContext(ctx, r.db).WithContext(ctx).Create(ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByBusinessDate returns the day's tickets in issue order
func (r *GormKOTRepository) FindByBusinessDate(ctx context.Context, businessDate string) ([]sales.KitchenOrderTicket, error) {
	var tickets []sales.KitchenOrderTicket
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Items").
		Where("business_date = ?", businessDate).
		Order("ticket_number ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

var _ sales.KOTRepository = (*GormKOTRepository)(nil)
