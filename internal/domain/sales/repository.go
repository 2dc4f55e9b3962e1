package sales

import (
	"context"

	"github.com/google/uuid"
)

// BillRepository persists bills and their payment lines. Saving a closed
// bill persists the stamped bill number and the finalized lines as one
// logical unit.
type BillRepository interface {
	Create(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	Save(ctx context.Context, bill *Bill) error
	FindOpen(ctx context.Context) ([]Bill, error)
}

// KOTRepository persists kitchen order tickets
type KOTRepository interface {
	Create(ctx context.Context, ticket *KitchenOrderTicket) error
	FindByBusinessDate(ctx context.Context, businessDate string) ([]KitchenOrderTicket, error)
}
