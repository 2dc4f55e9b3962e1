package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository persists customers and their advance balances
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	// SaveWithLock persists the customer using optimistic locking on Version;
	// saving a stale version fails with shared.ErrConcurrencyConflict.
	SaveWithLock(ctx context.Context, customer *Customer) error
	Create(ctx context.Context, customer *Customer) error
}

// AdvanceTransactionRepository persists advance ledger entries
type AdvanceTransactionRepository interface {
	Create(ctx context.Context, tx *AdvanceTransaction) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]AdvanceTransaction, error)
}
