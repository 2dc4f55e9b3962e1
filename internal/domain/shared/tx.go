package shared

import "context"

// TxManager runs a function inside a single storage transaction. Repository
// calls made with the context it passes to fn join that transaction, so a
// multi-repository operation commits or rolls back as one logical unit.
type TxManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
