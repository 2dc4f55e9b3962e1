package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExpenseVoucherRepository persists expense vouchers
type ExpenseVoucherRepository interface {
	Create(ctx context.Context, voucher *ExpenseVoucher) error
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseVoucher, error)
	ListIncurredBetween(ctx context.Context, from, to time.Time) ([]ExpenseVoucher, error)
}

// AdvanceReceiptRepository persists advance top-up receipts
type AdvanceReceiptRepository interface {
	Create(ctx context.Context, receipt *AdvanceReceipt) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]AdvanceReceipt, error)
}
