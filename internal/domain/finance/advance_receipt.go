package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdvanceReceipt records money received into a customer's prepaid advance
// balance from a standalone counter top-up. Receipt numbers are scoped to the
// fiscal year like bill numbers.
type AdvanceReceipt struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidVia       PaidVia         `gorm:"type:varchar(10);not null"`
	Remark        string          `gorm:"type:varchar(500)"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (AdvanceReceipt) TableName() string {
	return "advance_receipts"
}

// NewAdvanceReceipt creates a receipt with its number already minted
func NewAdvanceReceipt(
	receiptNumber string,
	customerID uuid.UUID,
	amount decimal.Decimal,
	paidVia PaidVia,
	remark string,
) (*AdvanceReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !paidVia.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment instrument is not valid")
	}

	return &AdvanceReceipt{
		ID:            uuid.New(),
		ReceiptNumber: receiptNumber,
		CustomerID:    customerID,
		Amount:        amount,
		PaidVia:       paidVia,
		Remark:        remark,
	}, nil
}
