package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdvanceTransactionType represents the direction of an advance movement
type AdvanceTransactionType string

const (
	AdvanceTransactionTopUp   AdvanceTransactionType = "TOPUP"   // balance increased
	AdvanceTransactionConsume AdvanceTransactionType = "CONSUME" // balance drawn down
)

// IsValid checks if the type is a valid AdvanceTransactionType
func (t AdvanceTransactionType) IsValid() bool {
	return t == AdvanceTransactionTopUp || t == AdvanceTransactionConsume
}

// AdvanceTransaction is one ledger entry against a customer's advance
// balance. Amounts are always positive; the direction comes from the type.
type AdvanceTransaction struct {
	ID            uuid.UUID              `gorm:"type:uuid;primary_key"`
	CustomerID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type          AdvanceTransactionType `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	BalanceBefore decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Reference     string                 `gorm:"type:varchar(50)"` // bill or receipt number
	Remark        string                 `gorm:"type:varchar(500)"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (AdvanceTransaction) TableName() string {
	return "advance_transactions"
}

// NewAdvanceTransaction creates a ledger entry
func NewAdvanceTransaction(
	customerID uuid.UUID,
	txType AdvanceTransactionType,
	amount, balanceBefore, balanceAfter decimal.Decimal,
	reference, remark string,
) (*AdvanceTransaction, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	return &AdvanceTransaction{
		ID:            uuid.New(),
		CustomerID:    customerID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
		Remark:        remark,
	}, nil
}
