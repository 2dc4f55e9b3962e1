package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a slice of a bill is settled
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodUPI  PaymentMethod = "UPI"
	// PaymentMethodCredit is the bill's currently unpaid remainder. It is a
	// balance, not an instrument, but is modeled as a line for uniform
	// bookkeeping of the split.
	PaymentMethodCredit PaymentMethod = "CREDIT"
	// PaymentMethodAdvanceUse draws down the customer's prepaid advance
	// balance as payment against the bill.
	PaymentMethodAdvanceUse PaymentMethod = "ADVANCE_USE"
	// PaymentMethodAdvanceAddCash / AdvanceAddUPI top up the customer's
	// advance balance during the same sitting. They never reduce what is
	// owed on the current bill.
	PaymentMethodAdvanceAddCash PaymentMethod = "ADVANCE_ADD_CASH"
	PaymentMethodAdvanceAddUPI  PaymentMethod = "ADVANCE_ADD_UPI"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCredit,
		PaymentMethodAdvanceUse, PaymentMethodAdvanceAddCash, PaymentMethodAdvanceAddUPI:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// IsAdvanceTopUp returns true for the side-channel advance top-up methods
func (m PaymentMethod) IsAdvanceTopUp() bool {
	return m == PaymentMethodAdvanceAddCash || m == PaymentMethodAdvanceAddUPI
}

// Reconciling returns true if lines of this method count toward the bill
// total. Advance top-ups are tracked outside the bill reconciliation.
func (m PaymentMethod) Reconciling() bool {
	return !m.IsAdvanceTopUp()
}

// PaymentLine is one slice of a bill's settlement
type PaymentLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID    uuid.UUID       `gorm:"type:uuid;index"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (PaymentLine) TableName() string {
	return "payment_lines"
}

// NewPaymentLine creates a payment line with a fresh ID
func NewPaymentLine(method PaymentMethod, amount decimal.Decimal) PaymentLine {
	return PaymentLine{
		ID:     uuid.New(),
		Method: method,
		Amount: amount,
	}
}
