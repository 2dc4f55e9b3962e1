package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a bill
type BillStatus string

const (
	BillStatusOpen   BillStatus = "OPEN"   // split session in progress
	BillStatusClosed BillStatus = "CLOSED" // numbered and settled
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusOpen || s == BillStatusClosed
}

// Bill is a customer bill aggregate. While OPEN it carries a live split
// session: its payment lines always reconcile to the bill total. Closing
// stamps the fiscal-year bill number and freezes the lines.
type Bill struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillNumber string          `gorm:"type:varchar(30);index"` // empty until closed
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status     BillStatus      `gorm:"type:varchar(10);not null;default:'OPEN';index"`
	TableNo    string          `gorm:"type:varchar(20)"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"` // required only when advance lines are used
	Lines      []PaymentLine   `gorm:"foreignKey:BillID;references:ID"`
	Remark     string          `gorm:"type:varchar(500)"`
	ClosedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill opens a bill-closing session for the given total. The session
// starts fully unpaid: a single CREDIT line carrying the total.
func NewBill(total decimal.Decimal, tableNo, remark string) (*Bill, error) {
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill total must be positive")
	}

	b := &Bill{
		ID:      uuid.New(),
		Total:   total,
		Status:  BillStatusOpen,
		TableNo: tableNo,
		Remark:  remark,
	}
	b.setLines(NewSplitAllocation(total).Lines)
	return b, nil
}

// allocation materializes the split session over the persisted lines
func (b *Bill) allocation() *SplitAllocation {
	return &SplitAllocation{BillTotal: b.Total, Lines: b.Lines}
}

// setLines writes the session lines back, stamping the bill foreign key
func (b *Bill) setLines(lines []PaymentLine) {
	for i := range lines {
		lines[i].BillID = b.ID
	}
	b.Lines = lines
}

// AddLine records a payment line on an open bill. Amounts must have passed
// ValidateSplitAmount upstream; the positivity check here is a boundary
// guard, not a substitute for that validation.
func (b *Bill) AddLine(method PaymentMethod, amount decimal.Decimal) (uuid.UUID, error) {
	if b.Status != BillStatusOpen {
		return uuid.Nil, shared.ErrInvalidState
	}
	if !method.IsValid() {
		return uuid.Nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if !amount.IsPositive() {
		return uuid.Nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	alloc := b.allocation()
	id := alloc.AddLine(method, amount)
	b.setLines(alloc.Lines)
	return id, nil
}

// RemoveLine deletes a payment line from an open bill, restoring its amount
// to the unpaid remainder per the split rules
func (b *Bill) RemoveLine(id uuid.UUID) error {
	if b.Status != BillStatusOpen {
		return shared.ErrInvalidState
	}

	alloc := b.allocation()
	alloc.RemoveLine(id)
	b.setLines(alloc.Lines)
	return nil
}

// CreditRemainder returns the amount still owed on the bill
func (b *Bill) CreditRemainder() decimal.Decimal {
	return b.allocation().CreditRemainder()
}

// ValidateSplitTotal reports whether the lines reconcile to the bill total
func (b *Bill) ValidateSplitTotal() bool {
	return b.allocation().ValidateSplitTotal()
}

// AdvanceLines returns the lines that affect the customer's advance balance
// at close: ADVANCE_USE draws it down, ADVANCE_ADD_* top it up.
func (b *Bill) AdvanceLines() []PaymentLine {
	var lines []PaymentLine
	for _, line := range b.Lines {
		if line.Method == PaymentMethodAdvanceUse || line.Method.IsAdvanceTopUp() {
			lines = append(lines, line)
		}
	}
	return lines
}

// RequiresCustomer reports whether closing this bill touches an advance
// balance and therefore needs an identified customer
func (b *Bill) RequiresCustomer() bool {
	return len(b.AdvanceLines()) > 0
}

// Close stamps the bill number and freezes the bill. The split must
// reconcile to the bill total; anything else is a validation error the
// cashier has to fix before retrying.
func (b *Bill) Close(billNumber string, at time.Time) error {
	if b.Status != BillStatusOpen {
		return shared.ErrInvalidState
	}
	if billNumber == "" {
		return shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if !b.ValidateSplitTotal() {
		return shared.NewValidationError("Payment lines do not reconcile to the bill total")
	}

	b.BillNumber = billNumber
	b.Status = BillStatusClosed
	b.ClosedAt = &at
	return nil
}
