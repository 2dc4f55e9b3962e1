package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a shop customer holding a prepaid advance balance. The advance
// is topped up at the counter (cash or UPI) and drawn down as payment against
// bills.
type Customer struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(20);index"`
	AdvanceBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Version        int             `gorm:"not null;default:1"` // optimistic lock, bumped on save
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer with a zero advance balance
func NewCustomer(name, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		ID:             uuid.New(),
		Name:           name,
		Phone:          phone,
		AdvanceBalance: decimal.Zero,
		Version:        1,
	}, nil
}

// TopUpAdvance adds to the customer's prepaid advance balance
func (c *Customer) TopUpAdvance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Top-up amount must be positive")
	}
	c.AdvanceBalance = c.AdvanceBalance.Add(amount)
	return nil
}

// DeductAdvance draws down the prepaid advance balance
func (c *Customer) DeductAdvance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deduction amount must be positive")
	}
	if c.AdvanceBalance.LessThan(amount) {
		return shared.ErrInsufficientBalance
	}
	c.AdvanceBalance = c.AdvanceBalance.Sub(amount)
	return nil
}
