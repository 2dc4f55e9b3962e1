package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of a shop expense
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "RENT"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategorySalary      ExpenseCategory = "SALARY"
	ExpenseCategorySupplies    ExpenseCategory = "SUPPLIES"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategorySalary,
		ExpenseCategorySupplies, ExpenseCategoryMaintenance, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// PaidVia represents the instrument an expense or receipt was settled with
type PaidVia string

const (
	PaidViaCash PaidVia = "CASH"
	PaidViaUPI  PaidVia = "UPI"
)

// IsValid checks if the instrument is valid
func (p PaidVia) IsValid() bool {
	return p == PaidViaCash || p == PaidViaUPI
}

// ExpenseVoucher records money paid out of the shop. Voucher numbers are
// scoped to the fiscal year and restart every April 1 local.
type ExpenseVoucher struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	VoucherNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Category      ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidVia       PaidVia         `gorm:"type:varchar(10);not null"`
	Description   string          `gorm:"type:varchar(500);not null"`
	IncurredAt    time.Time       `gorm:"not null"`
	Remark        string          `gorm:"type:varchar(500)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (ExpenseVoucher) TableName() string {
	return "expense_vouchers"
}

// NewExpenseVoucher creates an expense voucher with its number already minted
func NewExpenseVoucher(
	voucherNumber string,
	category ExpenseCategory,
	amount decimal.Decimal,
	paidVia PaidVia,
	description string,
	incurredAt time.Time,
	remark string,
) (*ExpenseVoucher, error) {
	if voucherNumber == "" {
		return nil, shared.NewDomainError("INVALID_VOUCHER_NUMBER", "Voucher number cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !paidVia.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment instrument is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if incurredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Incurred date is required")
	}

	return &ExpenseVoucher{
		ID:            uuid.New(),
		VoucherNumber: voucherNumber,
		Category:      category,
		Amount:        amount,
		PaidVia:       paidVia,
		Description:   description,
		IncurredAt:    incurredAt,
		Remark:        remark,
	}, nil
}
