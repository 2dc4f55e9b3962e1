package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseVoucher(t *testing.T) {
	incurredAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("creates voucher with valid inputs", func(t *testing.T) {
		v, err := NewExpenseVoucher("EV-2025-0007", ExpenseCategoryUtilities,
			decimal.NewFromInt(1200), PaidViaUPI, "Electricity bill", incurredAt, "")
		require.NoError(t, err)

		assert.Equal(t, "EV-2025-0007", v.VoucherNumber)
		assert.Equal(t, ExpenseCategoryUtilities, v.Category)
		assert.True(t, v.Amount.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		amount := decimal.NewFromInt(100)

		_, err := NewExpenseVoucher("", ExpenseCategoryRent, amount, PaidViaCash, "rent", incurredAt, "")
		assert.Error(t, err)

		_, err = NewExpenseVoucher("EV-1", "FOOD", amount, PaidViaCash, "x", incurredAt, "")
		assert.Error(t, err)

		_, err = NewExpenseVoucher("EV-1", ExpenseCategoryRent, decimal.Zero, PaidViaCash, "x", incurredAt, "")
		assert.Error(t, err)

		_, err = NewExpenseVoucher("EV-1", ExpenseCategoryRent, amount, "CHEQUE", "x", incurredAt, "")
		assert.Error(t, err)

		_, err = NewExpenseVoucher("EV-1", ExpenseCategoryRent, amount, PaidViaCash, "", incurredAt, "")
		assert.Error(t, err)

		_, err = NewExpenseVoucher("EV-1", ExpenseCategoryRent, amount, PaidViaCash, "x", time.Time{}, "")
		assert.Error(t, err)
	})
}

func TestNewAdvanceReceipt(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates receipt with valid inputs", func(t *testing.T) {
		r, err := NewAdvanceReceipt("R-2025-0003", customerID, decimal.NewFromInt(500), PaidViaCash, "")
		require.NoError(t, err)
		assert.Equal(t, "R-2025-0003", r.ReceiptNumber)
		assert.Equal(t, customerID, r.CustomerID)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := NewAdvanceReceipt("", customerID, decimal.NewFromInt(500), PaidViaCash, "")
		assert.Error(t, err)

		_, err = NewAdvanceReceipt("R-1", uuid.Nil, decimal.NewFromInt(500), PaidViaCash, "")
		assert.Error(t, err)

		_, err = NewAdvanceReceipt("R-1", customerID, decimal.Zero, PaidViaCash, "")
		assert.Error(t, err)
	})
}
