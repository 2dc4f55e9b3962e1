package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestNewCustomer(t *testing.T) {
	t.Run("starts with zero advance", func(t *testing.T) {
		c, err := NewCustomer("Ravi", "9876543210")
		require.NoError(t, err)
		assert.True(t, c.AdvanceBalance.IsZero())
		assert.Equal(t, 1, c.Version)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewCustomer("", "")
		require.Error(t, err)
	})
}

func TestCustomer_Advance(t *testing.T) {
	t.Run("top up and deduct", func(t *testing.T) {
		c, err := NewCustomer("Ravi", "")
		require.NoError(t, err)

		require.NoError(t, c.TopUpAdvance(d("500")))
		assert.True(t, c.AdvanceBalance.Equal(d("500")))

		require.NoError(t, c.DeductAdvance(d("200")))
		assert.True(t, c.AdvanceBalance.Equal(d("300")))
	})

	t.Run("deduction beyond balance fails", func(t *testing.T) {
		c, err := NewCustomer("Ravi", "")
		require.NoError(t, err)
		require.NoError(t, c.TopUpAdvance(d("100")))

		err = c.DeductAdvance(d("100.01"))
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.True(t, c.AdvanceBalance.Equal(d("100")))
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		c, err := NewCustomer("Ravi", "")
		require.NoError(t, err)

		assert.Error(t, c.TopUpAdvance(d("0")))
		assert.Error(t, c.TopUpAdvance(d("-5")))
		assert.Error(t, c.DeductAdvance(d("0")))
	})
}

func TestNewAdvanceTransaction(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates ledger entry", func(t *testing.T) {
		tx, err := NewAdvanceTransaction(customerID, AdvanceTransactionTopUp, d("500"), d("0"), d("500"), "R-2025-0001", "")
		require.NoError(t, err)
		assert.Equal(t, AdvanceTransactionTopUp, tx.Type)
		assert.True(t, tx.BalanceAfter.Equal(d("500")))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewAdvanceTransaction(uuid.Nil, AdvanceTransactionTopUp, d("500"), d("0"), d("500"), "", "")
		require.Error(t, err)

		_, err = NewAdvanceTransaction(customerID, "TRANSFER", d("500"), d("0"), d("500"), "", "")
		require.Error(t, err)

		_, err = NewAdvanceTransaction(customerID, AdvanceTransactionConsume, d("0"), d("0"), d("0"), "", "")
		require.Error(t, err)
	})
}
