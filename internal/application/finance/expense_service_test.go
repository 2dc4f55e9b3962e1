package finance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExpenseVoucherRepository is a mock implementation of finance.ExpenseVoucherRepository
type MockExpenseVoucherRepository struct {
	mock.Mock
}

func (m *MockExpenseVoucherRepository) Create(ctx context.Context, voucher *finance.ExpenseVoucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockExpenseVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseVoucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseVoucher), args.Error(1)
}

func (m *MockExpenseVoucherRepository) ListIncurredBetween(ctx context.Context, from, to time.Time) ([]finance.ExpenseVoucher, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.ExpenseVoucher), args.Error(1)
}

// fakeCounterStore is an in-memory CounterRepository for sequencing behavior
type fakeCounterStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{values: make(map[string]int64)}
}

func (f *fakeCounterStore) NextNumber(ctx context.Context, scope string, family numbering.Family, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := scope + "|" + numbering.DefaultLocale().PeriodKey(family, at) + "|" + family.String()
	f.values[k]++
	return f.values[k], nil
}

func (f *fakeCounterStore) Current(ctx context.Context, scope string, family numbering.Family, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := scope + "|" + numbering.DefaultLocale().PeriodKey(family, at) + "|" + family.String()
	return f.values[k], nil
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// passthroughTxManager runs the unit of work without a real transaction
type passthroughTxManager struct{}

func (passthroughTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newExpenseFixture() (*ExpenseService, *MockExpenseVoucherRepository) {
	vouchers := new(MockExpenseVoucherRepository)
	service := NewExpenseService(vouchers, numbering.NewSequencer("main", numbering.DefaultLocale(), newFakeCounterStore()), passthroughTxManager{})
	service.now = func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	}
	return service, vouchers
}

func TestExpenseService_RecordExpense(t *testing.T) {
	ctx := context.Background()

	validReq := RecordExpenseRequest{
		Category:    "SUPPLIES",
		Amount:      "350",
		PaidVia:     "CASH",
		Description: "vegetables",
		IncurredAt:  time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}

	t.Run("mints fiscal-year voucher numbers in sequence", func(t *testing.T) {
		service, vouchers := newExpenseFixture()
		vouchers.On("Create", ctx, mock.AnythingOfType("*finance.ExpenseVoucher")).Return(nil)

		first, err := service.RecordExpense(ctx, validReq)
		require.NoError(t, err)
		second, err := service.RecordExpense(ctx, validReq)
		require.NoError(t, err)

		assert.Equal(t, "EV-2025-0001", first.VoucherNumber)
		assert.Equal(t, "EV-2025-0002", second.VoucherNumber)
	})

	t.Run("rejects unparseable amount", func(t *testing.T) {
		service, _ := newExpenseFixture()
		req := validReq
		req.Amount = "abc"

		_, err := service.RecordExpense(ctx, req)

		assert.Error(t, err)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		service, _ := newExpenseFixture()
		req := validReq
		req.Category = "GIFTS"

		_, err := service.RecordExpense(ctx, req)

		assert.Error(t, err)
	})

	t.Run("rejects unknown payment instrument", func(t *testing.T) {
		service, _ := newExpenseFixture()
		req := validReq
		req.PaidVia = "CARD"

		_, err := service.RecordExpense(ctx, req)

		assert.Error(t, err)
	})
}

func TestExpenseService_ListExpenses(t *testing.T) {
	ctx := context.Background()

	t.Run("maps vouchers into responses", func(t *testing.T) {
		service, vouchers := newExpenseFixture()
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

		voucher, err := finance.NewExpenseVoucher(
			"EV-2025-0001", finance.ExpenseCategoryRent,
			dec("12000"), finance.PaidViaUPI, "shop rent",
			time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), "",
		)
		require.NoError(t, err)
		vouchers.On("ListIncurredBetween", ctx, from, to).Return([]finance.ExpenseVoucher{*voucher}, nil)

		got, err := service.ListExpenses(ctx, from, to)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "EV-2025-0001", got[0].VoucherNumber)
		assert.Equal(t, "RENT", got[0].Category)
	})
}
