package partner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockAdvanceTransactionRepository is a mock implementation of partner.AdvanceTransactionRepository
type MockAdvanceTransactionRepository struct {
	mock.Mock
}

func (m *MockAdvanceTransactionRepository) Create(ctx context.Context, tx *partner.AdvanceTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAdvanceTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]partner.AdvanceTransaction, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]partner.AdvanceTransaction), args.Error(1)
}

// MockAdvanceReceiptRepository is a mock implementation of finance.AdvanceReceiptRepository
type MockAdvanceReceiptRepository struct {
	mock.Mock
}

func (m *MockAdvanceReceiptRepository) Create(ctx context.Context, receipt *finance.AdvanceReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockAdvanceReceiptRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.AdvanceReceipt, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]finance.AdvanceReceipt), args.Error(1)
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

// passthroughTxManager runs the unit of work without a real transaction
type passthroughTxManager struct{}

func (passthroughTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type advanceFixture struct {
	customers *MockCustomerRepository
	ledger    *MockAdvanceTransactionRepository
	receipts  *MockAdvanceReceiptRepository
	service   *AdvanceService
}

func newAdvanceFixture() *advanceFixture {
	f := &advanceFixture{
		customers: new(MockCustomerRepository),
		ledger:    new(MockAdvanceTransactionRepository),
		receipts:  new(MockAdvanceReceiptRepository),
	}
	sequencer := numbering.NewSequencer("main", numbering.DefaultLocale(), newFakeCounterStore())
	f.service = NewAdvanceService(f.customers, f.ledger, f.receipts, sequencer, passthroughTxManager{})
	f.service.now = func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func TestAdvanceService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a customer with zero balance", func(t *testing.T) {
		f := newAdvanceFixture()
		f.customers.On("Create", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := f.service.CreateCustomer(ctx, CreateCustomerRequest{Name: "Ravi", Phone: "9876543210"})

		require.NoError(t, err)
		assert.Equal(t, "Ravi", resp.Name)
		assert.True(t, resp.AdvanceBalance.IsZero())
	})

	t.Run("requires a name", func(t *testing.T) {
		f := newAdvanceFixture()

		_, err := f.service.CreateCustomer(ctx, CreateCustomerRequest{})

		assert.Error(t, err)
	})
}

func TestAdvanceService_TopUpAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a receipt number and credits the balance", func(t *testing.T) {
		f := newAdvanceFixture()
		customer, err := partner.NewCustomer("Meena", "9000000001")
		require.NoError(t, err)

		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.customers.On("SaveWithLock", ctx, customer).Return(nil)
		f.receipts.On("Create", ctx, mock.AnythingOfType("*finance.AdvanceReceipt")).Return(nil)
		f.ledger.On("Create", ctx, mock.AnythingOfType("*partner.AdvanceTransaction")).Return(nil)

		resp, err := f.service.TopUpAdvance(ctx, customer.ID, TopUpAdvanceRequest{Amount: "500", PaidVia: "UPI"})

		require.NoError(t, err)
		assert.Equal(t, "R-2025-0001", resp.ReceiptNumber)
		assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(500)))
		f.customers.AssertExpectations(t)
		f.receipts.AssertExpectations(t)
		f.ledger.AssertExpectations(t)
	})

	t.Run("rejects unparseable amount", func(t *testing.T) {
		f := newAdvanceFixture()

		_, err := f.service.TopUpAdvance(ctx, uuid.New(), TopUpAdvanceRequest{Amount: "5,00", PaidVia: "CASH"})

		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newAdvanceFixture()
		customer, err := partner.NewCustomer("Meena", "")
		require.NoError(t, err)
		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err = f.service.TopUpAdvance(ctx, customer.ID, TopUpAdvanceRequest{Amount: "0", PaidVia: "CASH"})

		assert.Error(t, err)
	})

	t.Run("rejects unknown instrument", func(t *testing.T) {
		f := newAdvanceFixture()
		customer, err := partner.NewCustomer("Meena", "")
		require.NoError(t, err)
		f.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err = f.service.TopUpAdvance(ctx, customer.ID, TopUpAdvanceRequest{Amount: "100", PaidVia: "CARD"})

		assert.Error(t, err)
	})

	t.Run("unknown customer fails", func(t *testing.T) {
		f := newAdvanceFixture()
		id := uuid.New()
		f.customers.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.TopUpAdvance(ctx, id, TopUpAdvanceRequest{Amount: "100", PaidVia: "CASH"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAdvanceService_ListAdvanceHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("maps ledger entries into responses", func(t *testing.T) {
		f := newAdvanceFixture()
		customerID := uuid.New()

		entry, err := partner.NewAdvanceTransaction(
			customerID, partner.AdvanceTransactionTopUp,
			decimal.NewFromInt(500), decimal.Zero, decimal.NewFromInt(500),
			"R-2025-0001", "",
		)
		require.NoError(t, err)
		f.ledger.On("FindByCustomer", ctx, customerID).Return([]partner.AdvanceTransaction{*entry}, nil)

		got, err := f.service.ListAdvanceHistory(ctx, customerID)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "TOPUP", got[0].Type)
		assert.Equal(t, "R-2025-0001", got[0].Reference)
	})
}
