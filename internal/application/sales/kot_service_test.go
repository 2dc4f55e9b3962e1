package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockKOTRepository is a mock implementation of sales.KOTRepository
type MockKOTRepository struct {
	mock.Mock
}

func (m *MockKOTRepository) Create(ctx context.Context, ticket *sales.KitchenOrderTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockKOTRepository) FindByBusinessDate(ctx context.Context, businessDate string) ([]sales.KitchenOrderTicket, error) {
	args := m.Called(ctx, businessDate)
	return args.Get(0).([]sales.KitchenOrderTicket), args.Error(1)
}

func newKOTFixture() (*KOTService, *MockKOTRepository, *fakeCounterStore) {
	tickets := new(MockKOTRepository)
	counters := newFakeCounterStore()
	service := NewKOTService(tickets, numbering.NewSequencer("main", numbering.DefaultLocale(), counters), passthroughTxManager{})
	service.now = func() time.Time {
		// 06:30 IST on 2025-06-10
		return time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	}
	return service, tickets, counters
}

func TestKOTService_CreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers tickets within the local business day", func(t *testing.T) {
		service, tickets, _ := newKOTFixture()
		tickets.On("Create", ctx, mock.AnythingOfType("*sales.KitchenOrderTicket")).Return(nil)

		req := CreateKOTRequest{
			TableNo: "T4",
			Items:   []KOTItemRequest{{Name: "Masala Dosa", Quantity: 2}},
		}

		first, err := service.CreateTicket(ctx, req)
		require.NoError(t, err)
		second, err := service.CreateTicket(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.TicketNumber)
		assert.Equal(t, int64(2), second.TicketNumber)
		assert.Equal(t, "2025-06-10", first.BusinessDate)
	})

	t.Run("rejects an empty ticket", func(t *testing.T) {
		service, _, _ := newKOTFixture()

		_, err := service.CreateTicket(ctx, CreateKOTRequest{TableNo: "T4"})

		assert.Error(t, err)
	})

	t.Run("rejects items without a name or quantity", func(t *testing.T) {
		service, _, _ := newKOTFixture()

		_, err := service.CreateTicket(ctx, CreateKOTRequest{
			Items: []KOTItemRequest{{Name: "", Quantity: 1}},
		})

		assert.Error(t, err)
	})
}

func TestKOTService_ListTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to today's local business date", func(t *testing.T) {
		service, tickets, _ := newKOTFixture()
		tickets.On("FindByBusinessDate", ctx, "2025-06-10").Return([]sales.KitchenOrderTicket{}, nil)

		_, err := service.ListTickets(ctx, "")

		require.NoError(t, err)
		tickets.AssertExpectations(t)
	})

	t.Run("lists an explicit date", func(t *testing.T) {
		service, tickets, _ := newKOTFixture()
		day := []sales.KitchenOrderTicket{
			{ID: uuid.New(), TicketNumber: 1, BusinessDate: "2025-06-09"},
		}
		tickets.On("FindByBusinessDate", ctx, "2025-06-09").Return(day, nil)

		got, err := service.ListTickets(ctx, "2025-06-09")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].TicketNumber)
	})
}
