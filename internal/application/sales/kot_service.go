package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
)

// KOTService issues kitchen order tickets with day-scoped ticket numbers
type KOTService struct {
	tickets   sales.KOTRepository
	sequencer *numbering.Sequencer
	txManager shared.TxManager
	now       func() time.Time
}

// NewKOTService creates a new KOTService
func NewKOTService(tickets sales.KOTRepository, sequencer *numbering.Sequencer, txManager shared.TxManager) *KOTService {
	return &KOTService{
		tickets:   tickets,
		sequencer: sequencer,
		txManager: txManager,
		now:       time.Now,
	}
}

// KOTItemRequest represents one dish line in a ticket request
type KOTItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Note     string `json:"note"`
}

// CreateKOTRequest represents a request to issue a kitchen order ticket
type CreateKOTRequest struct {
	TableNo string           `json:"table_no"`
	Remark  string           `json:"remark"`
	Items   []KOTItemRequest `json:"items" binding:"required,min=1,dive"`
}

// KOTItemResponse represents one dish line in API responses
type KOTItemResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Note     string    `json:"note,omitempty"`
}

// KOTResponse represents a kitchen order ticket in API responses
type KOTResponse struct {
	ID           uuid.UUID         `json:"id"`
	TicketNumber int64             `json:"ticket_number"`
	BusinessDate string            `json:"business_date"`
	TableNo      string            `json:"table_no,omitempty"`
	Items        []KOTItemResponse `json:"items"`
	Remark       string            `json:"remark,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// CreateTicket mints the day's next ticket number and persists the ticket in
// one transaction, so an insert failure rolls the number back
func (s *KOTService) CreateTicket(ctx context.Context, req CreateKOTRequest) (*KOTResponse, error) {
	items := make([]sales.KOTItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = sales.KOTItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Note:     item.Note,
		}
	}

	var response *KOTResponse
	err := s.txManager.InTransaction(ctx, func(ctx context.Context) error {
		at := s.now()
		number, err := s.sequencer.Next(ctx, numbering.FamilyKOT, at)
		if err != nil {
			return err
		}

		ticket, err := sales.NewKitchenOrderTicket(number, s.sequencer.Locale().BusinessDate(at), req.TableNo, req.Remark, items)
		if err != nil {
			return err
		}
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return err
		}
		response = toKOTResponse(ticket)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListTickets returns the tickets issued on a local business date
func (s *KOTService) ListTickets(ctx context.Context, businessDate string) ([]KOTResponse, error) {
	if businessDate == "" {
		businessDate = s.sequencer.Locale().BusinessDate(s.now())
	}
	tickets, err := s.tickets.FindByBusinessDate(ctx, businessDate)
	if err != nil {
		return nil, err
	}
	responses := make([]KOTResponse, len(tickets))
	for i := range tickets {
		responses[i] = *toKOTResponse(&tickets[i])
	}
	return responses, nil
}

// toKOTResponse converts a ticket to its API representation
func toKOTResponse(ticket *sales.KitchenOrderTicket) *KOTResponse {
	items := make([]KOTItemResponse, len(ticket.Items))
	for i, item := range ticket.Items {
		items[i] = KOTItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Note:     item.Note,
		}
	}
	return &KOTResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		BusinessDate: ticket.BusinessDate,
		TableNo:      ticket.TableNo,
		Items:        items,
		Remark:       ticket.Remark,
		CreatedAt:    ticket.CreatedAt,
	}
}
