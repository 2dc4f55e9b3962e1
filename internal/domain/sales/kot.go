package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// KOTItem is one dish line on a kitchen order ticket
type KOTItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TicketID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Quantity int       `gorm:"not null"`
	Note     string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (KOTItem) TableName() string {
	return "kot_items"
}

// KitchenOrderTicket is the slip sent to the kitchen for one order round.
// Ticket numbers restart from 1 every local business day.
type KitchenOrderTicket struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	TicketNumber int64     `gorm:"not null"`
	BusinessDate string    `gorm:"type:varchar(10);not null;index"` // local date, YYYY-MM-DD
	TableNo      string    `gorm:"type:varchar(20)"`
	Items        []KOTItem `gorm:"foreignKey:TicketID;references:ID"`
	Remark       string    `gorm:"type:varchar(500)"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (KitchenOrderTicket) TableName() string {
	return "kitchen_order_tickets"
}

// NewKitchenOrderTicket creates a ticket with its day-scoped number already
// minted by the caller
func NewKitchenOrderTicket(ticketNumber int64, businessDate, tableNo, remark string, items []KOTItem) (*KitchenOrderTicket, error) {
	if ticketNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_TICKET_NUMBER", "Ticket number must be positive")
	}
	if businessDate == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_DATE", "Business date is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_TICKET", "Ticket must have at least one item")
	}
	for _, item := range items {
		if item.Name == "" || item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_TICKET_ITEM", "Ticket items need a name and a positive quantity")
		}
	}

	ticket := &KitchenOrderTicket{
		ID:           uuid.New(),
		TicketNumber: ticketNumber,
		BusinessDate: businessDate,
		TableNo:      tableNo,
		Remark:       remark,
	}
	for _, item := range items {
		item.ID = uuid.New()
		item.TicketID = ticket.ID
		ticket.Items = append(ticket.Items, item)
	}
	return ticket, nil
}
