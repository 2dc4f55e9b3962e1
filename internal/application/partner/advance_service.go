package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdvanceService manages customers and their prepaid advance balances.
// Standalone counter top-ups mint a fiscal-year receipt number.
type AdvanceService struct {
	customers partner.CustomerRepository
	ledger    partner.AdvanceTransactionRepository
	receipts  finance.AdvanceReceiptRepository
	sequencer *numbering.Sequencer
	txManager shared.TxManager
	now       func() time.Time
}

// NewAdvanceService creates a new AdvanceService
func NewAdvanceService(
	customers partner.CustomerRepository,
	ledger partner.AdvanceTransactionRepository,
	receipts finance.AdvanceReceiptRepository,
	sequencer *numbering.Sequencer,
	txManager shared.TxManager,
) *AdvanceService {
	return &AdvanceService{
		customers: customers,
		ledger:    ledger,
		receipts:  receipts,
		sequencer: sequencer,
		txManager: txManager,
		now:       time.Now,
	}
}

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// TopUpAdvanceRequest represents a standalone counter top-up
type TopUpAdvanceRequest struct {
	Amount  string `json:"amount" binding:"required,amount"`
	PaidVia string `json:"paid_via" binding:"required"`
	Remark  string `json:"remark"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	AdvanceBalance decimal.Decimal `json:"advance_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AdvanceReceiptResponse represents a top-up receipt in API responses
type AdvanceReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaidVia       string          `json:"paid_via"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AdvanceTransactionResponse represents one ledger entry in API responses
type AdvanceTransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reference     string          `json:"reference,omitempty"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateCustomer registers a customer with a zero advance balance
func (s *AdvanceService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer returns a customer by ID
func (s *AdvanceService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// FindCustomerByPhone returns a customer by phone number
func (s *AdvanceService) FindCustomerByPhone(ctx context.Context, phone string) (*CustomerResponse, error) {
	customer, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// TopUpAdvance credits a standalone counter top-up to the customer's advance
// balance: mint the fiscal-year receipt number, record the receipt, append the
// ledger entry, and save the balance, all in one transaction.
func (s *AdvanceService) TopUpAdvance(ctx context.Context, customerID uuid.UUID, req TopUpAdvanceRequest) (*AdvanceReceiptResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, shared.NewValidationError("Top-up amount is not a valid amount")
	}

	var response *AdvanceReceiptResponse
	err = s.txManager.InTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		at := s.now()
		seq, err := s.sequencer.Next(ctx, numbering.FamilyReceipt, at)
		if err != nil {
			return err
		}
		receiptNumber := fmt.Sprintf("R-%s-%04d", s.sequencer.PeriodKey(numbering.FamilyReceipt, at), seq)

		receipt, err := finance.NewAdvanceReceipt(receiptNumber, customer.ID, amount, finance.PaidVia(req.PaidVia), req.Remark)
		if err != nil {
			return err
		}

		before := customer.AdvanceBalance
		if err := customer.TopUpAdvance(amount); err != nil {
			return err
		}

		entry, err := partner.NewAdvanceTransaction(
			customer.ID, partner.AdvanceTransactionTopUp, amount,
			before, customer.AdvanceBalance,
			receiptNumber, req.Remark,
		)
		if err != nil {
			return err
		}

		if err := s.receipts.Create(ctx, receipt); err != nil {
			return err
		}
		if err := s.ledger.Create(ctx, entry); err != nil {
			return err
		}
		if err := s.customers.SaveWithLock(ctx, customer); err != nil {
			return err
		}

		response = &AdvanceReceiptResponse{
			ID:            receipt.ID,
			ReceiptNumber: receipt.ReceiptNumber,
			CustomerID:    receipt.CustomerID,
			Amount:        receipt.Amount,
			PaidVia:       string(receipt.PaidVia),
			NewBalance:    customer.AdvanceBalance,
			Remark:        receipt.Remark,
			CreatedAt:     receipt.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListAdvanceHistory returns a customer's advance ledger, newest first
func (s *AdvanceService) ListAdvanceHistory(ctx context.Context, customerID uuid.UUID) ([]AdvanceTransactionResponse, error) {
	entries, err := s.ledger.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]AdvanceTransactionResponse, len(entries))
	for i, entry := range entries {
		responses[i] = AdvanceTransactionResponse{
			ID:            entry.ID,
			Type:          string(entry.Type),
			Amount:        entry.Amount,
			BalanceBefore: entry.BalanceBefore,
			BalanceAfter:  entry.BalanceAfter,
			Reference:     entry.Reference,
			Remark:        entry.Remark,
			CreatedAt:     entry.CreatedAt,
		}
	}
	return responses, nil
}

// toCustomerResponse converts a customer to its API representation
func toCustomerResponse(customer *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		AdvanceBalance: customer.AdvanceBalance,
		CreatedAt:      customer.CreatedAt,
	}
}
