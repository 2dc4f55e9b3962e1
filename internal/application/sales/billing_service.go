package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingService drives the bill-closing workflow: opening a split session,
// recording payment lines, and closing the bill with a freshly minted
// fiscal-year number.
type BillingService struct {
	bills     sales.BillRepository
	customers partner.CustomerRepository
	ledger    partner.AdvanceTransactionRepository
	sequencer *numbering.Sequencer
	txManager shared.TxManager
	now       func() time.Time
}

// NewBillingService creates a new BillingService
func NewBillingService(
	bills sales.BillRepository,
	customers partner.CustomerRepository,
	ledger partner.AdvanceTransactionRepository,
	sequencer *numbering.Sequencer,
	txManager shared.TxManager,
) *BillingService {
	return &BillingService{
		bills:     bills,
		customers: customers,
		ledger:    ledger,
		sequencer: sequencer,
		txManager: txManager,
		now:       time.Now,
	}
}

// PaymentLineResponse represents a payment line in API responses
type PaymentLineResponse struct {
	ID     uuid.UUID       `json:"id"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID         uuid.UUID             `json:"id"`
	BillNumber string                `json:"bill_number,omitempty"`
	Total      decimal.Decimal       `json:"total"`
	Status     string                `json:"status"`
	TableNo    string                `json:"table_no,omitempty"`
	CustomerID *uuid.UUID            `json:"customer_id,omitempty"`
	Lines      []PaymentLineResponse `json:"lines"`
	Remainder  decimal.Decimal       `json:"remainder"`
	Remark     string                `json:"remark,omitempty"`
	ClosedAt   *time.Time            `json:"closed_at,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// CreateBillRequest represents a request to open a bill-closing session
type CreateBillRequest struct {
	Total   string `json:"total" binding:"required,amount"`
	TableNo string `json:"table_no"`
	Remark  string `json:"remark"`
}

// AddPaymentLineRequest represents a request to record a payment line
type AddPaymentLineRequest struct {
	Method string `json:"method" binding:"required"`
	Amount string `json:"amount" binding:"required,amount"`
}

// CloseBillRequest represents a request to close a bill
type CloseBillRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// CreateBill opens a bill-closing session for the given total
func (s *BillingService) CreateBill(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		return nil, shared.NewValidationError("Bill total is not a valid amount")
	}

	bill, err := sales.NewBill(total, req.TableNo, req.Remark)
	if err != nil {
		return nil, err
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// GetBill returns a bill with its payment lines
func (s *BillingService) GetBill(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// ListOpenBills returns all bills whose split session is still in progress
func (s *BillingService) ListOpenBills(ctx context.Context) ([]BillResponse, error) {
	bills, err := s.bills.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = *toBillResponse(&bills[i])
	}
	return responses, nil
}

// AddPaymentLine records a payment line on an open bill. The amount text is
// validated before it reaches the allocation: reconciling methods may not
// exceed the unpaid remainder, top-ups and credit restatements only need to
// be positive amounts.
func (s *BillingService) AddPaymentLine(ctx context.Context, billID uuid.UUID, req AddPaymentLineRequest) (*BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	method := sales.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	var max decimal.Decimal
	if method.Reconciling() && method != sales.PaymentMethodCredit {
		max = bill.CreditRemainder()
	} else {
		max = maxLineAmount
	}
	if !sales.ValidateSplitAmount(req.Amount, max) {
		return nil, shared.NewValidationError("Payment amount is not a valid split amount")
	}
	amount, _ := decimal.NewFromString(req.Amount)

	if _, err := bill.AddLine(method, amount); err != nil {
		return nil, err
	}
	if err := s.bills.Save(ctx, bill); err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// RemovePaymentLine deletes a payment line from an open bill
func (s *BillingService) RemovePaymentLine(ctx context.Context, billID, lineID uuid.UUID) (*BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := bill.RemoveLine(lineID); err != nil {
		return nil, err
	}
	if err := s.bills.Save(ctx, bill); err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// CloseBill validates the split, mints the fiscal-year bill number, applies
// any advance-balance effects, and freezes the bill. Everything runs in one
// storage transaction: a failure at any step rolls back the minted number
// together with the rest, so failed closes never burn a number.
func (s *BillingService) CloseBill(ctx context.Context, billID uuid.UUID, req CloseBillRequest) (*BillResponse, error) {
	var response *BillResponse
	err := s.txManager.InTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.bills.FindByID(ctx, billID)
		if err != nil {
			return err
		}
		if bill.Status != sales.BillStatusOpen {
			return shared.ErrInvalidState
		}
		if !bill.ValidateSplitTotal() {
			return shared.NewValidationError("Payment lines do not reconcile to the bill total")
		}

		if req.CustomerID != nil {
			bill.CustomerID = req.CustomerID
		}
		if bill.RequiresCustomer() && bill.CustomerID == nil {
			return shared.NewDomainError("CUSTOMER_REQUIRED", "Bills with advance lines need an identified customer")
		}

		at := s.now()
		seq, err := s.sequencer.Next(ctx, numbering.FamilyBill, at)
		if err != nil {
			return err
		}
		billNumber := fmt.Sprintf("B-%s-%04d", s.sequencer.PeriodKey(numbering.FamilyBill, at), seq)

		if err := s.applyAdvanceEffects(ctx, bill, billNumber); err != nil {
			return err
		}
		if err := bill.Close(billNumber, at); err != nil {
			return err
		}
		if err := s.bills.Save(ctx, bill); err != nil {
			return err
		}
		response = toBillResponse(bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// applyAdvanceEffects settles the bill's advance lines against the customer's
// prepaid balance and appends the corresponding ledger entries
func (s *BillingService) applyAdvanceEffects(ctx context.Context, bill *sales.Bill, billNumber string) error {
	advanceLines := bill.AdvanceLines()
	if len(advanceLines) == 0 {
		return nil
	}

	customer, err := s.customers.FindByID(ctx, *bill.CustomerID)
	if err != nil {
		return err
	}

	for _, line := range advanceLines {
		before := customer.AdvanceBalance

		var txType partner.AdvanceTransactionType
		if line.Method == sales.PaymentMethodAdvanceUse {
			txType = partner.AdvanceTransactionConsume
			err = customer.DeductAdvance(line.Amount)
		} else {
			txType = partner.AdvanceTransactionTopUp
			err = customer.TopUpAdvance(line.Amount)
		}
		if err != nil {
			return err
		}

		entry, err := partner.NewAdvanceTransaction(
			customer.ID, txType, line.Amount,
			before, customer.AdvanceBalance,
			billNumber, "",
		)
		if err != nil {
			return err
		}
		if err := s.ledger.Create(ctx, entry); err != nil {
			return err
		}
	}

	return s.customers.SaveWithLock(ctx, customer)
}

// maxLineAmount bounds amounts that are not capped by the unpaid remainder,
// such as advance top-ups riding along with a bill
var maxLineAmount = decimal.NewFromInt(10_000_000)

// toBillResponse converts a bill to its API representation
func toBillResponse(bill *sales.Bill) *BillResponse {
	lines := make([]PaymentLineResponse, len(bill.Lines))
	for i, line := range bill.Lines {
		lines[i] = PaymentLineResponse{
			ID:     line.ID,
			Method: string(line.Method),
			Amount: line.Amount,
		}
	}
	return &BillResponse{
		ID:         bill.ID,
		BillNumber: bill.BillNumber,
		Total:      bill.Total,
		Status:     string(bill.Status),
		TableNo:    bill.TableNo,
		CustomerID: bill.CustomerID,
		Lines:      lines,
		Remainder:  bill.CreditRemainder(),
		Remark:     bill.Remark,
		ClosedAt:   bill.ClosedAt,
		CreatedAt:  bill.CreatedAt,
	}
}
