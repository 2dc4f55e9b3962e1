package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseService records shop expenses under fiscal-year voucher numbers
type ExpenseService struct {
	vouchers  finance.ExpenseVoucherRepository
	sequencer *numbering.Sequencer
	txManager shared.TxManager
	now       func() time.Time
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(vouchers finance.ExpenseVoucherRepository, sequencer *numbering.Sequencer, txManager shared.TxManager) *ExpenseService {
	return &ExpenseService{
		vouchers:  vouchers,
		sequencer: sequencer,
		txManager: txManager,
		now:       time.Now,
	}
}

// RecordExpenseRequest represents a request to record an expense
type RecordExpenseRequest struct {
	Category    string    `json:"category" binding:"required"`
	Amount      string    `json:"amount" binding:"required,amount"`
	PaidVia     string    `json:"paid_via" binding:"required"`
	Description string    `json:"description" binding:"required"`
	IncurredAt  time.Time `json:"incurred_at" binding:"required"`
	Remark      string    `json:"remark"`
}

// ExpenseVoucherResponse represents an expense voucher in API responses
type ExpenseVoucherResponse struct {
	ID            uuid.UUID       `json:"id"`
	VoucherNumber string          `json:"voucher_number"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	PaidVia       string          `json:"paid_via"`
	Description   string          `json:"description"`
	IncurredAt    time.Time       `json:"incurred_at"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordExpense mints the next voucher number for the current fiscal year and
// persists the voucher in one transaction
func (s *ExpenseService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*ExpenseVoucherResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, shared.NewValidationError("Expense amount is not a valid amount")
	}

	var response *ExpenseVoucherResponse
	err = s.txManager.InTransaction(ctx, func(ctx context.Context) error {
		at := s.now()
		seq, err := s.sequencer.Next(ctx, numbering.FamilyExpense, at)
		if err != nil {
			return err
		}
		voucherNumber := fmt.Sprintf("EV-%s-%04d", s.sequencer.PeriodKey(numbering.FamilyExpense, at), seq)

		voucher, err := finance.NewExpenseVoucher(
			voucherNumber,
			finance.ExpenseCategory(req.Category),
			amount,
			finance.PaidVia(req.PaidVia),
			req.Description,
			req.IncurredAt,
			req.Remark,
		)
		if err != nil {
			return err
		}
		if err := s.vouchers.Create(ctx, voucher); err != nil {
			return err
		}
		response = toExpenseVoucherResponse(voucher)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetExpense returns an expense voucher by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseVoucherResponse, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseVoucherResponse(voucher), nil
}

// ListExpenses returns vouchers incurred in [from, to), oldest first
func (s *ExpenseService) ListExpenses(ctx context.Context, from, to time.Time) ([]ExpenseVoucherResponse, error) {
	vouchers, err := s.vouchers.ListIncurredBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseVoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = *toExpenseVoucherResponse(&vouchers[i])
	}
	return responses, nil
}

// toExpenseVoucherResponse converts a voucher to its API representation
func toExpenseVoucherResponse(voucher *finance.ExpenseVoucher) *ExpenseVoucherResponse {
	return &ExpenseVoucherResponse{
		ID:            voucher.ID,
		VoucherNumber: voucher.VoucherNumber,
		Category:      voucher.Category.String(),
		Amount:        voucher.Amount,
		PaidVia:       string(voucher.PaidVia),
		Description:   voucher.Description,
		IncurredAt:    voucher.IncurredAt,
		Remark:        voucher.Remark,
		CreatedAt:     voucher.CreatedAt,
	}
}
