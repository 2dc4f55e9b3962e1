package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// splitTolerance absorbs floating-point noise when amounts arrive from UI
// input. Two reconciled totals within 0.01 of each other are considered equal.
var splitTolerance = decimal.New(1, -2)

// SplitAllocation manages the decomposition of one bill's total into payment
// lines for a single bill-closing session.
//
// The CREDIT line acts as the single remaining-balance register: the session
// starts fully unpaid (one CREDIT line carrying the total) and every add or
// remove of a reconciling line is a balanced transfer into or out of that
// register. At every step the lines excluding advance top-ups sum to the bill
// total. There is at most one line per method, including CREDIT; AddLine and
// RemoveLine merge by method rather than appending duplicates.
//
// AddLine and RemoveLine are total functions. Amounts are pre-validated by
// ValidateSplitAmount at the input boundary, so the mutation primitives trust
// their caller and never fail.
type SplitAllocation struct {
	BillTotal decimal.Decimal
	Lines     []PaymentLine
}

// NewSplitAllocation starts a bill-closing session in the fully-unpaid state
func NewSplitAllocation(billTotal decimal.Decimal) *SplitAllocation {
	return &SplitAllocation{
		BillTotal: billTotal,
		Lines:     []PaymentLine{NewPaymentLine(PaymentMethodCredit, billTotal)},
	}
}

// lineIndex returns the index of the line with the given method, or -1
func (s *SplitAllocation) lineIndex(method PaymentMethod) int {
	for i := range s.Lines {
		if s.Lines[i].Method == method {
			return i
		}
	}
	return -1
}

// mergeOrAppend adds the amount to the existing line of the method, or
// appends a new line. Returns the affected line's ID.
func (s *SplitAllocation) mergeOrAppend(method PaymentMethod, amount decimal.Decimal) uuid.UUID {
	if i := s.lineIndex(method); i >= 0 {
		s.Lines[i].Amount = s.Lines[i].Amount.Add(amount)
		return s.Lines[i].ID
	}
	line := NewPaymentLine(method, amount)
	s.Lines = append(s.Lines, line)
	return line.ID
}

// reduceCredit transfers the amount out of the CREDIT register. A register
// that reaches exactly zero is dropped from the line list.
func (s *SplitAllocation) reduceCredit(amount decimal.Decimal) {
	i := s.lineIndex(PaymentMethodCredit)
	if i < 0 {
		return
	}
	s.Lines[i].Amount = s.Lines[i].Amount.Sub(amount)
	if s.Lines[i].Amount.IsZero() {
		s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
	}
}

// AddLine records a payment of the given method and amount. Reconciling
// methods shift the amount out of the CREDIT register; advance top-ups are
// recorded alongside without touching the reconciliation. Adding CREDIT
// restates (increases) the unpaid remainder. Returns the affected line's ID.
func (s *SplitAllocation) AddLine(method PaymentMethod, amount decimal.Decimal) uuid.UUID {
	switch {
	case method.IsAdvanceTopUp():
		return s.mergeOrAppend(method, amount)
	case method == PaymentMethodCredit:
		return s.mergeOrAppend(PaymentMethodCredit, amount)
	default: // CASH, UPI, ADVANCE_USE
		id := s.mergeOrAppend(method, amount)
		s.reduceCredit(amount)
		return id
	}
}

// RemoveLine deletes the line with the given ID. The CREDIT register cannot
// be removed directly (no-op); advance top-ups are plain deletes; any other
// line's amount is restored into the CREDIT register so the reconciled total
// is preserved. Unknown IDs are ignored.
func (s *SplitAllocation) RemoveLine(id uuid.UUID) {
	for i := range s.Lines {
		if s.Lines[i].ID != id {
			continue
		}
		line := s.Lines[i]
		if line.Method == PaymentMethodCredit {
			return
		}
		s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
		if line.Method.Reconciling() {
			s.mergeOrAppend(PaymentMethodCredit, line.Amount)
		}
		return
	}
}

// CreditRemainder returns the current unpaid remainder, or zero if the bill
// is fully allocated. Conventionally used as the max for ValidateSplitAmount.
func (s *SplitAllocation) CreditRemainder() decimal.Decimal {
	if i := s.lineIndex(PaymentMethodCredit); i >= 0 {
		return s.Lines[i].Amount
	}
	return decimal.Zero
}

// ReconciledTotal sums the lines that count toward the bill total
func (s *SplitAllocation) ReconciledTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Lines {
		if s.Lines[i].Method.Reconciling() {
			total = total.Add(s.Lines[i].Amount)
		}
	}
	return total
}

// AdvanceTopUpTotal sums the side-channel advance top-up lines
func (s *SplitAllocation) AdvanceTopUpTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Lines {
		if s.Lines[i].Method.IsAdvanceTopUp() {
			total = total.Add(s.Lines[i].Amount)
		}
	}
	return total
}

// ValidateSplitTotal is the terminal gate before a bill may close: the
// reconciled total must match the bill total within the rounding tolerance.
func (s *SplitAllocation) ValidateSplitTotal() bool {
	return s.ReconciledTotal().Sub(s.BillTotal).Abs().LessThanOrEqual(splitTolerance)
}

// ValidateSplitAmount parses user-entered amount text and reports whether it
// is a usable split amount: a valid decimal, positive, and no more than max.
// Max is conventionally the current CREDIT remainder, which prevents
// allocating beyond what is still owed.
func ValidateSplitAmount(text string, max decimal.Decimal) bool {
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return false
	}
	return amount.IsPositive() && amount.LessThanOrEqual(max)
}
