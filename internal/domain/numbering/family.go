package numbering

// Family identifies one of the document types sharing the numbering mechanism.
// Each family has its own reset cadence: kitchen order tickets restart every
// local day, the other three restart every fiscal year.
type Family string

const (
	FamilyKOT     Family = "kot"     // kitchen order ticket, daily reset
	FamilyBill    Family = "bill"    // customer bill, fiscal-year reset
	FamilyReceipt Family = "receipt" // advance receipt, fiscal-year reset
	FamilyExpense Family = "expense" // expense voucher, fiscal-year reset
)

// IsValid checks if the family is one of the known document families
func (f Family) IsValid() bool {
	switch f {
	case FamilyKOT, FamilyBill, FamilyReceipt, FamilyExpense:
		return true
	}
	return false
}

// String returns the string representation of Family
func (f Family) String() string {
	return string(f)
}

// ResetsDaily returns true if the family's counter restarts every local day
func (f Family) ResetsDaily() bool {
	return f == FamilyKOT
}
