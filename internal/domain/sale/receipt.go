package sale

import (
	"time"

	"github.com/storekit/pos-engine/internal/domain/money"
)

// Receipt is an immutable record of a settled sale plus the tendered amount.
// It is built once from a completed sale and never changes afterwards.
type Receipt struct {
	createdAt           time.Time
	lines               []Line
	total               money.Amount
	tax                 money.Amount
	tendered            money.Amount
	change              money.Amount
	discountDescription string
}

// NewReceipt builds the receipt for a sale settled with the tendered amount.
// Change is tendered minus the discounted total and may be negative when the
// customer underpaid; rejecting underpayment is the caller's policy decision.
func NewReceipt(s *Sale, tendered money.Amount) Receipt {
	return Receipt{
		createdAt:           s.CreatedAt(),
		lines:               s.Lines(),
		total:               s.TotalAfterDiscount(),
		tax:                 s.TotalTax(),
		tendered:            tendered,
		change:              tendered.Sub(s.TotalAfterDiscount()),
		discountDescription: s.DiscountDescription(),
	}
}

// CreatedAt returns the sale's creation time.
func (r Receipt) CreatedAt() time.Time {
	return r.createdAt
}

// Lines returns the receipt lines in the order items were first entered.
// The returned slice is a copy.
func (r Receipt) Lines() []Line {
	lines := make([]Line, len(r.lines))
	copy(lines, r.lines)
	return lines
}

// Total returns the amount the customer owed after discount.
func (r Receipt) Total() money.Amount {
	return r.total
}

// Tax returns the total tax on the sale.
func (r Receipt) Tax() money.Amount {
	return r.tax
}

// Tendered returns the amount the customer paid.
func (r Receipt) Tendered() money.Amount {
	return r.tendered
}

// Change returns the amount to hand back to the customer.
func (r Receipt) Change() money.Amount {
	return r.change
}

// DiscountDescription describes the discount that was applied to the sale.
func (r Receipt) DiscountDescription() string {
	return r.discountDescription
}
