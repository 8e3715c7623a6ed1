package view

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"

	"github.com/storekit/pos-engine/internal/domain/money"
)

// RevenueView is a payment observer that prints the cumulative revenue
// since program start after every settled payment.
type RevenueView struct {
	w     io.Writer
	total money.Amount
}

// NewRevenueView creates a RevenueView writing to w.
func NewRevenueView(w io.Writer) *RevenueView {
	return &RevenueView{w: w, total: money.Zero()}
}

// NewPayment adds the payment to the running revenue and prints it.
func (v *RevenueView) NewPayment(amount money.Amount) error {
	v.total = v.total.Add(amount)
	if _, err := fmt.Fprintf(v.w, "Total revenue since program start: %s SEK\n", v.total.StringFixed()); err != nil {
		return errors.Wrap(err, "write revenue")
	}
	return nil
}

// Total returns the revenue accumulated so far.
func (v *RevenueView) Total() money.Amount {
	return v.total
}
