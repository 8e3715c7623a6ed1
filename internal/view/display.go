package view

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
)

var hundred = decimal.NewFromInt(100)

// Display writes cashier-facing progress output during a sale. Output is
// best effort; write failures are ignored.
type Display struct {
	w io.Writer
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// Item shows the catalog record that was just entered.
func (d *Display) Item(it item.Item) {
	fmt.Fprintf(d.w, "Item ID: %s\n", it.ID)
	fmt.Fprintf(d.w, "Item name: %s\n", it.Name)
	fmt.Fprintf(d.w, "Item cost: %s SEK\n", it.Price.StringFixed())
	fmt.Fprintf(d.w, "VAT: %s%%\n", it.TaxRate.Mul(hundred).String())
	fmt.Fprintf(d.w, "Item description: %s\n\n", it.Description)
}

// Total shows the current total including VAT.
func (d *Display) Total(total money.Amount) {
	fmt.Fprintf(d.w, "Total cost (incl VAT): %s SEK\n\n", total.StringFixed())
}

// DiscountedTotal shows the total together with the discount that produced it.
func (d *Display) DiscountedTotal(original, total money.Amount, description string) {
	fmt.Fprintf(d.w, "Original total: %s SEK\n", original.StringFixed())
	fmt.Fprintf(d.w, "Applied discount: %s\n", description)
	fmt.Fprintf(d.w, "Total cost (incl VAT): %s SEK\n\n", total.StringFixed())
}

// TotalVAT shows the accumulated VAT for the sale.
func (d *Display) TotalVAT(vat money.Amount) {
	fmt.Fprintf(d.w, "Total VAT: %s SEK\n", vat.StringFixed())
}

// Change shows the change to hand back to the customer.
func (d *Display) Change(change money.Amount) {
	fmt.Fprintf(d.w, "Change: %s SEK\n", change.StringFixed())
}

// Error shows a user-facing error message.
func (d *Display) Error(message string) {
	fmt.Fprintf(d.w, "ERROR: %s\n\n", message)
}
