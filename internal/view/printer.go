// Package view holds the presentation collaborators: receipt printing,
// cashier-facing display output, and the revenue observers.
package view

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"

	"github.com/storekit/pos-engine/internal/domain/sale"
)

const timeLayout = "2006-01-02 15:04"

// ReceiptPrinter renders finished receipts as text to a writer.
type ReceiptPrinter struct {
	w io.Writer
}

// NewReceiptPrinter creates a printer writing to w.
func NewReceiptPrinter(w io.Writer) *ReceiptPrinter {
	return &ReceiptPrinter{w: w}
}

// Emit writes the formatted receipt.
func (p *ReceiptPrinter) Emit(r sale.Receipt) error {
	var b []byte
	b = fmt.Appendf(b, "------------------------ Begin receipt ------------------------\n")
	b = fmt.Appendf(b, "Time of Sale: %s\n\n", r.CreatedAt().Format(timeLayout))

	for _, line := range r.Lines() {
		b = fmt.Appendf(b, "%-20s %3d x %8s %12s SEK\n",
			line.Item.Name,
			line.Quantity,
			line.Item.Price.StringFixed(),
			line.Subtotal().StringFixed())
	}

	b = fmt.Appendf(b, "\n")
	if desc := r.DiscountDescription(); desc != "No discount" {
		b = fmt.Appendf(b, "Discount: %s\n", desc)
	}
	b = fmt.Appendf(b, "Total: %s SEK\n", r.Total().StringFixed())
	b = fmt.Appendf(b, "VAT: %s\n\n", r.Tax().StringFixed())
	b = fmt.Appendf(b, "Cash: %s SEK\n", r.Tendered().StringFixed())
	b = fmt.Appendf(b, "Change: %s SEK\n", r.Change().StringFixed())
	b = fmt.Appendf(b, "------------------------ End receipt --------------------------\n")

	if _, err := p.w.Write(b); err != nil {
		return errors.Wrap(err, "write receipt")
	}
	return nil
}
