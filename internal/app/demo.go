package app

import (
	"context"
	"fmt"
	"os"

	"github.com/go-faster/errors"

	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/pos"
	"github.com/storekit/pos-engine/internal/view"
)

// runDemoSale walks one full transaction through the coordinator: item
// entry, discount, a couple of provoked failures, payment, and receipt.
func runDemoSale(ctx context.Context, c *pos.Coordinator, display *view.Display, cfg *Config) error {
	fmt.Println("=== Starting New Sale ===")
	c.StartSale()

	fmt.Println("\n=== Scanning Items ===")
	scanItem(ctx, c, display, "A1", 1)
	scanItem(ctx, c, display, "ABC123", 2)
	scanItem(ctx, c, display, "H2O", 1)

	fmt.Println("\n=== Applying Discount ===")
	if err := c.RequestDiscount(ctx, cfg.CustomerID); err != nil {
		return errors.Wrap(err, "request discount")
	}

	original, err := c.OriginalTotal()
	if err != nil {
		return err
	}
	total, err := c.CurrentTotal()
	if err != nil {
		return err
	}
	desc, err := c.DiscountDescription()
	if err != nil {
		return err
	}
	if desc != "No discount" {
		display.DiscountedTotal(original, total, desc)
	} else {
		display.Total(total)
	}

	fmt.Println("=== Error Handling Demo ===")
	scanItem(ctx, c, display, "NONEXISTENT", 1)
	scanItem(ctx, c, display, "DB-ERROR-999", 1)

	fmt.Println("=== End Sale ===")
	finalTotal, err := c.EndSale()
	if err != nil {
		return err
	}
	fmt.Printf("Final price (incl VAT): %s SEK\n", finalTotal.StringFixed())

	fmt.Println("\n=== Process Payment ===")
	tendered := money.FromFloat(cfg.Tendered)
	fmt.Printf("Amount paid: %s SEK\n\n", tendered.StringFixed())

	receipt, err := c.Pay(ctx, tendered)
	if err != nil {
		return errors.Wrap(err, "pay")
	}
	display.Change(receipt.Change())
	return nil
}

// scanItem enters one item and shows progress. Lookup failures are shown to
// the cashier and do not abort the sale.
func scanItem(ctx context.Context, c *pos.Coordinator, display *view.Display, itemID string, quantity int) {
	it, err := c.EnterItem(ctx, itemID, quantity)
	if err != nil {
		display.Error(friendlyMessage(err))
		fmt.Fprintf(os.Stderr, "Technical details: %v\n", err)
		return
	}

	display.Item(it)
	total, err := c.CurrentTotal()
	if err != nil {
		return
	}
	display.Total(total)
	if vat, err := c.TotalTax(); err == nil {
		display.TotalVAT(vat)
	}
	fmt.Println("------------------------------------------")
}

// friendlyMessage maps an error to a message suitable for the cashier
// display, falling back to the raw error text.
func friendlyMessage(err error) string {
	var nfErr *item.NotFoundError
	if errors.As(err, &nfErr) {
		return nfErr.FriendlyMessage()
	}
	var uErr *item.UnavailableError
	if errors.As(err, &uErr) {
		return uErr.FriendlyMessage()
	}
	return err.Error()
}
