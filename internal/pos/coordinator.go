// Package pos wires one register session together: it sequences a sale from
// start through item entry, discount, payment, external logging, and receipt
// output. The package is orchestration glue; all pricing logic lives in the
// domain packages.
package pos

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storekit/pos-engine/internal/domain/discount"
	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/domain/sale"
	"github.com/storekit/pos-engine/internal/register"
)

// ErrNoActiveSale is returned when an operation requires a sale in progress
// and none has been started.
var ErrNoActiveSale = errors.New("no active sale")

// DiscountLookup resolves the discount offer for a customer and the sale in
// progress. Implementations always return a usable offer; "no discount" is
// itself a valid offer, not an error.
type DiscountLookup interface {
	FindOffer(ctx context.Context, customerID int, info sale.Snapshot) (discount.Offer, error)
}

// Accounting receives every completed sale for financial record keeping.
type Accounting interface {
	Record(ctx context.Context, info sale.Snapshot) error
}

// InventoryUpdater applies the sold quantities of a completed sale to the
// inventory.
type InventoryUpdater interface {
	ApplySale(ctx context.Context, info sale.Snapshot) error
}

// Printer emits a finished receipt. Formatting and output medium belong to
// the implementation.
type Printer interface {
	Emit(r sale.Receipt) error
}

// Coordinator runs one register session. It owns the sale in progress and
// coordinates the inventory, discount, accounting, and printing
// collaborators around it. A Coordinator is not safe for concurrent use.
type Coordinator struct {
	inventory item.Repository
	discounts DiscountLookup
	cash      *register.Register
	recorder  Accounting
	stock     InventoryUpdater
	printer   Printer
	lg        *zap.Logger

	current *sale.Sale
}

// NewCoordinator creates a Coordinator with its collaborators.
func NewCoordinator(
	inventory item.Repository,
	discounts DiscountLookup,
	cash *register.Register,
	recorder Accounting,
	stock InventoryUpdater,
	printer Printer,
	lg *zap.Logger,
) *Coordinator {
	return &Coordinator{
		inventory: inventory,
		discounts: discounts,
		cash:      cash,
		recorder:  recorder,
		stock:     stock,
		printer:   printer,
		lg:        lg,
	}
}

// StartSale begins a new transaction and returns its identifier. Any sale
// already in progress is abandoned.
func (c *Coordinator) StartSale() string {
	id := uuid.New().String()
	c.current = sale.New(id)
	c.lg.Info("Sale started", zap.String("sale_id", id))
	return id
}

// EnterItem records quantity units of the identified item in the current
// sale and returns the catalog record that was applied. When the item is
// already in the sale its captured snapshot is reused and the inventory is
// not consulted again; otherwise the item is resolved through the inventory
// repository first.
func (c *Coordinator) EnterItem(ctx context.Context, itemID string, quantity int) (item.Item, error) {
	if c.current == nil {
		return item.Item{}, ErrNoActiveSale
	}

	line, err := c.current.Line(itemID)
	if err == nil {
		if err := c.current.AddOrIncrease(line.Item, quantity); err != nil {
			return item.Item{}, err
		}
		return line.Item, nil
	}

	var lineErr *sale.LineNotFoundError
	if !errors.As(err, &lineErr) {
		return item.Item{}, errors.Wrap(err, "find line item")
	}

	it, err := c.inventory.Find(ctx, itemID)
	if err != nil {
		c.lg.Warn("Item lookup failed",
			zap.String("item_id", itemID), zap.Error(err))
		return item.Item{}, errors.Wrap(err, "lookup item")
	}

	if err := c.current.AddOrIncrease(it, quantity); err != nil {
		return item.Item{}, err
	}
	return it, nil
}

// RequestDiscount records the customer on the sale, resolves their discount
// offer against the current sale state, and applies it. Calling it again
// replaces any earlier offer.
func (c *Coordinator) RequestDiscount(ctx context.Context, customerID int) error {
	if c.current == nil {
		return ErrNoActiveSale
	}

	c.current.SetCustomer(customerID)

	offer, err := c.discounts.FindOffer(ctx, customerID, c.current.Snapshot())
	if err != nil {
		return errors.Wrap(err, "find discount offer")
	}

	c.current.ApplyOffer(offer)
	c.lg.Info("Discount applied",
		zap.Int("customer_id", customerID),
		zap.String("discount", c.current.DiscountDescription()))
	return nil
}

// CurrentTotal returns the running total with the active discount applied.
func (c *Coordinator) CurrentTotal() (money.Amount, error) {
	if c.current == nil {
		return money.Amount{}, ErrNoActiveSale
	}
	return c.current.TotalAfterDiscount(), nil
}

// OriginalTotal returns the running total before any discount.
func (c *Coordinator) OriginalTotal() (money.Amount, error) {
	if c.current == nil {
		return money.Amount{}, ErrNoActiveSale
	}
	return c.current.RunningTotal(), nil
}

// TotalTax returns the total tax for the current sale.
func (c *Coordinator) TotalTax() (money.Amount, error) {
	if c.current == nil {
		return money.Amount{}, ErrNoActiveSale
	}
	return c.current.TotalTax(), nil
}

// DiscountDescription describes the discount active on the current sale.
func (c *Coordinator) DiscountDescription() (string, error) {
	if c.current == nil {
		return "", ErrNoActiveSale
	}
	return c.current.DiscountDescription(), nil
}

// EndSale closes item entry and returns the final amount to pay.
func (c *Coordinator) EndSale() (money.Amount, error) {
	if c.current == nil {
		return money.Amount{}, ErrNoActiveSale
	}
	return c.current.TotalAfterDiscount(), nil
}

// Pay settles the current sale with the tendered amount. It records the
// discounted total in the cash register (which notifies revenue observers),
// reports the completed sale to the accounting and inventory sinks, emits
// the receipt, and returns it. The sale is terminal afterwards; further item
// entry requires StartSale.
//
// Underpayment is not rejected: change on the receipt goes negative and a
// warning is logged. Accounting and inventory sink failures are logged and
// do not fail the payment.
func (c *Coordinator) Pay(ctx context.Context, tendered money.Amount) (sale.Receipt, error) {
	if c.current == nil {
		return sale.Receipt{}, ErrNoActiveSale
	}

	total := c.current.TotalAfterDiscount()
	receipt := sale.NewReceipt(c.current, tendered)

	if receipt.Change().IsNegative() {
		c.lg.Warn("Sale underpaid",
			zap.String("sale_id", c.current.ID()),
			zap.String("total", total.StringFixed()),
			zap.String("tendered", tendered.StringFixed()))
	}

	if err := c.cash.RecordPayment(total); err != nil {
		return sale.Receipt{}, errors.Wrap(err, "record payment")
	}

	info := c.current.Snapshot()
	if err := c.stock.ApplySale(ctx, info); err != nil {
		c.lg.Error("Inventory update failed",
			zap.String("sale_id", info.ID), zap.Error(err))
	}
	if err := c.recorder.Record(ctx, info); err != nil {
		c.lg.Error("Accounting update failed",
			zap.String("sale_id", info.ID), zap.Error(err))
	}

	if err := c.printer.Emit(receipt); err != nil {
		return sale.Receipt{}, errors.Wrap(err, "print receipt")
	}

	c.lg.Info("Sale completed",
		zap.String("sale_id", info.ID),
		zap.String("total", total.StringFixed()),
		zap.String("change", receipt.Change().StringFixed()))

	c.current = nil
	return receipt, nil
}
