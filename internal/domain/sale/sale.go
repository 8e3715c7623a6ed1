// Package sale implements the sale aggregate: the line items of one
// transaction, its running totals, and the discount applied to it.
package sale

import (
	"fmt"
	"time"

	"github.com/storekit/pos-engine/internal/domain/discount"
	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
)

// InvalidQuantityError indicates a caller passed a non-positive quantity.
// No sale state changes when it is returned.
type InvalidQuantityError struct {
	ItemID   string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for item %s, got %d", e.ItemID, e.Quantity)
}

// LineNotFoundError indicates the sale holds no line for the given item
// identifier. Callers use it to decide between updating an existing line and
// inserting a new one.
type LineNotFoundError struct {
	ItemID string
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("no line for item %s in sale", e.ItemID)
}

// Sale is one in-progress or completed transaction. It owns its line items
// and keeps the running total and tax total consistent with them: both are
// fully recomputed on every mutation, never incrementally adjusted.
//
// A Sale is not safe for concurrent use; it belongs to a single register
// session.
type Sale struct {
	id         string
	createdAt  time.Time
	customerID int

	// order preserves first-insertion order of item identifiers; lines is
	// keyed by item identifier so re-entering an item updates in place.
	order []string
	lines map[string]Line

	runningTotal money.Amount
	totalTax     money.Amount
	strategy     discount.Strategy
}

// New creates an empty sale. The identifier must be unique for the process
// lifetime; callers are expected to supply a UUID.
func New(id string) *Sale {
	return &Sale{
		id:           id,
		createdAt:    time.Now(),
		lines:        make(map[string]Line),
		runningTotal: money.Zero(),
		totalTax:     money.Zero(),
		strategy:     discount.None{},
	}
}

// ID returns the sale identifier.
func (s *Sale) ID() string {
	return s.id
}

// CreatedAt returns the creation time of the sale.
func (s *Sale) CreatedAt() time.Time {
	return s.createdAt
}

// CustomerID returns the customer this sale belongs to, or 0 when no
// discount has been requested.
func (s *Sale) CustomerID() int {
	return s.customerID
}

// SetCustomer records which customer this sale belongs to.
func (s *Sale) SetCustomer(customerID int) {
	s.customerID = customerID
}

// AddOrIncrease enters an item into the sale. If a line for the item already
// exists its quantity grows by quantity, keeping the catalog snapshot
// captured on first entry; otherwise a new line is appended. Totals are
// recomputed afterwards.
func (s *Sale) AddOrIncrease(it item.Item, quantity int) error {
	if quantity <= 0 {
		return &InvalidQuantityError{ItemID: it.ID, Quantity: quantity}
	}

	if existing, ok := s.lines[it.ID]; ok {
		s.lines[it.ID] = Line{Item: existing.Item, Quantity: existing.Quantity + quantity}
	} else {
		s.order = append(s.order, it.ID)
		s.lines[it.ID] = Line{Item: it, Quantity: quantity}
	}

	s.recompute()
	return nil
}

// recompute rebuilds the running total and tax total from the current lines.
func (s *Sale) recompute() {
	subtotal := money.Zero()
	tax := money.Zero()
	for _, id := range s.order {
		line := s.lines[id]
		subtotal = subtotal.Add(line.Subtotal())
		tax = tax.Add(line.Tax())
	}
	s.runningTotal = subtotal.Add(tax)
	s.totalTax = tax
}

// Line returns the line for the given item identifier, or a
// *LineNotFoundError when the sale holds no such line.
func (s *Sale) Line(itemID string) (Line, error) {
	line, ok := s.lines[itemID]
	if !ok {
		return Line{}, &LineNotFoundError{ItemID: itemID}
	}
	return line, nil
}

// Lines returns the sale's line items in first-insertion order. The returned
// slice is a copy.
func (s *Sale) Lines() []Line {
	result := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.lines[id])
	}
	return result
}

// RunningTotal returns the sum of all line subtotals plus tax, before any
// discount.
func (s *Sale) RunningTotal() money.Amount {
	return s.runningTotal
}

// TotalTax returns the total tax accumulated across all lines.
func (s *Sale) TotalTax() money.Amount {
	return s.totalTax
}

// ApplyOffer replaces the sale's discount with the strategy derived from the
// offer. Offers do not accumulate; the latest one wins.
func (s *Sale) ApplyOffer(offer discount.Offer) {
	s.strategy = discount.FromOffer(offer)
}

// TotalAfterDiscount returns the running total with the active discount
// applied.
func (s *Sale) TotalAfterDiscount() money.Amount {
	return s.strategy.Apply(s.runningTotal)
}

// DiscountDescription describes the active discount for display.
func (s *Sale) DiscountDescription() string {
	return s.strategy.Description()
}

// Snapshot is a read-only projection of a sale for external collaborators:
// the discount service, the accounting sink, and the inventory-update sink.
type Snapshot struct {
	ID                 string
	CustomerID         int
	CreatedAt          time.Time
	Lines              []Line
	RunningTotal       money.Amount
	TotalTax           money.Amount
	TotalAfterDiscount money.Amount
}

// Snapshot returns a deep copy of the sale's observable state. The returned
// value shares no mutable structure with the sale.
func (s *Sale) Snapshot() Snapshot {
	return Snapshot{
		ID:                 s.id,
		CustomerID:         s.customerID,
		CreatedAt:          s.createdAt,
		Lines:              s.Lines(),
		RunningTotal:       s.runningTotal,
		TotalTax:           s.totalTax,
		TotalAfterDiscount: s.TotalAfterDiscount(),
	}
}
