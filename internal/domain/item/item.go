// Package item defines the catalog record and the inventory contract the
// sales engine consumes.
package item

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storekit/pos-engine/internal/domain/money"
)

// Item represents a catalog record: what the store knows about one sellable
// article. Items are passed by value so a captured record is never affected
// by later catalog mutation.
type Item struct {
	ID          string
	Name        string
	Description string
	TaxRate     decimal.Decimal
	Price       money.Amount
}

// NotFoundError indicates the requested item identifier does not exist in
// the catalog.
type NotFoundError struct {
	ItemID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ItemID)
}

// FriendlyMessage returns a user-facing description of the failure.
func (e *NotFoundError) FriendlyMessage() string {
	return fmt.Sprintf("Item with ID %s was not found in the inventory", e.ItemID)
}

// UnavailableError indicates the backing inventory store could not be
// reached. Op names the failing operation for diagnostics; the friendly
// message is suitable for direct display to a cashier.
type UnavailableError struct {
	Op string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("inventory operation failed: %s: store unavailable", e.Op)
}

// FriendlyMessage returns a user-facing description of the failure.
func (e *UnavailableError) FriendlyMessage() string {
	return "The system is temporarily unavailable. Please try again later or contact assistance"
}

// Repository defines the inventory operations the sales engine consumes.
// Find reports misses with *NotFoundError and outages with *UnavailableError,
// never with a sentinel value.
type Repository interface {
	Find(ctx context.Context, itemID string) (Item, error)
}
