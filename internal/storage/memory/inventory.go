// Package memory provides in-memory implementations of the external
// collaborators, used by the demo binary and by tests.
package memory

import (
	"context"
	"sync"

	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/sale"
)

// UnavailableTriggerID is a reserved item identifier that simulates an
// unreachable inventory store, for exercising the error path end to end.
const UnavailableTriggerID = "DB-ERROR-999"

// Inventory is an in-memory item catalog with per-item stock counts.
type Inventory struct {
	mu    sync.RWMutex
	items map[string]item.Item
	stock map[string]int
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		items: make(map[string]item.Item),
		stock: make(map[string]int),
	}
}

// Add puts an item into the catalog with the given stock count, replacing
// any existing entry.
func (inv *Inventory) Add(it item.Item, stock int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.items[it.ID] = it
	inv.stock[it.ID] = stock
}

// Find returns the catalog record for the given identifier. Unknown
// identifiers yield *item.NotFoundError; the reserved trigger identifier
// yields *item.UnavailableError.
func (inv *Inventory) Find(_ context.Context, itemID string) (item.Item, error) {
	if itemID == UnavailableTriggerID {
		return item.Item{}, &item.UnavailableError{Op: "find item"}
	}

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	it, ok := inv.items[itemID]
	if !ok {
		return item.Item{}, &item.NotFoundError{ItemID: itemID}
	}
	return it, nil
}

// ApplySale decrements stock counts by the quantities sold. Stock never
// goes below zero.
func (inv *Inventory) ApplySale(_ context.Context, info sale.Snapshot) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for _, line := range info.Lines {
		remaining := inv.stock[line.Item.ID] - line.Quantity
		if remaining < 0 {
			remaining = 0
		}
		inv.stock[line.Item.ID] = remaining
	}
	return nil
}

// Stock returns the remaining stock for an item, or 0 when unknown.
func (inv *Inventory) Stock(itemID string) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.stock[itemID]
}
