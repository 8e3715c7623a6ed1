package sale

import (
	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
)

// Line is one catalog item plus quantity within a sale. Lines are immutable;
// a quantity change replaces the line rather than mutating it.
type Line struct {
	Item     item.Item
	Quantity int
}

// Subtotal returns price times quantity, excluding tax.
func (l Line) Subtotal() money.Amount {
	return l.Item.Price.MulInt(l.Quantity)
}

// Tax returns the tax portion for this line: price times tax rate times
// quantity.
func (l Line) Tax() money.Amount {
	return l.Item.Price.Mul(l.Item.TaxRate).MulInt(l.Quantity)
}
