// Package discount holds customer discount offers and the pricing strategies
// derived from them.
package discount

import (
	"github.com/storekit/pos-engine/internal/domain/money"
)

// Offer carries the discount terms supplied by the discount service for a
// customer and sale. A zero fixed amount combined with a zero percentage
// means no discount applies.
type Offer struct {
	Amount     money.Amount
	Percentage int
	Label      string
}

// NoOffer returns the offer that grants no discount.
func NoOffer() Offer {
	return Offer{Amount: money.Zero(), Percentage: 0, Label: "none"}
}

// Applicable reports whether this offer grants any discount at all.
func (o Offer) Applicable() bool {
	return o.Amount.GreaterThan(money.Zero()) || o.Percentage > 0
}
