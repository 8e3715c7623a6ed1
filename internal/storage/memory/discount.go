package memory

import (
	"context"

	"github.com/storekit/pos-engine/internal/domain/discount"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/domain/sale"
)

// DiscountLookup resolves offers from fixed customer-ID ranges. It stands in
// for an external discount service; the ranges mirror the store's demo
// campaign setup.
type DiscountLookup struct{}

// NewDiscountLookup creates a DiscountLookup.
func NewDiscountLookup() *DiscountLookup {
	return &DiscountLookup{}
}

// FindOffer returns the offer for the customer's ID range. Customers outside
// every range get the no-discount offer; the lookup never fails.
func (l *DiscountLookup) FindOffer(_ context.Context, customerID int, _ sale.Snapshot) (discount.Offer, error) {
	switch {
	case customerID >= 10000 && customerID < 20000:
		return discount.Offer{
			Amount:     money.Zero(),
			Percentage: 10,
			Label:      "Percentage Discount",
		}, nil
	case customerID >= 20000 && customerID < 30000:
		return discount.Offer{
			Amount:     money.FromInt(50),
			Percentage: 0,
			Label:      "Fixed Discount",
		}, nil
	case customerID >= 30000 && customerID < 40000:
		return discount.Offer{
			Amount:     money.FromInt(25),
			Percentage: 5,
			Label:      "Premium Discount",
		}, nil
	default:
		return discount.NoOffer(), nil
	}
}
