package discount

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storekit/pos-engine/internal/domain/money"
)

var hundred = decimal.NewFromInt(100)

// Strategy is a pure discount computation derived from an Offer. Apply never
// mutates its argument and never returns a negative amount.
type Strategy interface {
	Apply(amount money.Amount) money.Amount
	Description() string
}

// FromOffer derives the strategy for an offer. The derivation is the single
// place where strategy selection happens:
//
//	neither amount nor percentage  -> None
//	percentage only                -> Percentage
//	fixed amount only              -> Fixed
//	both                           -> Combined, percentage first then fixed
func FromOffer(offer Offer) Strategy {
	if !offer.Applicable() {
		return None{}
	}

	hasFixed := offer.Amount.GreaterThan(money.Zero())
	hasPercentage := offer.Percentage > 0

	switch {
	case hasPercentage && hasFixed:
		return Combined{
			First:  Percentage{Percent: offer.Percentage},
			Second: Fixed{Amount: offer.Amount},
		}
	case hasPercentage:
		return Percentage{Percent: offer.Percentage}
	default:
		return Fixed{Amount: offer.Amount}
	}
}

// None applies no discount.
type None struct{}

// Apply returns the amount unchanged.
func (None) Apply(amount money.Amount) money.Amount {
	return amount
}

// Description implements Strategy.
func (None) Description() string {
	return "No discount"
}

// Percentage removes a percentage of the amount.
type Percentage struct {
	Percent int
}

// Apply subtracts Percent percent of the amount.
func (p Percentage) Apply(amount money.Amount) money.Amount {
	rate := decimal.NewFromInt(int64(p.Percent)).Div(hundred)
	return amount.Sub(amount.Mul(rate))
}

// Description implements Strategy.
func (p Percentage) Description() string {
	return fmt.Sprintf("%d%% discount", p.Percent)
}

// Fixed removes a fixed amount, clamping the result at zero.
type Fixed struct {
	Amount money.Amount
}

// Apply subtracts the fixed amount. A discount larger than the amount yields
// zero rather than a negative result.
func (f Fixed) Apply(amount money.Amount) money.Amount {
	if f.Amount.GreaterThan(amount) {
		return money.Zero()
	}
	return amount.Sub(f.Amount)
}

// Description implements Strategy.
func (f Fixed) Description() string {
	return "Fixed discount of " + f.Amount.String()
}

// Combined applies First and then Second to its result. Each stage keeps its
// own zero clamp.
type Combined struct {
	First  Strategy
	Second Strategy
}

// Apply runs both strategies in order.
func (c Combined) Apply(amount money.Amount) money.Amount {
	return c.Second.Apply(c.First.Apply(amount))
}

// Description implements Strategy.
func (c Combined) Description() string {
	return "Combined discount: " + c.First.Description() + " and " + c.Second.Description()
}
