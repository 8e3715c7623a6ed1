package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storekit/pos-engine/internal/domain/money"
)

func m(v string) money.Amount {
	return money.RequireFromString(v)
}

func TestFromOffer(t *testing.T) {
	tests := []struct {
		name       string
		offer      Offer
		amount     money.Amount
		wantResult money.Amount
		wantDesc   string
	}{
		{
			name:       "no offer is identity",
			offer:      NoOffer(),
			amount:     m("100"),
			wantResult: m("100"),
			wantDesc:   "No discount",
		},
		{
			name:       "percentage only",
			offer:      Offer{Amount: money.Zero(), Percentage: 15, Label: "loyal"},
			amount:     m("100"),
			wantResult: m("85"),
			wantDesc:   "15% discount",
		},
		{
			name:       "fixed only",
			offer:      Offer{Amount: m("20"), Percentage: 0, Label: "coupon"},
			amount:     m("100"),
			wantResult: m("80"),
			wantDesc:   "Fixed discount of 20",
		},
		{
			name:       "combined applies percentage then fixed",
			offer:      Offer{Amount: m("10"), Percentage: 10, Label: "premium"},
			amount:     m("100"),
			wantResult: m("80"), // 100 - 10% = 90, then -10 = 80
			wantDesc:   "Combined discount: 10% discount and Fixed discount of 10",
		},
		{
			name:       "fixed larger than amount clamps to zero",
			offer:      Offer{Amount: m("500"), Percentage: 0, Label: "huge"},
			amount:     m("100"),
			wantResult: m("0"),
			wantDesc:   "Fixed discount of 500",
		},
		{
			name:       "combined fixed stage clamps after percentage stage",
			offer:      Offer{Amount: m("95"), Percentage: 10, Label: "huge"},
			amount:     m("100"),
			wantResult: m("0"), // 90 after percentage, fixed 95 > 90
		},
		{
			name:       "hundred percent yields zero",
			offer:      Offer{Amount: money.Zero(), Percentage: 100, Label: "free"},
			amount:     m("42.50"),
			wantResult: m("0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := FromOffer(tt.offer)
			got := strategy.Apply(tt.amount)

			assert.True(t, tt.wantResult.Equal(got),
				"expected %s, got %s", tt.wantResult, got)
			if tt.wantDesc != "" {
				assert.Equal(t, tt.wantDesc, strategy.Description())
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	amount := m("100")
	strategy := FromOffer(Offer{Amount: m("30"), Percentage: 25, Label: "premium"})

	_ = strategy.Apply(amount)

	assert.True(t, m("100").Equal(amount))
}

func TestOfferApplicable(t *testing.T) {
	assert.False(t, NoOffer().Applicable())
	assert.True(t, Offer{Amount: m("1")}.Applicable())
	assert.True(t, Offer{Percentage: 1}.Applicable())
	assert.False(t, Offer{Label: "nothing"}.Applicable())
}
