package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storekit/pos-engine/internal/domain/discount"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/domain/sale"
)

const findDiscountRuleSQL = `SELECT amount, percentage, label
	FROM discount_rules
	WHERE $1 >= customer_from AND $1 < customer_to AND active = TRUE
	ORDER BY customer_from
	LIMIT 1`

// DiscountRepository resolves discount offers from customer-ID range rules
// stored in PostgreSQL.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

// NewDiscountRepository returns a DiscountRepository that uses the given pool.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// FindOffer returns the offer for the matching customer-ID range, or the
// no-discount offer when no rule matches. A customer without a rule is not
// an error.
func (r *DiscountRepository) FindOffer(ctx context.Context, customerID int, _ sale.Snapshot) (discount.Offer, error) {
	rows, err := r.pool.Query(ctx, findDiscountRuleSQL, customerID)
	if err != nil {
		return discount.Offer{}, fmt.Errorf("finding discount for customer %d: %w", customerID, err)
	}

	offer, err := pgx.CollectExactlyOneRow(rows, scanOffer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return discount.NoOffer(), nil
		}
		return discount.Offer{}, fmt.Errorf("finding discount for customer %d: %w", customerID, err)
	}
	return offer, nil
}

func scanOffer(row pgx.CollectableRow) (discount.Offer, error) {
	var (
		offer      discount.Offer
		amount     decimal.Decimal
		percentage int32
	)
	err := row.Scan(&amount, &percentage, &offer.Label)
	offer.Amount = money.New(amount)
	offer.Percentage = int(percentage)
	return offer, err
}
