package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/domain/sale"
)

const (
	findItemSQL = `SELECT id, name, description, tax_rate, price
		FROM items WHERE id = $1`

	decrementStockSQL = `UPDATE items
		SET stock = GREATEST(stock - $2, 0) WHERE id = $1`
)

var _ item.Repository = (*ItemRepository)(nil)

// ItemRepository implements item.Repository backed by PostgreSQL. It also
// serves as the inventory-update sink for completed sales.
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns an ItemRepository that uses the given pool.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// Find returns the catalog record for the given identifier. Unknown
// identifiers yield *item.NotFoundError; connection failures yield
// *item.UnavailableError.
func (r *ItemRepository) Find(ctx context.Context, itemID string) (item.Item, error) {
	rows, err := r.pool.Query(ctx, findItemSQL, itemID)
	if err != nil {
		return item.Item{}, &item.UnavailableError{Op: "find item"}
	}

	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item.Item{}, &item.NotFoundError{ItemID: itemID}
		}
		return item.Item{}, fmt.Errorf("finding item %q: %w", itemID, err)
	}
	return it, nil
}

// ApplySale decrements the stock counts for every line of a completed sale.
// Stock never goes below zero.
func (r *ItemRepository) ApplySale(ctx context.Context, info sale.Snapshot) error {
	batch := &pgx.Batch{}
	for _, line := range info.Lines {
		batch.Queue(decrementStockSQL, line.Item.ID, line.Quantity)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range info.Lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("updating stock for sale %q: %w", info.ID, err)
		}
	}
	return nil
}

func scanItem(row pgx.CollectableRow) (item.Item, error) {
	var (
		it      item.Item
		taxRate decimal.Decimal
		price   decimal.Decimal
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &taxRate, &price)
	it.TaxRate = taxRate
	it.Price = money.New(price)
	return it, err
}
