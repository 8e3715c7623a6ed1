package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storekit/pos-engine/internal/storage/postgres"
)

type itemJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type discountRule struct {
	customerFrom int
	customerTo   int
	amount       decimal.Decimal
	percentage   int
	label        string
}

const (
	upsertItemSQL = `INSERT INTO items (id, name, description, tax_rate, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			tax_rate = EXCLUDED.tax_rate,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock`

	upsertRuleSQL = `INSERT INTO discount_rules (customer_from, customer_to, amount, percentage, label, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT DO NOTHING`
)

func main() {
	var (
		databaseURL string
		itemsFile   string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&itemsFile, "items-file", "db/seed/items.json", "path to items JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, itemsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, itemsFile string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedItems(ctx, pool, itemsFile); err != nil {
		return errors.Wrap(err, "seed items")
	}
	if err := seedDiscountRules(ctx, pool); err != nil {
		return errors.Wrap(err, "seed discount rules")
	}
	return nil
}

func seedItems(ctx context.Context, pool *pgxpool.Pool, itemsFile string) error {
	slog.Info("reading items file", slog.String("path", itemsFile))

	data, err := os.ReadFile(itemsFile)
	if err != nil {
		return errors.Wrap(err, "read items file")
	}

	var items []itemJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "parse items JSON")
	}

	slog.Info("upserting items", slog.Int("count", len(items)))

	for _, it := range items {
		_, err := pool.Exec(ctx, upsertItemSQL,
			it.ID, it.Name, it.Description, it.TaxRate, it.Price, it.Stock)
		if err != nil {
			return errors.Wrapf(err, "upsert item %s", it.ID)
		}

		slog.Info("upserted item", slog.String("id", it.ID), slog.String("name", it.Name))
	}
	return nil
}

func seedDiscountRules(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("seeding discount rules")

	rules := []discountRule{
		{customerFrom: 10000, customerTo: 20000, amount: decimal.Zero, percentage: 10, label: "Percentage Discount"},
		{customerFrom: 20000, customerTo: 30000, amount: decimal.NewFromInt(50), percentage: 0, label: "Fixed Discount"},
		{customerFrom: 30000, customerTo: 40000, amount: decimal.NewFromInt(25), percentage: 5, label: "Premium Discount"},
	}

	for _, r := range rules {
		_, err := pool.Exec(ctx, upsertRuleSQL,
			r.customerFrom, r.customerTo, r.amount, r.percentage, r.label)
		if err != nil {
			return errors.Wrapf(err, "upsert rule %s", r.label)
		}

		slog.Info("upserted rule", slog.String("label", r.label))
	}
	return nil
}
