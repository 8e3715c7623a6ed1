// Package app wires the register session together and runs the demo sale.
package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storekit/pos-engine/internal/accounting"
	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/pos"
	"github.com/storekit/pos-engine/internal/register"
	"github.com/storekit/pos-engine/internal/storage/memory"
	"github.com/storekit/pos-engine/internal/storage/postgres"
	"github.com/storekit/pos-engine/internal/view"
)

// Run creates all dependencies and executes one scripted sale. It is the
// single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	// Inventory and discount collaborators: PostgreSQL when configured,
	// the seeded in-memory catalog otherwise.
	var (
		inventory item.Repository
		discounts pos.DiscountLookup
		stock     pos.InventoryUpdater
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		repo := postgres.NewItemRepository(pool)
		inventory = repo
		stock = repo
		discounts = postgres.NewDiscountRepository(pool)
		lg.Info("Using PostgreSQL catalog")
	} else {
		inv := seededInventory()
		inventory = inv
		stock = inv
		discounts = memory.NewDiscountLookup()
		lg.Info("Using in-memory catalog")
	}

	// Cash register with revenue observers: console view plus append-only
	// JSON-lines log.
	cash := register.New()
	cash.Subscribe(view.NewRevenueView(os.Stdout))

	revenueLog, err := view.OpenRevenueLog(cfg.RevenueLog)
	if err != nil {
		return errors.Wrap(err, "open revenue log")
	}
	defer func() {
		if err := revenueLog.Close(); err != nil {
			lg.Warn("Close revenue log", zap.Error(err))
		}
	}()
	cash.Subscribe(revenueLog)

	coordinator := pos.NewCoordinator(
		inventory,
		discounts,
		cash,
		accounting.NewService(lg),
		stock,
		view.NewReceiptPrinter(os.Stdout),
		lg,
	)

	display := view.NewDisplay(os.Stdout)
	return runDemoSale(ctx, coordinator, display, cfg)
}

// seededInventory returns the in-memory catalog used when no database is
// configured.
func seededInventory() *memory.Inventory {
	inv := memory.NewInventory()
	inv.Add(item.Item{
		ID:          "A1",
		Name:        "Steak",
		Description: "Japanese Wagyu 250g",
		TaxRate:     decimal.RequireFromString("0.25"),
		Price:       money.RequireFromString("799.00"),
	}, 100)
	inv.Add(item.Item{
		ID:          "ABC123",
		Name:        "Eggs",
		Description: "12-Pack Eggs",
		TaxRate:     decimal.RequireFromString("0.12"),
		Price:       money.RequireFromString("129.90"),
	}, 100)
	inv.Add(item.Item{
		ID:          "H2O",
		Name:        "Water",
		Description: "1 Liter",
		TaxRate:     decimal.RequireFromString("0.06"),
		Price:       money.RequireFromString("19.50"),
	}, 100)
	return inv
}
