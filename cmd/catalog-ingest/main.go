// Command catalog-ingest loads gzipped CSV catalog feeds into the items
// table. Feed files are parsed concurrently; a bloom filter pre-screens
// item IDs so duplicate records across feeds are resolved cheaply before
// hitting the map, with the last feed winning.
//
// Feed line format: id,name,description,tax_rate,price,stock
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/storekit/pos-engine/internal/storage/postgres"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
	progressEvery = 100_000
	batchSize     = 500
)

const upsertItemSQL = `INSERT INTO items (id, name, description, tax_rate, price, stock)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		tax_rate = EXCLUDED.tax_rate,
		price = EXCLUDED.price,
		stock = EXCLUDED.stock`

// record is one parsed catalog row.
type record struct {
	id          string
	name        string
	description string
	taxRate     decimal.Decimal
	price       decimal.Decimal
	stock       int
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing catalog*.csv.gz feed files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
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

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "catalog*.csv.gz"))
	if err != nil {
		return errors.Wrap(err, "glob feed files")
	}
	if len(files) == 0 {
		return errors.Errorf("no catalog*.csv.gz files found in %s", dataDir)
	}

	slog.Info("parsing feed files", slog.Int("files", len(files)))

	records, err := parseFeeds(ctx, files)
	if err != nil {
		return errors.Wrap(err, "parse feeds")
	}

	slog.Info("records parsed", slog.Int("count", len(records)))

	if len(records) == 0 {
		slog.Info("no records to insert")
		return nil
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := writeRecords(ctx, pool, records); err != nil {
		return errors.Wrap(err, "write records to database")
	}

	return nil
}

// parseFeeds parses all feed files concurrently, then merges them in file
// order so later feeds override earlier ones for the same item ID.
func parseFeeds(ctx context.Context, files []string) ([]record, error) {
	perFile := make([][]record, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(parseFeedFile(ctx, i, f, perFile))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in file order. The bloom filter answers "definitely new" for
	// most IDs so single-occurrence records skip the map lookup.
	seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	byID := make(map[string]int)

	var merged []record
	for _, recs := range perFile {
		for _, r := range recs {
			if seen.TestString(r.id) {
				if at, ok := byID[r.id]; ok {
					merged[at] = r
					continue
				}
			}
			seen.AddString(r.id)
			byID[r.id] = len(merged)
			merged = append(merged, r)
		}
	}

	return merged, nil
}

func parseFeedFile(ctx context.Context, idx int, path string, perFile [][]record) func() error {
	return func() error {
		var (
			recs  []record
			count uint64
		)

		if err := streamGzFile(ctx, path, func(line string) error {
			if line == "" || strings.HasPrefix(line, "#") {
				return nil
			}

			r, err := parseLine(line)
			if err != nil {
				return err
			}
			recs = append(recs, r)

			count++
			if count%progressEvery == 0 {
				slog.Info("parse progress",
					slog.Int("file", idx+1),
					slog.Uint64("records", count),
				)
			}
			return nil
		}); err != nil {
			return errors.Wrapf(err, "parse feed %s", path)
		}

		slog.Info("feed parsed",
			slog.Int("file", idx+1),
			slog.Uint64("records", count),
		)

		perFile[idx] = recs
		return nil
	}
}

func parseLine(line string) (record, error) {
	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return record{}, errors.Wrap(err, "parse CSV line")
	}
	if len(fields) != 6 {
		return record{}, errors.Errorf("expected 6 fields, got %d", len(fields))
	}

	taxRate, err := decimal.NewFromString(fields[3])
	if err != nil {
		return record{}, errors.Wrapf(err, "parse tax rate for item %s", fields[0])
	}
	price, err := decimal.NewFromString(fields[4])
	if err != nil {
		return record{}, errors.Wrapf(err, "parse price for item %s", fields[0])
	}
	stock, err := strconv.Atoi(fields[5])
	if err != nil {
		return record{}, errors.Wrapf(err, "parse stock for item %s", fields[0])
	}

	return record{
		id:          fields[0],
		name:        fields[1],
		description: fields[2],
		taxRate:     taxRate,
		price:       price,
		stock:       stock,
	}, nil
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
func streamGzFile(ctx context.Context, path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}

// writeRecords upserts all merged catalog records in batches.
func writeRecords(ctx context.Context, pool *pgxpool.Pool, records []record) error {
	slog.Info("writing records to database", slog.Int("count", len(records)))

	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))

		batch := &pgx.Batch{}
		for _, r := range records[start:end] {
			batch.Queue(upsertItemSQL, r.id, r.name, r.description, r.taxRate, r.price, r.stock)
		}

		if err := pool.SendBatch(ctx, batch).Close(); err != nil {
			return errors.Wrapf(err, "write batch at offset %d", start)
		}

		slog.Info("write progress", slog.Int("written", end), slog.Int("total", len(records)))
	}

	return nil
}
