// Command bookstore-mas runs the discrete-time bookstore simulation:
// customers purchase books, employees restock low inventory, and the
// low-stock classifier reports books needing attention at the end.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"       // postgres driver for the sql/sqlx journal paths
	_ "modernc.org/sqlite"      // pure Go sqlite driver for the local journal path

	"github.com/bookwerk/bookstore-mas/classifier"
	"github.com/bookwerk/bookstore-mas/config"
	"github.com/bookwerk/bookstore-mas/journal"
	"github.com/bookwerk/bookstore-mas/observability"
	"github.com/bookwerk/bookstore-mas/ontology"
	"github.com/bookwerk/bookstore-mas/simulation"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()

	steps := flag.Int("steps", cfg.Sim.Steps, "number of simulation steps to run")
	flag.Parse()

	logger := buildLogger(cfg.Log)

	store := ontology.NewStore()
	if err := ontology.CreateSampleData(store); err != nil {
		return fmt.Errorf("seeding sample data failed: %w", err)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	lowStock := classifier.New(store, cfg.Sim.RestockThreshold,
		classifier.WithEngine(classifier.NewThresholdRuleEngine()),
		classifier.WithLogger(logger),
	)

	options := []simulation.Option{
		simulation.WithRestockThreshold(cfg.Sim.RestockThreshold),
		simulation.WithRestockAmount(cfg.Sim.RestockAmount),
		simulation.WithRandSource(rand.New(rand.NewSource(seed))), //nolint:gosec // weak random OK for simulation
		simulation.WithLogger(logger),
		simulation.WithLowStockReporter(lowStock),
	}

	if cfg.Journal.Enabled {
		eventJournal, cleanup, journalErr := openJournal(ctx, cfg.Journal, logger)
		if journalErr != nil {
			return fmt.Errorf("opening event journal failed: %w", journalErr)
		}
		defer cleanup()

		if schemaErr := eventJournal.EnsureSchema(ctx); schemaErr != nil {
			return schemaErr
		}

		options = append(options, simulation.WithEventSink(journal.NewSink(eventJournal)))
	}

	model, err := simulation.NewModel(store, options...)
	if err != nil {
		return err
	}

	if err := model.Run(ctx, *steps); err != nil {
		return err
	}

	printPurchaseSummary(store)

	return nil
}

func buildLogger(cfg config.LogConfig) *observability.SlogLogger {
	if cfg.OTelBridge {
		return observability.NewSlogBridgeLogger("bookstore-mas")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	return observability.NewTextLogger(os.Stdout, level)
}

func openJournal(ctx context.Context, cfg config.JournalConfig, logger *observability.SlogLogger) (journal.Journal, func(), error) {
	options := []journal.Option{
		journal.WithTableName(cfg.Table),
		journal.WithLogger(logger),
		journal.WithContextualLogger(logger),
	}

	switch cfg.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return journal.Journal{}, nil, err
		}

		db, err := sql.Open("sqlite", cfg.Path)
		if err != nil {
			return journal.Journal{}, nil, err
		}

		j, buildErr := journal.NewFromSQLDB(db, journal.DialectSQLite, options...)
		if buildErr != nil {
			_ = db.Close()
			return journal.Journal{}, nil, buildErr
		}

		return j, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return journal.Journal{}, nil, err
		}

		j, buildErr := journal.NewFromSQLDB(db, journal.DialectPostgres, options...)
		if buildErr != nil {
			_ = db.Close()
			return journal.Journal{}, nil, buildErr
		}

		return j, func() { _ = db.Close() }, nil

	case "sqlx":
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
		if err != nil {
			return journal.Journal{}, nil, err
		}

		j, buildErr := journal.NewFromSQLX(db, options...)
		if buildErr != nil {
			_ = db.Close()
			return journal.Journal{}, nil, buildErr
		}

		return j, func() { _ = db.Close() }, nil

	case "pgx":
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return journal.Journal{}, nil, err
		}

		if pingErr := pool.Ping(ctx); pingErr != nil {
			pool.Close()
			return journal.Journal{}, nil, pingErr
		}

		j, buildErr := journal.NewFromPGXPool(pool, options...)
		if buildErr != nil {
			pool.Close()
			return journal.Journal{}, nil, buildErr
		}

		return j, pool.Close, nil
	}

	return journal.Journal{}, nil, fmt.Errorf("unknown journal driver %q", cfg.Driver)
}

func printPurchaseSummary(store *ontology.Store) {
	orders := store.Orders()

	var revenue float64
	purchasesByCustomer := make(map[string]int)

	customerNames := make(map[string]string)
	for _, customer := range store.Customers() {
		customerNames[customer.ID.String()] = customer.HasName()
	}

	for _, order := range orders {
		revenue += order.UnitPrice * float64(order.Quantity)
		purchasesByCustomer[customerNames[order.CustomerID.String()]] += order.Quantity
	}

	fmt.Printf("\nPurchase summary: %d orders, %.2f total revenue\n", len(orders), revenue)

	for _, customer := range store.Customers() {
		fmt.Printf("- %s: %d purchases\n", customer.HasName(), purchasesByCustomer[customer.HasName()])
	}

	fmt.Println("\nFinal inventory:")
	for _, book := range store.Books() {
		fmt.Printf("- %s: qty=%d\n", book.DisplayTitle(), book.AvailableQuantity)
	}
}
