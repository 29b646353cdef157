// Command generate writes a deterministic e-commerce fixture dataset as CSV
// files: customers, products, orders, order items and payments.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/shopfixtures/internal/config"
	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/fixtures"
	"github.com/JonMunkholm/shopfixtures/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		fail(err)
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	now, err := cfg.Generator.ReferenceTime()
	if err != nil {
		return fmt.Errorf("reference time: %w", err)
	}

	genCfg := fixtures.DefaultConfig()
	genCfg.Seed = cfg.Generator.Seed
	genCfg.Customers = cfg.Generator.Customers
	genCfg.Products = cfg.Generator.Products
	genCfg.Orders = cfg.Generator.Orders
	genCfg.OrderItems = cfg.Generator.OrderItems

	logger := logging.WithFields(ctx, "seed", genCfg.Seed, "dir", cfg.Data.Dir)
	logger.Debug("generating dataset", "now", now)

	ds, err := fixtures.NewGenerator(genCfg, now).Generate()
	if err != nil {
		return err
	}
	if err := fixtures.Validate(ds); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fixtures.WriteCSV(cfg.Data.Dir, ds); err != nil {
		return err
	}

	logger.Info("dataset written",
		"customers", len(ds.Customers),
		"products", len(ds.Products),
		"orders", len(ds.Orders),
		"order_items", len(ds.OrderItems),
		"payments", len(ds.Payments),
	)
	fmt.Fprintf(out, "Generated %d customers, %d products, %d orders, %d order items and %d payments in %s\n",
		len(ds.Customers), len(ds.Products), len(ds.Orders), len(ds.OrderItems), len(ds.Payments), cfg.Data.Dir)
	return nil
}

func fail(err error) {
	printFailure(os.Stdout, err)
	os.Exit(1)
}

// printFailure writes the error and its coded user message.
func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "generate failed: %v\n%s\n", err, core.FormatUserError(err))
}
