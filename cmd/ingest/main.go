// Command ingest replaces the contents of the fixture tables with the CSV
// files in DATA_DIR, in a single transaction.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/shopfixtures/internal/config"
	"github.com/JonMunkholm/shopfixtures/internal/core"
	_ "github.com/JonMunkholm/shopfixtures/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/shopfixtures/internal/database"
	"github.com/JonMunkholm/shopfixtures/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	reset := flag.Bool("reset", false, "delete all fixture rows instead of loading")
	dir := flag.String("dir", "", "source directory (overrides DATA_DIR)")
	flag.Parse()

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if *dir != "" {
		cfg.Data.Dir = *dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *reset, os.Stdout)
	stop()
	if err != nil {
		fail(err)
	}
}

func run(ctx context.Context, cfg *config.Config, reset bool, out io.Writer) error {
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := core.NewService(pool)

	ctx, cancel := context.WithTimeout(ctx, core.LoadTimeout)
	defer cancel()

	if reset {
		if err := service.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Fixture tables emptied.")
		return nil
	}

	result, err := service.Load(ctx, cfg.Data.Dir)
	if err != nil {
		return err
	}

	for _, t := range result.Tables {
		fmt.Fprintf(out, "  %-12s %d rows\n", t.Table, t.Rows)
	}
	fmt.Fprintf(out, "Loaded %d rows from %s into %d tables (load %s).\n",
		result.TotalRows(), result.Dir, len(result.Tables), result.LoadID)
	return nil
}

func fail(err error) {
	printFailure(os.Stdout, err)
	os.Exit(1)
}

// printFailure writes the error and its coded user message.
func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "ingest failed: %v\n%s\n", err, core.FormatUserError(err))
}
