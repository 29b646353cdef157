// Command report runs the SQL in REPORT_QUERY_FILE against the fixture store
// and prints the result as an aligned table.
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
	"github.com/JonMunkholm/shopfixtures/internal/database"
	"github.com/JonMunkholm/shopfixtures/internal/logging"
	"github.com/JonMunkholm/shopfixtures/internal/report"
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
	query, err := report.LoadQuery(cfg.Report.QueryFile)
	if err != nil {
		return err
	}

	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Report.Timeout)
	defer cancel()

	if err := report.Ready(ctx, pool); err != nil {
		return err
	}

	res, err := report.Fetch(ctx, pool, query)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("report fetched", "columns", len(res.Columns), "rows", len(res.Rows))

	return report.Render(out, res)
}

func fail(err error) {
	printFailure(os.Stdout, err)
	os.Exit(1)
}

// printFailure writes the error and its coded user message.
func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "report failed: %v\n%s\n", err, core.FormatUserError(err))
}
