// Command import-records loads a JSONL export of liked tweets into a SQL
// record store that the server can then read with RECORD_SOURCE_DRIVER.
//
// Usage:
//
//	import-records -source tweets.jsonl -driver sqlite -dsn ./tweets.db
//	import-records -source https://example.com/tweets.jsonl -driver mysql -dsn 'user:pass@tcp(host)/db'
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jbeshir/xlike-feed/internal/app"
	"github.com/jbeshir/xlike-feed/internal/command"
	"github.com/jbeshir/xlike-feed/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	source := flag.String("source", "", "JSONL file path or http(s) URL (default $RECORDS_JSONL_LOCATION)")
	driver := flag.String("driver", app.DriverSQLite, "destination store: sqlite or mysql")
	dsn := flag.String("dsn", "", "destination SQLite path or MySQL DSN (default $SQLITE_PATH or $MYSQL_URI)")
	flag.Parse()

	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	if err := run(ctx, *source, *driver, *dsn); err != nil {
		logger.ErrorContext(ctx, "record import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, source, driver, dsn string) error {
	records, err := app.SetupRecordSource(ctx, app.DriverJSONL, source)
	if err != nil {
		return fmt.Errorf("setting up JSONL source: %w", err)
	}

	sink, err := app.SetupRecordSink(ctx, driver, dsn)
	if err != nil {
		return fmt.Errorf("setting up %s sink: %w", driver, err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			domain.LoggerFromContext(ctx).WarnContext(ctx, "unable to close record sink", "error", err)
		}
	}()

	res, err := command.NewImportRecords(records, sink).Execute(ctx, command.Empty{})
	if err != nil {
		return err
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "record import completed", "imported", res.Imported, "driver", driver)
	return nil
}
