package app

import (
	"context"
	"fmt"
	"io"

	"github.com/jbeshir/xlike-feed/internal/command"
	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/datasources/jsonl"
	"github.com/jbeshir/xlike-feed/internal/datasources/mysql"
	"github.com/jbeshir/xlike-feed/internal/datasources/sqlite"
	"github.com/jbeshir/xlike-feed/internal/datasources/sqlstore"
	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/jbeshir/xlike-feed/internal/transport/web/router"
	"github.com/jbeshir/xlike-feed/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

const (
	DriverJSONL  = "jsonl"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func Setup(ctx context.Context) ([]Component, error) {
	source, err := SetupRecordSource(ctx, MustGetEnvAsString(ctx, "RECORD_SOURCE_DRIVER"), "")
	if err != nil {
		return nil, fmt.Errorf("setting up record source: %w", err)
	}

	var avatars datasources.AvatarSource = datasources.NullAvatarSource{}
	if location := GetEnvAsString("AVATARS_JSONL_LOCATION", ""); location != "" {
		avatars = jsonl.NewAvatarSource(location)
	}

	loaded, err := command.NewLoadDataset(source, avatars).Execute(ctx, command.Empty{})
	if closer, ok := source.(io.Closer); ok {
		if closeErr := closer.Close(); closeErr != nil {
			domain.LoggerFromContext(ctx).WarnContext(ctx, "unable to close record source", "error", closeErr)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	dataset := loaded.Store

	httpRouter, err := router.MakeRouter(
		domain.LoggerFromContext(ctx),
		dataset,
		command.NewBrowseRecords(dataset),
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		GetEnvAsString("RSS_FEED_TITLE", "Liked tweets"),
		MustGetEnvAsDuration(ctx, "CACHE_MAX_AGE"),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	tlsDisabled := MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED")
	srv := &server.Server{
		TLSDisabled: tlsDisabled,
		Router:      httpRouter,
	}
	if tlsDisabled {
		srv.TLSDisabledPort = MustGetEnvAsInt(ctx, "PORT")
	} else {
		srv.AutocertHostnames = MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES")
	}

	return []Component{srv}, nil
}

// SetupRecordSource builds the source for driver. location overrides the
// driver's environment variable when non-empty.
func SetupRecordSource(ctx context.Context, driver, location string) (datasources.RecordSource, error) {
	if driver == DriverJSONL {
		if location == "" {
			location = MustGetEnvAsString(ctx, "RECORDS_JSONL_LOCATION")
		}
		return jsonl.NewSource(location), nil
	}

	repo, err := setupSQLRepository(ctx, driver, location)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// SetupRecordSink builds a SQL sink; JSONL files are read-only. The caller
// closes the returned repository.
func SetupRecordSink(ctx context.Context, driver, location string) (*sqlstore.Repository, error) {
	return setupSQLRepository(ctx, driver, location)
}

func setupSQLRepository(ctx context.Context, driver, location string) (*sqlstore.Repository, error) {
	var repo *sqlstore.Repository
	switch driver {
	case DriverMySQL:
		if location == "" {
			location = MustGetEnvAsString(ctx, "MYSQL_URI")
		}
		db, err := mysql.Connect(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("connecting to MySQL: %w", err)
		}
		repo = mysql.New(db)
	case DriverSQLite:
		if location == "" {
			location = MustGetEnvAsString(ctx, "SQLITE_PATH")
		}
		db, err := sqlite.Open(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("opening SQLite: %w", err)
		}
		repo = sqlite.New(db)
	default:
		return nil, fmt.Errorf("unknown record store driver [%s]", driver)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("ensuring %s schema: %w", driver, err)
	}
	return repo, nil
}
