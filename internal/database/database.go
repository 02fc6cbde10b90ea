package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/swiss-ledger/migrations"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// ErrStoreConnection is returned when the store cannot be opened, reached or migrated.
var ErrStoreConnection = errors.New("store connection failed")

// InitDB opens the ledger database and brings its schema up to date.
// An empty primaryUrl opens a local SQLite file at dbPath (":memory:" is allowed);
// otherwise the remote Turso database at primaryUrl is used and dbPath is ignored.
// The returned teardown closes the database.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		// Foreign keys are a per-connection setting in SQLite, so they go in the DSN.
		db, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_txlock=immediate")
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to open local database: %w", ErrStoreConnection, err)
		}
		// A single writer; this also keeps ":memory:" databases on one connection.
		db.SetMaxOpenConns(1)
	} else {
		log.Info("Initializing Turso database", "url", primaryUrl)
		db, err = sql.Open("libsql", primaryUrl+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to open db %s: %w", ErrStoreConnection, primaryUrl, err)
		}
		if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("%w: failed to enable foreign keys: %w", ErrStoreConnection, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%w: failed to reach database: %w", ErrStoreConnection, err)
	}
	if err = migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreConnection, err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

// migrate applies every pending embedded migration.
func migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		log.Debug("Applied migration", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	log.Info("Database initialized successfully", "applied", len(results))
	return nil
}
