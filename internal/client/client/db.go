package client

import (
	"context"
	"database/sql"
	"log"

	"github.com/dmitrijs2005/shaketracker/internal/client/migrations"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/counters"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/overlay"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/shakes"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Repositories bundles the local persistence layer handed to the services.
type Repositories struct {
	Credentials credentials.Repository
	Overlay     overlay.Repository
	Counters    counters.Repository
	Shakes      shakes.Repository
	DB          *sql.DB
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local sqlite database at dsn,
// applies migrations and wires up the repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	repos := &Repositories{
		Credentials: credentials.NewSQLiteRepository(db),
		Overlay:     overlay.NewSQLiteRepository(db),
		Counters:    counters.NewSQLiteRepository(db),
		Shakes:      shakes.NewSQLiteRepository(db),
		DB:          db,
	}
	return repos, nil
}
