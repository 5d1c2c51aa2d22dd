// Package server initializes and runs the shake tracker backend: it opens
// the sqlite database, applies migrations, wires the HTTP API and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/server/config"
	"github.com/dmitrijs2005/shaketracker/internal/server/httpapi"
	"github.com/dmitrijs2005/shaketracker/internal/server/migrations"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/activities"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/feedbacks"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/shakes"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/users"
	"github.com/dmitrijs2005/shaketracker/internal/shared"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  *zap.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("sqlite", c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	secret := c.SecretKey
	if secret == "" {
		// tokens will not survive a restart with a generated secret
		secret, err = shared.MakeRandHexString(32)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		logger.Warn("no secret key configured, generated a random one")
	}

	h := httpapi.NewHandler(
		users.NewSQLiteRepository(db),
		shakes.NewSQLiteRepository(db),
		activities.NewSQLiteRepository(db),
		feedbacks.NewSQLiteRepository(db),
		[]byte(secret),
		c.TokenValidityDuration,
		c.DailyShakeLimit,
		logger,
	)

	return &App{config: c, logger: logger, db: db, handler: httpapi.NewRouter(h)}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: app.handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("shutdown error", zap.Error(err))
		}
	}()

	app.logger.Info("starting server", zap.String("addr", app.config.EndpointAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error("server error", zap.Error(err))
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("db close error", zap.Error(err))
	}
	_ = app.logger.Sync()
}
