package counters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/dbx"
)

// SQLiteRepository keeps both singleton rows (id = 1) upserted in place.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Window(ctx context.Context) (models.QuotaWindow, error) {
	var w models.QuotaWindow
	err := r.db.QueryRowContext(ctx,
		`SELECT date_key, count FROM quota_window WHERE id = 1`).Scan(&w.DateKey, &w.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuotaWindow{}, nil
	}
	if err != nil {
		return models.QuotaWindow{}, fmt.Errorf("failed to read quota window: %w", err)
	}
	return w, nil
}

func (r *SQLiteRepository) SetWindow(ctx context.Context, w models.QuotaWindow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quota_window (id, date_key, count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date_key = excluded.date_key, count = excluded.count
	`, w.DateKey, w.Count)
	if err != nil {
		return fmt.Errorf("failed to store quota window: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Fallback(ctx context.Context) (models.FallbackCounters, error) {
	var f models.FallbackCounters
	err := r.db.QueryRowContext(ctx,
		`SELECT daily, date_key, total FROM fallback_counters WHERE id = 1`).Scan(&f.Daily, &f.DateKey, &f.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FallbackCounters{}, nil
	}
	if err != nil {
		return models.FallbackCounters{}, fmt.Errorf("failed to read fallback counters: %w", err)
	}
	return f, nil
}

func (r *SQLiteRepository) SetFallback(ctx context.Context, f models.FallbackCounters) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fallback_counters (id, daily, date_key, total) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET daily = excluded.daily, date_key = excluded.date_key, total = excluded.total
	`, f.Daily, f.DateKey, f.Total)
	if err != nil {
		return fmt.Errorf("failed to store fallback counters: %w", err)
	}
	return nil
}
