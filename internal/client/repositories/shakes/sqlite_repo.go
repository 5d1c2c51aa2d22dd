package shakes

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/dbx"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// SQLiteRepository stores shake timestamps as unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, s *models.Shake) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shakes (id, ts, reward, synced) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, s.ID, s.Timestamp.UnixMilli(), s.Reward, s.Synced)
	if err != nil {
		return fmt.Errorf("failed to insert shake: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.Shake, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts, reward, synced FROM shakes ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select shakes: %w", err)
	}
	defer rows.Close()

	var result []models.Shake
	for rows.Next() {
		var (
			item models.Shake
			ms   int64
		)
		if err := rows.Scan(&item.ID, &ms, &item.Reward, &item.Synced); err != nil {
			return nil, fmt.Errorf("failed to scan shake row: %w", err)
		}
		item.Timestamp = time.UnixMilli(ms)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shake rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) CountByDate(ctx context.Context, dateKey string) (int, error) {
	day, err := time.ParseInLocation(timex.DateKeyLayout, dateKey, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	start := day.UnixMilli()
	end := day.AddDate(0, 0, 1).UnixMilli()

	var n int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shakes WHERE ts >= ? AND ts < ?`, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count shakes: %w", err)
	}
	return n, nil
}
