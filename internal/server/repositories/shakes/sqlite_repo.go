package shakes

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/dbx"
)

// SQLiteRepository stores shake timestamps as unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, s *Shake) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shakes (id, user_id, ts, reward) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, s.ID, s.UserID, s.Timestamp.UnixMilli(), s.Reward)
	if err != nil {
		return fmt.Errorf("failed to insert shake: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ByUser(ctx context.Context, userID string) ([]Shake, error) {
	return r.query(ctx,
		`SELECT id, user_id, ts, reward FROM shakes WHERE user_id = ? ORDER BY ts DESC`, userID)
}

func (r *SQLiteRepository) ByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Shake, error) {
	return r.query(ctx,
		`SELECT id, user_id, ts, reward FROM shakes WHERE user_id = ? AND ts >= ? AND ts < ? ORDER BY ts DESC`,
		userID, from.UnixMilli(), to.UnixMilli())
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]Shake, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select shakes: %w", err)
	}
	defer rows.Close()

	var result []Shake
	for rows.Next() {
		var (
			item Shake
			ms   int64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &ms, &item.Reward); err != nil {
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

func (r *SQLiteRepository) CountInRange(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shakes WHERE user_id = ? AND ts >= ? AND ts < ?`,
		userID, from.UnixMilli(), to.UnixMilli()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count shakes: %w", err)
	}
	return n, nil
}
