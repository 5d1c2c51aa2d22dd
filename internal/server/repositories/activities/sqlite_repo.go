package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, a *Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (id, user_id, type, title, ts) VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Type, a.Title, a.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, userID, activityType string, limit int) ([]Activity, error) {
	q := `SELECT id, user_id, type, title, ts FROM activities WHERE user_id = ?`
	args := []any{userID}
	if activityType != "" {
		q += ` AND type = ?`
		args = append(args, activityType)
	}
	q += ` ORDER BY ts DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select activities: %w", err)
	}
	defer rows.Close()

	var result []Activity
	for rows.Next() {
		var (
			item Activity
			ms   int64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Type, &item.Title, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		item.Timestamp = time.UnixMilli(ms)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity rows: %w", err)
	}
	return result, nil
}
