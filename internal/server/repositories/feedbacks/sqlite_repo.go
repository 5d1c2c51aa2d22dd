package feedbacks

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

func (r *SQLiteRepository) Insert(ctx context.Context, f *Feedback) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedbacks (id, user_id, title, message, category, rating, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.UserID, f.Title, f.Message, f.Category, f.Rating, f.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ByUser(ctx context.Context, userID string) ([]Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, message, category, rating, ts
		FROM feedbacks WHERE user_id = ? ORDER BY ts DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select feedbacks: %w", err)
	}
	defer rows.Close()

	var result []Feedback
	for rows.Next() {
		var (
			item Feedback
			ms   int64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Message, &item.Category, &item.Rating, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		item.Timestamp = time.UnixMilli(ms)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}
	return result, nil
}
