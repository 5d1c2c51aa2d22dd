package overlay

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/dbx"
)

// SQLiteRepository persists overlays in the overlays table, one row per
// (user_key, field). Set replaces the whole entry inside a transaction so a
// partially written overlay is never observable.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, userKey string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT field, value FROM overlays WHERE user_key = ?`, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to select overlay: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan overlay row: %w", err)
		}
		result[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overlay rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, userKey string, fields map[string]string) error {
	filtered := models.FilterOverlay(fields)

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM overlays WHERE user_key = ?`, userKey); err != nil {
			return fmt.Errorf("failed to replace overlay: %w", err)
		}
		for field, value := range filtered {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO overlays (user_key, field, value) VALUES (?, ?, ?)`,
				userKey, field, value)
			if err != nil {
				return fmt.Errorf("failed to store overlay field %s: %w", field, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context, userKey string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM overlays WHERE user_key = ?`, userKey)
	if err != nil {
		return fmt.Errorf("failed to clear overlay: %w", err)
	}
	return nil
}
