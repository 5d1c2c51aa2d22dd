package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shaketracker/internal/dbx"
)

const tokenKey = "token"

// SQLiteRepository stores the token in the client metadata table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Token(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, tokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
