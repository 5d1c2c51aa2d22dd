package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/common"
	"github.com/dmitrijs2005/shaketracker/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar_index, bio, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.AvatarIndex, u.Bio, u.Phone, u.CreatedAt.UnixMilli())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, avatar_index, bio, phone, created_at
		 FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepository) ByID(ctx context.Context, id string) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, avatar_index, bio, phone, created_at
		 FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*User, error) {
	var (
		u  User
		ms int64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarIndex, &u.Bio, &u.Phone, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	u.CreatedAt = time.UnixMilli(ms)
	return &u, nil
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.AvatarIndex != nil {
		sets = append(sets, "avatar_index = ?")
		args = append(args, *upd.AvatarIndex)
	}
	if upd.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *upd.Bio)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
