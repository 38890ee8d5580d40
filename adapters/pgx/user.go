package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/bantay/core"
)

func (a *Adapter) GetUser(ctx context.Context, username string) (*core.User, error) {
	q := `SELECT username, email, password_hash, salt, is_activated FROM users WHERE username = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, username).Scan(&user.Username, &user.Email, &user.PasswordHash, &user.Salt, &user.IsActivated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) InsertUser(ctx context.Context, user *core.User) error {
	q := `INSERT INTO users (username, email, password_hash, salt, is_activated) VALUES ($1, $2, $3, $4, $5)`

	_, err := a.pool.Exec(ctx, q, user.Username, user.Email, user.PasswordHash, user.Salt, user.IsActivated)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUserAlreadyExist
		}
		return err
	}
	return nil
}

// SetActivated only touches inactive rows, so a repeat reports zero rows.
func (a *Adapter) SetActivated(ctx context.Context, username string) (int64, error) {
	q := `UPDATE users SET is_activated = TRUE WHERE username = $1 AND is_activated = FALSE`

	tag, err := a.pool.Exec(ctx, q, username)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
