package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/lborres/bantay/adapters/sqlite/migrations"
	"github.com/lborres/bantay/core"
	"github.com/pressly/goose/v3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store is a CredentialStore backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

var _ core.CredentialStore = (*Store)(nil)

// Open opens the database at path and applies the bundled migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one writer at a time; concurrent inserts queue instead of failing busy
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{db: db}
	if err := store.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) runMigrations(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fs.FS(migrations.FS))
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

func (s *Store) GetUser(ctx context.Context, username string) (*core.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT username, email, password_hash, salt, is_activated FROM users WHERE username = ?`, username)

	user := &core.User{}
	if err := row.Scan(&user.Username, &user.Email, &user.PasswordHash, &user.Salt, &user.IsActivated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *Store) InsertUser(ctx context.Context, user *core.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, salt, is_activated) VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.Salt, user.IsActivated)
	if err != nil {
		if isConstraintError(err) {
			return core.ErrUserAlreadyExist
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) SetActivated(ctx context.Context, username string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_activated = 1 WHERE username = ? AND is_activated = 0`, username)
	if err != nil {
		return 0, fmt.Errorf("set activated: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) GetClient(ctx context.Context, clientID string) (*core.ClientCredential, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT client_id, client_secret, redirect_uri FROM client_credentials WHERE client_id = ?`, clientID)

	client := &core.ClientCredential{}
	if err := row.Scan(&client.ClientID, &client.ClientSecret, &client.RedirectURI); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

// UpsertClient provisions or replaces a client credential
func (s *Store) UpsertClient(ctx context.Context, client *core.ClientCredential) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_credentials (client_id, client_secret, redirect_uri) VALUES (?, ?, ?)
		 ON CONFLICT (client_id) DO UPDATE SET client_secret = excluded.client_secret, redirect_uri = excluded.redirect_uri`,
		client.ClientID, client.ClientSecret, client.RedirectURI)
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
