package core

import "context"

type UserStorage interface {
	// GetUser returns ErrNotFound when no user has the given username.
	GetUser(ctx context.Context, username string) (*User, error)

	// InsertUser must return ErrUserAlreadyExist when the store rejects the
	// row on a uniqueness constraint. The engine never checks before inserting.
	InsertUser(ctx context.Context, u *User) error

	// SetActivated reports how many rows changed; zero is not an error.
	SetActivated(ctx context.Context, username string) (int64, error)
}

type ClientStorage interface {
	// GetClient returns ErrNotFound when the client is not registered.
	GetClient(ctx context.Context, clientID string) (*ClientCredential, error)
}

// CredentialStore is everything the engine needs from persistence
type CredentialStore interface {
	UserStorage
	ClientStorage
}
