package app

import (
	"context"
	"fmt"

	pgxadapter "github.com/lborres/bantay/adapters/pgx"
	sqliteadapter "github.com/lborres/bantay/adapters/sqlite"
	"github.com/lborres/bantay/core"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store is a credential store that can also provision clients
type Store interface {
	core.CredentialStore
	UpsertClient(ctx context.Context, client *core.ClientCredential) error
}

var (
	_ Store = (*pgxadapter.Adapter)(nil)
	_ Store = (*sqliteadapter.Store)(nil)
)

// OpenStore connects the configured driver and applies migrations. The
// returned func releases the connection.
func OpenStore(ctx context.Context, cfg core.DatabaseConfig) (Store, func(), error) {
	switch cfg.Driver {
	case DriverPostgres:
		pool, err := pgxadapter.Connect(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		store := pgxadapter.New(pool)
		if err := store.RunMigrations(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case DriverSQLite:
		store, err := sqliteadapter.Open(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
