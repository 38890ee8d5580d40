package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/bantay/core"
)

func (a *Adapter) GetClient(ctx context.Context, clientID string) (*core.ClientCredential, error) {
	q := `SELECT client_id, client_secret, redirect_uri FROM client_credentials WHERE client_id = $1`

	client := &core.ClientCredential{}
	err := a.pool.QueryRow(ctx, q, clientID).Scan(&client.ClientID, &client.ClientSecret, &client.RedirectURI)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// UpsertClient provisions or replaces a client credential
func (a *Adapter) UpsertClient(ctx context.Context, client *core.ClientCredential) error {
	q := `INSERT INTO client_credentials (client_id, client_secret, redirect_uri) VALUES ($1, $2, $3)
	      ON CONFLICT (client_id) DO UPDATE SET client_secret = EXCLUDED.client_secret, redirect_uri = EXCLUDED.redirect_uri`

	_, err := a.pool.Exec(ctx, q, client.ClientID, client.ClientSecret, client.RedirectURI)
	return err
}
