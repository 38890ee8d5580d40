package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lborres/bantay/core"
)

// ProvisionClient validates and stores a client credential. The redirect URI
// must be absolute and carry no query, since that is what lookups compare
// against.
func ProvisionClient(ctx context.Context, store Store, client core.ClientCredential) error {
	if client.ClientID == "" || client.ClientSecret == "" {
		return fmt.Errorf("client id and secret are required")
	}
	u, err := url.Parse(client.RedirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", core.ErrInvalidRedirectURI, client.RedirectURI)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: redirect uri must not have a query or fragment", core.ErrInvalidRedirectURI)
	}
	if err := store.UpsertClient(ctx, &client); err != nil {
		return fmt.Errorf("failed to store client: %w", err)
	}
	return nil
}
