package services

import (
	"context"

	"github.com/lborres/bantay/core"
)

// CachedClientStore serves client lookups from a cache in front of the
// backing store. User operations pass straight through.
type CachedClientStore struct {
	core.CredentialStore
	cache core.ClientCache
}

var _ core.CredentialStore = (*CachedClientStore)(nil)

func NewCachedClientStore(store core.CredentialStore, cache core.ClientCache) *CachedClientStore {
	return &CachedClientStore{CredentialStore: store, cache: cache}
}

func (s *CachedClientStore) GetClient(ctx context.Context, clientID string) (*core.ClientCredential, error) {
	if client, err := s.cache.Get(clientID); err == nil {
		return client, nil
	}

	client, err := s.CredentialStore.GetClient(ctx, clientID)
	if err != nil {
		// misses are not cached so a newly provisioned client shows up at once
		return nil, err
	}

	// We don't fail the request if caching fails
	_ = s.cache.Set(clientID, client)

	return client, nil
}
