package services

import (
	"context"
	"sync"

	"github.com/lborres/bantay/core"
)

// FakeCredentialStore is a test-only fake implementing core.CredentialStore.
// It stores rows in maps and exposes error fields for behavior injection.
type FakeCredentialStore struct {
	mu      sync.RWMutex
	users   map[string]*core.User
	clients map[string]*core.ClientCredential

	getUserErr      error
	insertErr       error
	setActivatedErr error
	getClientErr    error

	getClientCalls int
}

func NewFakeCredentialStore() *FakeCredentialStore {
	return &FakeCredentialStore{
		users:   make(map[string]*core.User),
		clients: make(map[string]*core.ClientCredential),
	}
}

func (f *FakeCredentialStore) GetUser(_ context.Context, username string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *FakeCredentialStore) InsertUser(_ context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, exists := f.users[u.Username]; exists {
		return core.ErrUserAlreadyExist
	}
	cp := *u
	f.users[u.Username] = &cp
	return nil
}

func (f *FakeCredentialStore) SetActivated(_ context.Context, username string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setActivatedErr != nil {
		return 0, f.setActivatedErr
	}
	u, ok := f.users[username]
	if !ok || u.IsActivated {
		return 0, nil
	}
	u.IsActivated = true
	return 1, nil
}

func (f *FakeCredentialStore) GetClient(_ context.Context, clientID string) (*core.ClientCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getClientCalls++
	if f.getClientErr != nil {
		return nil, f.getClientErr
	}
	c, ok := f.clients[clientID]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *FakeCredentialStore) addClient(c core.ClientCredential) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[c.ClientID] = &c
}

func (f *FakeCredentialStore) removeClient(clientID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, clientID)
}

func (f *FakeCredentialStore) user(username string) *core.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.users[username]
}

// panickingCipher crashes on Decrypt the way a fragile cipher library would
// on malformed input.
type panickingCipher struct {
	core.Cipher
}

func (p panickingCipher) Decrypt([]byte) ([]byte, error) {
	var block []byte
	_ = block[16] // index out of range
	return nil, nil
}

// fakeMailer records sent mails
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
