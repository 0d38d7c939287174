package remote

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"
)

// KeyringService names the OS keychain entry the bearer token lives under.
const KeyringService = "daybook"

// TokenStore persists the bearer token between runs. Token returns "" when
// signed out.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// KeyringTokens keeps the token in the OS keychain, one entry per API base.
type KeyringTokens struct {
	Account string
}

func (k KeyringTokens) Token() (string, error) {
	tok, err := keyring.Get(KeyringService, k.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

func (k KeyringTokens) SetToken(token string) error {
	return keyring.Set(KeyringService, k.Account, token)
}

func (k KeyringTokens) ClearToken() error {
	err := keyring.Delete(KeyringService, k.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// MemoryTokens is a TokenStore that forgets on exit.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokens) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokens) SetToken(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokens) ClearToken() error {
	return m.SetToken("")
}
