package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name used for all keyring entries
	KeyringService = "cxp-cli"

	keyringUserPrefix = "iam-"
)

// ErrNotLoggedIn is returned when no credentials are stored for an environment
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials is an IAM access token stored for one environment
type Credentials struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Subject     string     `json:"subject,omitempty"`
}

// IsExpired reports whether the token has passed its expiry
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*c.ExpiresAt)
}

// CredentialStore provides secure storage for per-environment credentials
type CredentialStore interface {
	// Load retrieves stored credentials
	Load(env string) (*Credentials, error)
	// Save stores credentials securely
	Save(env string, creds *Credentials) error
	// Delete removes stored credentials
	Delete(env string) error
}

// KeyringStore implements CredentialStore using OS keyring
type KeyringStore struct{}

// NewKeyringStore creates a new keyring-based credential store
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func keyringUser(env string) string {
	return keyringUserPrefix + env
}

// Load retrieves stored credentials from the keyring
func (s *KeyringStore) Load(env string) (*Credentials, error) {
	data, err := keyring.Get(KeyringService, keyringUser(env))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return &creds, nil
}

// Save stores credentials in the keyring
func (s *KeyringStore) Save(env string, creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("cannot save nil credentials")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := keyring.Set(KeyringService, keyringUser(env), string(data)); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Delete removes stored credentials from the keyring
func (s *KeyringStore) Delete(env string) error {
	err := keyring.Delete(KeyringService, keyringUser(env))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotLoggedIn
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

// MockStore implements CredentialStore for testing
type MockStore struct {
	mu    sync.Mutex
	creds map[string]*Credentials
	err   error
}

// NewMockStore creates a mock credential store for testing
func NewMockStore(err error) *MockStore {
	return &MockStore{creds: make(map[string]*Credentials), err: err}
}

// Load returns the mock credentials
func (m *MockStore) Load(env string) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	creds, ok := m.creds[env]
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return creds, nil
}

// Save stores the mock credentials
func (m *MockStore) Save(env string, creds *Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.creds[env] = creds
	return nil
}

// Delete clears the mock credentials
func (m *MockStore) Delete(env string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.creds[env]; !ok {
		return ErrNotLoggedIn
	}
	delete(m.creds, env)
	return nil
}
