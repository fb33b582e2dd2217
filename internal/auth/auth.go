// Package auth stores and supplies the IAM access tokens used by the cxp CLI
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// TokenEnvVar overrides the stored token for every environment
	TokenEnvVar = "CXP_IAM_TOKEN"
)

// Token sources reported by Status
const (
	SourceEnv     = "environment"
	SourceKeyring = "keyring"
)

// Manager handles authentication operations
type Manager struct {
	store  CredentialStore
	getenv func(string) string
}

// NewManager creates a new authentication manager
func NewManager(store CredentialStore) *Manager {
	return &Manager{
		store:  store,
		getenv: os.Getenv,
	}
}

// EnvVarFor returns the per-environment token variable, e.g. CXP_IAM_TOKEN_DEV
func EnvVarFor(env string) string {
	return TokenEnvVar + "_" + strings.ToUpper(env)
}

// Token returns the access token for env. A per-environment variable wins
// over CXP_IAM_TOKEN, which wins over the keyring.
func (m *Manager) Token(ctx context.Context, env string) (string, error) {
	if token := m.envToken(env); token != "" {
		return token, nil
	}

	creds, err := m.store.Load(env)
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return "", fmt.Errorf("not logged in to %s: run 'cxp auth login %s' or set %s", env, env, EnvVarFor(env))
		}
		return "", err
	}

	if creds.IsExpired() {
		return "", fmt.Errorf("access token for %s expired: run 'cxp auth login %s'", env, env)
	}

	return creds.AccessToken, nil
}

func (m *Manager) envToken(env string) string {
	if token := strings.TrimSpace(m.getenv(EnvVarFor(env))); token != "" {
		return token
	}
	return strings.TrimSpace(m.getenv(TokenEnvVar))
}

// Login stores token for env. JWTs have their expiry and subject recorded;
// opaque tokens are stored without expiry.
func (m *Manager) Login(env, token string) (*Credentials, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("token must not be empty")
	}

	creds := &Credentials{AccessToken: token}
	if claims, err := ExtractClaims(token); err == nil {
		if claims.IsExpired() {
			return nil, fmt.Errorf("token already expired")
		}
		creds.ExpiresAt = claims.ExpiresAt
		creds.Subject = claims.Subject
	}

	if err := m.store.Save(env, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// Logout removes the stored token for env
func (m *Manager) Logout(env string) error {
	return m.store.Delete(env)
}

// Status describes the token available for one environment
type Status struct {
	Environment string
	LoggedIn    bool
	Source      string
	Credentials *Credentials
}

// Status reports where the token for env would come from
func (m *Manager) Status(env string) *Status {
	status := &Status{Environment: env}

	if token := m.envToken(env); token != "" {
		status.LoggedIn = true
		status.Source = SourceEnv
		status.Credentials = &Credentials{AccessToken: token}
		if claims, err := ExtractClaims(token); err == nil {
			status.Credentials.ExpiresAt = claims.ExpiresAt
			status.Credentials.Subject = claims.Subject
		}
		return status
	}

	creds, err := m.store.Load(env)
	if err != nil {
		return status
	}

	status.LoggedIn = true
	status.Source = SourceKeyring
	status.Credentials = creds
	return status
}
