// Package config manages the project configuration file read and updated by the cxp CLI
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// ApplicationKey is the top-level mapping holding application metadata
	ApplicationKey = "application"

	// ApplicationUIDPrefix prefixes the per-environment application id key
	ApplicationUIDPrefix = "application_uid_"
)

// ProjectConfig is the mapping stored in the project config file. Keys the
// CLI does not know about are preserved on save.
type ProjectConfig struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// New wraps values as a ProjectConfig
func New(values map[string]interface{}) *ProjectConfig {
	if values == nil {
		values = make(map[string]interface{})
	}
	return &ProjectConfig{values: normalize(values)}
}

// Values returns the underlying mapping
func (c *ProjectConfig) Values() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values
}

// Application decodes and validates the application mapping
func (c *ProjectConfig) Application() (ApplicationMetadata, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, ok := c.values[ApplicationKey].(map[string]interface{})
	if !ok {
		return ApplicationMetadata{}, &FieldError{Field: ApplicationKey, Tag: "required"}
	}

	meta := ApplicationMetadata{
		DisplayName:        stringValue(raw["display_name"]),
		Description:        stringValue(raw["description"]),
		LeadDeveloperEmail: stringValue(raw["lead_developer_email"]),
		AppVersion:         stringValue(raw["app_version"]),
		GithubURL:          stringValue(raw["github_url"]),
	}

	if err := meta.Validate(); err != nil {
		return ApplicationMetadata{}, err
	}

	return meta, nil
}

// ApplicationUID returns the application id recorded for env
func (c *ProjectConfig) ApplicationUID(env string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	app, ok := c.values[ApplicationKey].(map[string]interface{})
	if !ok {
		return "", false
	}
	uid, ok := app[ApplicationUIDPrefix+env]
	if !ok || uid == nil {
		return "", false
	}
	return stringValue(uid), true
}

// SetApplicationUID records the application id created in env
func (c *ProjectConfig) SetApplicationUID(env, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	app, ok := c.values[ApplicationKey].(map[string]interface{})
	if !ok {
		app = make(map[string]interface{})
		c.values[ApplicationKey] = app
	}
	app[ApplicationUIDPrefix+env] = id
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Store loads and saves a ProjectConfig
type Store interface {
	Load() (*ProjectConfig, error)
	Save(cfg *ProjectConfig) error
	Path() string
}

// FileStore persists the config as YAML, TOML or JSON chosen by extension
type FileStore struct {
	path   string
	format Format
}

// NewFileStore creates a store for path
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		format: DetectFormat(path),
	}
}

// Path returns the config file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the config file
func (s *FileStore) Load() (*ProjectConfig, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 - path is chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", s.path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	values, err := decode(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return New(values), nil
}

// Save writes the config file atomically
func (s *FileStore) Save(cfg *ProjectConfig) error {
	cfg.mu.RLock()
	data, err := encode(s.format, cfg.values)
	cfg.mu.RUnlock()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	// Write atomically by writing to temp file then renaming
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// MemoryStore keeps the config in memory, for tests
type MemoryStore struct {
	mu     sync.Mutex
	cfg    *ProjectConfig
	saves  int
	LoadFn func() (*ProjectConfig, error)
	SaveFn func(*ProjectConfig) error
}

// NewMemoryStore creates a store holding values
func NewMemoryStore(values map[string]interface{}) *MemoryStore {
	return &MemoryStore{cfg: New(values)}
}

// Path implements Store
func (m *MemoryStore) Path() string {
	return "memory"
}

// Load implements Store
func (m *MemoryStore) Load() (*ProjectConfig, error) {
	if m.LoadFn != nil {
		return m.LoadFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg, nil
}

// Save implements Store
func (m *MemoryStore) Save(cfg *ProjectConfig) error {
	if m.SaveFn != nil {
		return m.SaveFn(cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
