// Package config manages server configuration stored in config.yaml inside
// the data directory.
//
// The config object is created explicitly at startup and injected into the
// server; there is no process-wide configuration singleton.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// Default admin credentials used when the config file is created from
// scratch. The password is stored bcrypt-hashed; change it after first login.
const (
	DefaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Config stores all server-wide configuration.
// Loaded from config.yaml, created with defaults if missing.
type Config struct {
	// Admin holds the single shared admin credential.
	Admin AdminConfig `yaml:"admin"`

	// JWTSecret signs admin session tokens. Auto-generated on first load.
	JWTSecret string `yaml:"jwt_secret"`

	// RateLimits defines rate limiting configuration (requests per minute).
	RateLimits RateLimits `yaml:"rate_limits"`
}

// AdminConfig holds the shared admin credential.
type AdminConfig struct {
	Username string `yaml:"username"`
	// PasswordHash is the bcrypt hash of the admin password.
	PasswordHash string `yaml:"password_hash"`
}

// Default rate limit tiers, applied when a field is absent from config.yaml.
const (
	defaultLoginRatePerMin = 5
	defaultWriteRatePerMin = 60
)

// RateLimits defines rate limiting configuration (requests per minute).
// Fields are pointers so an explicit 0 ("tier disabled") survives reloads
// instead of being mistaken for an absent field and reset to the default.
type RateLimits struct {
	// LoginRatePerMin limits login attempts per client IP.
	LoginRatePerMin *int `yaml:"login_rate_per_min"`
	// WriteRatePerMin limits mutating admin operations per client IP.
	WriteRatePerMin *int `yaml:"write_rate_per_min"`
}

// LoginPerMin returns the login tier, 0 when unset or disabled.
func (r *RateLimits) LoginPerMin() int {
	if r.LoginRatePerMin == nil {
		return 0
	}
	return *r.LoginRatePerMin
}

// WritePerMin returns the write tier, 0 when unset or disabled.
func (r *RateLimits) WritePerMin() int {
	if r.WriteRatePerMin == nil {
		return 0
	}
	return *r.WriteRatePerMin
}

// Validate checks that rate limit values are non-negative.
func (r *RateLimits) Validate() error {
	if r.LoginRatePerMin != nil && *r.LoginRatePerMin < 0 {
		return errors.New("login_rate_per_min must be non-negative")
	}
	if r.WriteRatePerMin != nil && *r.WriteRatePerMin < 0 {
		return errors.New("write_rate_per_min must be non-negative")
	}
	return nil
}

// DefaultRateLimits returns the default rate limits.
func DefaultRateLimits() RateLimits {
	login, write := defaultLoginRatePerMin, defaultWriteRatePerMin
	return RateLimits{
		LoginRatePerMin: &login,
		WriteRatePerMin: &write,
	}
}

// Load reads config.yaml from dataDir, creating it with defaults if missing.
// Missing fields are filled in and persisted so the file stays complete.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, configFile)
	cfg := &Config{}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is built from the data-dir flag
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run; defaults below.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dirty := false
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = DefaultAdminUsername
		dirty = true
	}
	if cfg.Admin.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash default password: %w", err)
		}
		cfg.Admin.PasswordHash = string(hash)
		dirty = true
	}
	if cfg.JWTSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.JWTSecret = hex.EncodeToString(secret)
		dirty = true
	}
	if cfg.RateLimits.LoginRatePerMin == nil {
		v := defaultLoginRatePerMin
		cfg.RateLimits.LoginRatePerMin = &v
		dirty = true
	}
	if cfg.RateLimits.WriteRatePerMin == nil {
		v := defaultWriteRatePerMin
		cfg.RateLimits.WriteRatePerMin = &v
		dirty = true
	}
	if err := cfg.RateLimits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limits in %s: %w", path, err)
	}

	if dirty {
		if err := cfg.Save(dataDir); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save writes the config back to config.yaml in dataDir.
func (c *Config) Save(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dataDir, configFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CheckAdminPassword verifies the shared admin credential.
func (c *Config) CheckAdminPassword(username, password string) bool {
	if username != c.Admin.Username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Admin.PasswordHash), []byte(password)) == nil
}
