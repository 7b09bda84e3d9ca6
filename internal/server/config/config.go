// Package config handles configuration for the journal server: defaults,
// then .env and JOURNAL_* environment variables, then an optional JSON or
// YAML file, then command-line flags. Later sources win.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/flagx"
)

// Config holds runtime settings for the journal server.
//
// An empty SecretKey makes the server generate a random key at every start,
// which logs everybody out on restart.
type Config struct {
	Addr             string
	DatabaseDriver   string
	DatabaseDSN      string
	ResetOnStart     bool
	SeedOnReset      bool
	AdminUsername    string
	AdminPassword    string
	SecretKey        string
	SessionDuration  time.Duration
	RememberDuration time.Duration
	CookieSecure     bool
	LogFormat        string
	LogLevel         string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3RootUser       string
	S3RootPassword   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:journal.db?_pragma=busy_timeout(5000)"
	c.ResetOnStart = false
	c.SeedOnReset = true
	c.AdminUsername = "default"
	c.AdminPassword = "default"
	c.SecretKey = ""
	c.SessionDuration = 24 * time.Hour
	c.RememberDuration = 365 * 24 * time.Hour
	c.CookieSecure = false
	c.LogFormat = "auto"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, fmt.Errorf("database_driver must be sqlite or pgx, got %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database_dsn is empty"))
	}
	if c.AdminUsername == "" {
		errs = append(errs, errors.New("admin_username is empty"))
	}
	if c.AdminPassword == "" {
		errs = append(errs, errors.New("admin_password is empty"))
	}
	if c.SessionDuration <= 0 {
		errs = append(errs, errors.New("session_duration must be positive"))
	}
	if c.RememberDuration <= 0 {
		errs = append(errs, errors.New("remember_duration must be positive"))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config from all sources. The admin password may still
// be empty afterwards; see PromptPassword.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env", os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, flagx.ConfigFileFlag()); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}
