package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/learningjournal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// strings such as "24h" or integer nanoseconds.
type FileConfig struct {
	Addr             string         `json:"addr" yaml:"addr"`
	DatabaseDriver   string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	ResetOnStart     bool           `json:"reset_on_start" yaml:"reset_on_start"`
	SeedOnReset      bool           `json:"seed_on_reset" yaml:"seed_on_reset"`
	AdminUsername    string         `json:"admin_username" yaml:"admin_username"`
	AdminPassword    string         `json:"admin_password" yaml:"admin_password"`
	SecretKey        string         `json:"secret_key" yaml:"secret_key"`
	SessionDuration  timex.Duration `json:"session_duration" yaml:"session_duration"`
	RememberDuration timex.Duration `json:"remember_duration" yaml:"remember_duration"`
	CookieSecure     bool           `json:"cookie_secure" yaml:"cookie_secure"`
	LogFormat        string         `json:"log_format" yaml:"log_format"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3RootUser       string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password" yaml:"s3_root_password"`
}

// parseFile overlays the file at path onto cfg. Keys missing from the file
// keep their current values. An empty path is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := fileConfigFrom(cfg)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.applyTo(cfg)
	return nil
}

func fileConfigFrom(c *Config) *FileConfig {
	return &FileConfig{
		Addr:             c.Addr,
		DatabaseDriver:   c.DatabaseDriver,
		DatabaseDSN:      c.DatabaseDSN,
		ResetOnStart:     c.ResetOnStart,
		SeedOnReset:      c.SeedOnReset,
		AdminUsername:    c.AdminUsername,
		AdminPassword:    c.AdminPassword,
		SecretKey:        c.SecretKey,
		SessionDuration:  timex.Duration{Duration: c.SessionDuration},
		RememberDuration: timex.Duration{Duration: c.RememberDuration},
		CookieSecure:     c.CookieSecure,
		LogFormat:        c.LogFormat,
		LogLevel:         c.LogLevel,
		S3Bucket:         c.S3Bucket,
		S3Region:         c.S3Region,
		S3BaseEndpoint:   c.S3BaseEndpoint,
		S3RootUser:       c.S3RootUser,
		S3RootPassword:   c.S3RootPassword,
	}
}

func (fc *FileConfig) applyTo(c *Config) {
	c.Addr = fc.Addr
	c.DatabaseDriver = fc.DatabaseDriver
	c.DatabaseDSN = fc.DatabaseDSN
	c.ResetOnStart = fc.ResetOnStart
	c.SeedOnReset = fc.SeedOnReset
	c.AdminUsername = fc.AdminUsername
	c.AdminPassword = fc.AdminPassword
	c.SecretKey = fc.SecretKey
	c.SessionDuration = fc.SessionDuration.Duration
	c.RememberDuration = fc.RememberDuration.Duration
	c.CookieSecure = fc.CookieSecure
	c.LogFormat = fc.LogFormat
	c.LogLevel = fc.LogLevel
	c.S3Bucket = fc.S3Bucket
	c.S3Region = fc.S3Region
	c.S3BaseEndpoint = fc.S3BaseEndpoint
	c.S3RootUser = fc.S3RootUser
	c.S3RootPassword = fc.S3RootPassword
}
