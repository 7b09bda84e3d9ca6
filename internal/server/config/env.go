package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "JOURNAL_"

// parseEnv loads dotenvPath (if it exists) into the process environment
// without overriding variables already set, then reads JOURNAL_* values.
func parseEnv(cfg *Config, dotenvPath string, lookup func(string) (string, bool)) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	str := map[string]*string{
		"ADDR":             &cfg.Addr,
		"DATABASE_DRIVER":  &cfg.DatabaseDriver,
		"DATABASE_DSN":     &cfg.DatabaseDSN,
		"ADMIN_USERNAME":   &cfg.AdminUsername,
		"ADMIN_PASSWORD":   &cfg.AdminPassword,
		"SECRET_KEY":       &cfg.SecretKey,
		"LOG_FORMAT":       &cfg.LogFormat,
		"LOG_LEVEL":        &cfg.LogLevel,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
		"S3_ROOT_USER":     &cfg.S3RootUser,
		"S3_ROOT_PASSWORD": &cfg.S3RootPassword,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	boolean := map[string]*bool{
		"RESET_ON_START": &cfg.ResetOnStart,
		"SEED_ON_RESET":  &cfg.SeedOnReset,
		"COOKIE_SECURE":  &cfg.CookieSecure,
	}
	for name, dst := range boolean {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	durations := map[string]*time.Duration{
		"SESSION_DURATION":  &cfg.SessionDuration,
		"REMEMBER_DURATION": &cfg.RememberDuration,
	}
	for name, dst := range durations {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
	}

	return nil
}
