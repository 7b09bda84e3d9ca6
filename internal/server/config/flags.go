package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/learningjournal/internal/flagx"
)

var (
	valueFlags = []string{
		"-a", "-driver", "-d", "-admin-user", "-admin-password", "-s",
		"-session", "-remember", "-log-format", "-log-level",
		"-b", "-g", "-e", "-s3-user", "-s3-password",
	}
	boolFlags = []string{"-reset", "-seed", "-secure-cookies"}
)

// parseFlags overlays command-line flags onto cfg. Unknown flags (such as
// -c, handled earlier) are filtered out before parsing.
//
//	-a string               listen address (":5000")
//	-driver string          database driver: sqlite or pgx
//	-d string               database DSN
//	-reset                  drop and recreate tables at startup
//	-seed                   insert sample entries after a reset
//	-admin-user string      admin username
//	-admin-password string  admin password
//	-s string               session signing key
//	-session duration       lifetime of a browser-session login
//	-remember duration      lifetime of a "remember me" login
//	-secure-cookies         mark cookies Secure (HTTPS only)
//	-log-format string      json, console or auto
//	-log-level string       debug, info, warn or error
//	-b, -g, -e string       S3 bucket, region and endpoint for archiving
//	-s3-user, -s3-password  S3 credentials
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterFlags(args, valueFlags, boolFlags)

	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.BoolVar(&cfg.ResetOnStart, "reset", cfg.ResetOnStart, "drop and recreate tables at startup")
	fs.BoolVar(&cfg.SeedOnReset, "seed", cfg.SeedOnReset, "insert sample entries after a reset")
	fs.StringVar(&cfg.AdminUsername, "admin-user", cfg.AdminUsername, "admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "admin password")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "session signing key")
	fs.DurationVar(&cfg.SessionDuration, "session", cfg.SessionDuration, "session login lifetime")
	fs.DurationVar(&cfg.RememberDuration, "remember", cfg.RememberDuration, "remember-me login lifetime")
	fs.BoolVar(&cfg.CookieSecure, "secure-cookies", cfg.CookieSecure, "mark cookies Secure")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3RootUser, "s3-user", cfg.S3RootUser, "S3 user")
	fs.StringVar(&cfg.S3RootPassword, "s3-password", cfg.S3RootPassword, "S3 password")

	return fs.Parse(args)
}
