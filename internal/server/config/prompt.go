package config

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// seams for tests
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// PromptPassword asks for the admin password on the terminal behind fd when
// none is configured. Non-interactive input leaves cfg untouched.
func PromptPassword(cfg *Config, fd int, out io.Writer) error {
	if cfg.AdminPassword != "" || !isTerminal(fd) {
		return nil
	}

	fmt.Fprintf(out, "Password for %s: ", cfg.AdminUsername)
	b, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	cfg.AdminPassword = strings.TrimRight(string(b), "\r\n")
	return nil
}
