package auth

import (
	"net/url"
	"strings"
)

// SafeNext returns next when it is a same-origin relative path, "/" otherwise.
func SafeNext(next string) string {
	if next == "" || next[0] != '/' {
		return "/"
	}
	// protocol-relative URLs; browsers treat a backslash like a slash
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	if strings.ContainsAny(next, "\r\n\t") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
