// Package slug turns entry titles into URL-safe identifiers and finds a
// free one when the plain slug is already taken.
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a title contains nothing sluggable.
const Fallback = "entry"

// letters that NFKD leaves alone but still have an obvious ASCII spelling
var spelled = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o",
	"đ", "d", "Đ", "d",
	"ł", "l", "Ł", "l",
	"þ", "th", "Þ", "th",
)

// Slugify lowercases title, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single hyphen.
func Slugify(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, spelled.Replace(title))
	if err != nil {
		plain = title
	}

	var b strings.Builder
	b.Grow(len(plain))
	pendingHyphen := false
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// ExistsFunc reports whether slug is already used by a stored entry.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// WithSuffix returns base with the n-th collision suffix, e.g. "test-day-00000002".
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%08d", base, n)
}

// reserved slugs would shadow a fixed route under /entries/.
var reserved = map[string]struct{}{
	"new": {},
}

// IsReserved reports whether s can never be handed out as an entry slug.
func IsReserved(s string) bool {
	_, ok := reserved[s]
	return ok
}

// Unique returns Slugify(title) if it is free, otherwise the first free
// WithSuffix(base, n) for n = 1, 2, 3, ... Reserved slugs count as taken.
func Unique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := Slugify(title)

	candidate := base
	for n := 1; ; n++ {
		taken := IsReserved(candidate)
		if !taken {
			var err error
			if taken, err = exists(ctx, candidate); err != nil {
				return "", fmt.Errorf("slug lookup %q: %w", candidate, err)
			}
		}
		if !taken {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = WithSuffix(base, n)
	}
}
