// Package datex parses the calendar dates typed into entry forms.
package datex

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/markusmobius/go-dateparser"
)

// isoShaped matches input that can only be meant as year-month-day.
var isoShaped = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// lenient form of common.DateLayout, for "2016-1-5"
const isoLayout = "2006-1-2"

var (
	ErrEmpty   = errors.New("date is required")
	ErrInvalid = errors.New("date is not a valid calendar date")
)

// ParseDate accepts YYYY-MM-DD, which is what date inputs submit, and falls
// back to natural-language dates ("31 January 2016", "yesterday").
// Numeric dates outside the calendar and dates missing a day, month or year
// are rejected. The result is midnight UTC of the calendar day.
func ParseDate(s string) (time.Time, error) {
	return parseDate(s, time.Now())
}

func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}

	if isoShaped.MatchString(s) {
		t, err := time.Parse(isoLayout, s)
		if err != nil {
			return time.Time{}, ErrInvalid
		}
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:   now,
		StrictParsing: true,
	}
	result, err := dateparser.Parse(cfg, s)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, ErrInvalid
	}

	y, m, d := result.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Format renders t the way forms and storage expect it.
func Format(t time.Time) string {
	return t.Format(common.DateLayout)
}
