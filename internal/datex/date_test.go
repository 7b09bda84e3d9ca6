package datex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_ISO(t *testing.T) {
	got, err := ParseDate("2016-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.January, 31, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_TrimsSpace(t *testing.T) {
	got, err := ParseDate("  2016-01-31 ")
	require.NoError(t, err)
	assert.Equal(t, "2016-01-31", Format(got))
}

func TestParseDate_NaturalLanguage(t *testing.T) {
	now := time.Date(2016, time.February, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"31 January 2016", "2016-01-31"},
		{"January 31, 2016", "2016-01-31"},
		{"yesterday", "2016-02-09"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(got))
		})
	}
}

func TestParseDate_ShortISOFields(t *testing.T) {
	got, err := ParseDate("2016-1-5")
	require.NoError(t, err)
	assert.Equal(t, "2016-01-05", Format(got))
}

func TestParseDate_Errors(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	_, err := parseDate("", now)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = parseDate("   ", now)
	assert.ErrorIs(t, err, ErrEmpty)

	tests := []struct {
		name string
		in   string
	}{
		{"nonsense", "definitely not a date"},
		{"day past month end", "2016-02-30"},
		{"not a leap year", "2015-02-29"},
		{"month 13", "2016-13-01"},
		{"day zero", "2016-01-00"},
		{"year only", "2016"},
		{"bare number", "12"},
		{"month and year only", "January 2016"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.in, now)
			assert.ErrorIs(t, err, ErrInvalid, "parsed as %s", Format(got))
		})
	}
}
