package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/datex"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
)

// EntryFields is the raw entry form as submitted.
type EntryFields struct {
	Title     string
	Date      string
	TimeSpent string
	Learned   string
	Resources string
	Tags      string
}

// FieldsOf fills a form from a stored entry, for edit pages.
func FieldsOf(e *models.Entry) EntryFields {
	f := EntryFields{
		Title:     e.Title,
		Date:      datex.Format(e.Date),
		Learned:   e.Learned,
		Resources: e.Resources,
		Tags:      e.Tags,
	}
	if e.TimeSpent != nil {
		f.TimeSpent = strconv.FormatInt(*e.TimeSpent, 10)
	}
	return f
}

// ValidationError lists form problems keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

// validate converts the form into an entry without ID or slug.
func (f EntryFields) validate() (*models.Entry, error) {
	problems := map[string]string{}
	e := &models.Entry{
		Title:     strings.TrimSpace(f.Title),
		Learned:   f.Learned,
		Resources: f.Resources,
		Tags:      NormalizeTags(f.Tags),
	}

	if e.Title == "" {
		problems["title"] = "Title is required."
	}

	d, err := datex.ParseDate(f.Date)
	switch {
	case errors.Is(err, datex.ErrEmpty):
		problems["date"] = "Date is required."
	case err != nil:
		problems["date"] = "Enter a date such as 2016-01-31."
	default:
		e.Date = d
	}

	if ts := strings.TrimSpace(f.TimeSpent); ts != "" {
		n, err := strconv.ParseInt(ts, 10, 64)
		if err != nil || n < 0 {
			problems["time_spent"] = "Time spent must be a whole number of minutes."
		} else {
			e.TimeSpent = &n
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Fields: problems}
	}
	return e, nil
}

// NormalizeTags collapses tags to single-space separated tokens.
func NormalizeTags(tags string) string {
	return strings.Join(strings.Fields(tags), " ")
}
