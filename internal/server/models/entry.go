// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"
)

// Entry is one journal record. Slug is assigned once, on creation, and
// identifies the entry in URLs from then on.
type Entry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	TimeSpent *int64    `json:"time_spent,omitempty"`
	Learned   string    `json:"learned"`
	Resources string    `json:"resources"`
	Tags      string    `json:"tags"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagList splits the space-delimited Tags field into tokens.
func (e *Entry) TagList() []string {
	return strings.Fields(e.Tags)
}

// HasTags reports whether every one of tags is among the entry's tokens.
// An empty list matches.
func (e *Entry) HasTags(tags []string) bool {
	for _, t := range tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

// HasTag reports whether tag is one of the entry's tokens, ignoring case.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.TagList() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
