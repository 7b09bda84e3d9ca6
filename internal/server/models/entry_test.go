package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_TagList(t *testing.T) {
	e := &Entry{Tags: " best latin  long-day "}
	assert.Equal(t, []string{"best", "latin", "long-day"}, e.TagList())

	assert.Empty(t, (&Entry{}).TagList())
}

func TestEntry_HasTags(t *testing.T) {
	e := &Entry{Tags: "long-day bad"}

	assert.True(t, e.HasTags(nil))
	assert.True(t, e.HasTags([]string{"bad"}))
	assert.True(t, e.HasTags([]string{"BAD", "long-day"}))
	assert.False(t, e.HasTags([]string{"bad", "best"}))
}

func TestEntry_HasTag(t *testing.T) {
	e := &Entry{Tags: " long-day bad "}

	tests := []struct {
		tag  string
		want bool
	}{
		{"bad", true},
		{"BAD", true},
		{"long-day", true},
		{"long", false},
		{"ba", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, e.HasTag(tt.tag))
		})
	}
}
