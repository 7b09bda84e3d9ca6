package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_FieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Error(ctx, "failed", "err", errors.New("boom"), "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "dbg", lines[0]["message"])
	assert.Equal(t, float64(1), lines[0]["a"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["err"])
	assert.Equal(t, "dangling", lines[1]["!BADKEY"])
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf)).With("module", "app")

	log.Info(context.Background(), "started", "addr", ":5000")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "app", lines[0]["module"])
	assert.Equal(t, ":5000", lines[0]["addr"])
}

func TestZerologLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	log.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}
