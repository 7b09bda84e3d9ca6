package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Addr = "127.0.0.1:0"
	c.DatabaseDSN = "file:" + name + "?mode=memory&cache=shared"
	c.LogFormat = "json"
	return c
}

func TestNewApp_ResetAndSeed(t *testing.T) {
	c := testConfig("app_reset_seed")
	c.ResetOnStart = true
	c.SeedOnReset = true

	app, err := NewApp(context.Background(), c, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	resp, err := app.server.App().Test(httptest.NewRequest(http.MethodGet, "/?tag=bad", nil), 10000)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/entries/dude-where-s-my-car")
}

func TestNewApp_PersistentModeDoesNotSeed(t *testing.T) {
	c := testConfig("app_persistent")

	app, err := NewApp(context.Background(), c, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	var n int
	require.NoError(t, app.db.Get(&n, `SELECT COUNT(*) FROM entries`))
	assert.Zero(t, n)
	require.NoError(t, app.db.Get(&n, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, n)
}

func TestNewApp_BadConfig(t *testing.T) {
	c := testConfig("app_bad")
	c.LogFormat = "xml"
	_, err := NewApp(context.Background(), c, io.Discard)
	assert.Error(t, err)

	c = testConfig("app_bad_driver")
	c.DatabaseDriver = "oracle"
	_, err = NewApp(context.Background(), c, io.Discard)
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig("app_run"), io.Discard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
