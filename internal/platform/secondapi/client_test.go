package secondapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameapi/internal/catalog"
	"gameapi/internal/platform/upstream"
)

func newTestClient(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, gamesPath, r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(upstream.Config{BaseURL: srv.URL}, WithIDGenerator(catalog.IDFunc(func() string { return "fixed" })))
}

func TestClient_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("maps renamed fields and parses dates", func(t *testing.T) {
		c := newTestClient(t, `[
			{"name":"Game 1","content":"Content 1","release_at":"2024-01-01"},
			{"name":"Game 2","content":"Content 2","release_at":"2024-02-01T10:30:00Z"}
		]`)

		got, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Game 1", got[0].Title())
		assert.Equal(t, "Content 1", got[0].Description())
		d, ok := got[0].ReleaseDate()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

		d, ok = got[1].ReleaseDate()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC), d.UTC())
	})

	t.Run("absent release date", func(t *testing.T) {
		got, err := newTestClient(t, `[{"name":"Game 3","content":"Content 3"}]`).ListAll(ctx)
		require.NoError(t, err)
		_, ok := got[0].ReleaseDate()
		assert.False(t, ok)
	})

	t.Run("malformed release date fails the call", func(t *testing.T) {
		got, err := newTestClient(t, `[
			{"name":"Game 1","content":"Content 1","release_at":"2024-01-01"},
			{"name":"Game 2","content":"Content 2","release_at":"soon"}
		]`).ListAll(ctx)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, catalog.ErrFormat)
		assert.Contains(t, err.Error(), "soon")

		var perr *catalog.ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, Name, perr.Provider)
	})

	t.Run("missing name is a format error", func(t *testing.T) {
		_, err := newTestClient(t, `[{"content":"Content"}]`).ListAll(ctx)
		assert.ErrorIs(t, err, catalog.ErrEmptyTitle)
	})
}

func TestParseReleaseAt(t *testing.T) {
	got, err := parseReleaseAt("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseReleaseAt("2024-13-01")
	assert.Error(t, err)

	got, err = parseReleaseAt("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Month())
}
