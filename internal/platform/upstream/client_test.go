package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameapi/internal/catalog"
)

func TestClient_GetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes body and sends headers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/games", r.URL.Path)
			assert.Equal(t, "gameapi-test", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`[{"title":"x"}]`))
		}))
		defer srv.Close()

		c := NewClient(Config{BaseURL: srv.URL + "/", UserAgent: "gameapi-test"}, nil)
		var out []map[string]string
		require.NoError(t, c.GetJSON(ctx, "/games", &out))
		assert.Equal(t, []map[string]string{{"title": "x"}}, out)
	})

	t.Run("non-2xx is unavailable and not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := NewClient(Config{BaseURL: srv.URL}, nil).GetJSON(ctx, "/games", &[]any{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnavailable)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"`))
		}))
		defer srv.Close()

		err := NewClient(Config{BaseURL: srv.URL}, nil).GetJSON(ctx, "/games", &[]any{})
		assert.ErrorIs(t, err, ErrDecode)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection failure is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := NewClient(Config{BaseURL: url}, nil).GetJSON(ctx, "/games", &[]any{})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("respects context deadline", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := NewClient(Config{BaseURL: srv.URL}, nil).GetJSON(tctx, "/games", &[]any{})
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestClient_GetJSON_RateLimitedKeepsContextCause(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	t.Run("cancelled context", func(t *testing.T) {
		c := NewClient(Config{BaseURL: srv.URL, RPS: 1}, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := c.GetJSON(ctx, "/games", &[]any{})
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("next token past deadline", func(t *testing.T) {
		c := NewClient(Config{BaseURL: srv.URL, RPS: 1}, nil)
		require.True(t, c.limiter.Allow())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := c.GetJSON(ctx, "/games", &[]any{})
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	assert.Equal(t, int32(0), calls.Load())
}

func TestClassify(t *testing.T) {
	decodeErr := Classify("p", errors.Join(ErrDecode, errors.New("eof")))
	assert.ErrorIs(t, decodeErr, catalog.ErrFormat)

	var perr *catalog.ProviderError
	require.ErrorAs(t, decodeErr, &perr)
	assert.Equal(t, "p", perr.Provider)

	assert.ErrorIs(t, Classify("p", &StatusError{StatusCode: 500}), catalog.ErrTransport)
}
