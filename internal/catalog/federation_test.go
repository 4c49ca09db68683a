package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameapi/internal/catalog"
	"gameapi/internal/platform/firstapi"
	"gameapi/internal/platform/secondapi"
	"gameapi/internal/platform/upstream"
)

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sequence() catalog.IDGenerator {
	var n atomic.Int64
	return catalog.IDFunc(func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	})
}

func newFederation(firstURL, secondURL string, ids catalog.IDGenerator) *catalog.Aggregator {
	first := firstapi.NewClient(upstream.Config{BaseURL: firstURL, Timeout: time.Second}, firstapi.WithIDGenerator(ids))
	second := secondapi.NewClient(upstream.Config{BaseURL: secondURL, Timeout: time.Second}, secondapi.WithIDGenerator(ids))
	return catalog.NewAggregator([]catalog.Provider{first, second})
}

const (
	firstBody  = `[{"title":"Game 1","description":"Description 1"},{"title":"Game 2","description":"Description 2"}]`
	secondBody = `[{"name":"Game 1","content":"Content 1","release_at":"2024-01-01"},{"name":"Game 2","content":"Content 2","release_at":"2024-02-01"}]`
)

func TestFederation_TwoProviders(t *testing.T) {
	first := jsonServer(t, firstBody)
	second := jsonServer(t, secondBody)

	got, err := newFederation(first.URL, second.URL, catalog.UUIDGenerator{}).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	type row struct {
		title, description, release string
	}
	var rows []row
	seen := map[string]bool{}
	for _, e := range got {
		release := ""
		if d, ok := e.ReleaseDate(); ok {
			release = d.Format(catalog.DateLayout)
		}
		rows = append(rows, row{e.Title(), e.Description(), release})
		assert.NotEmpty(t, e.ID())
		assert.False(t, seen[e.ID()], "duplicate id %s", e.ID())
		seen[e.ID()] = true
	}
	assert.Equal(t, []row{
		{"Game 1", "Description 1", ""},
		{"Game 2", "Description 2", ""},
		{"Game 1", "Content 1", "2024-01-01"},
		{"Game 2", "Content 2", "2024-02-01"},
	}, rows)
}

func TestFederation_SecondProviderDown(t *testing.T) {
	first := jsonServer(t, firstBody)
	second := httptest.NewServer(http.NotFoundHandler())
	secondURL := second.URL
	second.Close()

	got, err := newFederation(first.URL, secondURL, sequence()).ListAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)

	var aggErr *catalog.AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, secondapi.Name, aggErr.Provider)
	assert.ErrorIs(t, err, catalog.ErrTransport)
}

func TestFederation_RerunKeepsValues(t *testing.T) {
	first := jsonServer(t, firstBody)
	second := jsonServer(t, secondBody)
	agg := newFederation(first.URL, second.URL, catalog.UUIDGenerator{})

	a, err := agg.ListAll(context.Background())
	require.NoError(t, err)
	b, err := agg.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Title(), b[i].Title())
		assert.Equal(t, a[i].Description(), b[i].Description())
		da, oka := a[i].ReleaseDate()
		db, okb := b[i].ReleaseDate()
		assert.Equal(t, oka, okb)
		assert.True(t, da.Equal(db))
		assert.NotEqual(t, a[i].ID(), b[i].ID())
	}
}
