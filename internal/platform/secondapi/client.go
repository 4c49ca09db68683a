package secondapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gameapi/internal/catalog"
	"gameapi/internal/platform/upstream"
)

// Name identifies this provider in errors and logs.
const Name = "second-api"

const gamesPath = "/games"

// record matches one element of GET /games.
type record struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	ReleaseAt string `json:"release_at"`
}

// Client lists games from the second upstream API.
type Client struct {
	api *upstream.Client
	ids catalog.IDGenerator
	log *zap.Logger
}

type Option func(*options)

type options struct {
	ids        catalog.IDGenerator
	httpClient *http.Client
	log        *zap.Logger
}

func WithIDGenerator(g catalog.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func NewClient(cfg upstream.Config, opts ...Option) *Client {
	o := options{ids: catalog.UUIDGenerator{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		api: upstream.NewClient(cfg, o.httpClient),
		ids: o.ids,
		log: o.log.With(zap.String("provider", Name)),
	}
}

func (c *Client) Name() string { return Name }

// ListAll maps name→title and content→description, and parses release_at.
// An unparseable release_at fails the whole call.
func (c *Client) ListAll(ctx context.Context) ([]catalog.Entry, error) {
	var records []record
	if err := c.api.GetJSON(ctx, gamesPath, &records); err != nil {
		return nil, upstream.Classify(Name, err)
	}

	entries := make([]catalog.Entry, 0, len(records))
	for i, rec := range records {
		released, err := parseReleaseAt(rec.ReleaseAt)
		if err != nil {
			return nil, catalog.NewFormatError(Name, fmt.Errorf("record %d: %w", i, err))
		}
		e, err := catalog.NewEntry(c.ids.NewID(), rec.Name, rec.Content, released)
		if err != nil {
			return nil, catalog.NewFormatError(Name, fmt.Errorf("record %d: %w", i, err))
		}
		entries = append(entries, e)
	}
	c.log.Debug("fetched games", zap.Int("count", len(entries)))
	return entries, nil
}

// parseReleaseAt accepts a plain date or an RFC 3339 timestamp. Empty means
// no release date.
func parseReleaseAt(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(catalog.DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid release_at %q", s)
	}
	return &t, nil
}
