package firstapi

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"gameapi/internal/catalog"
	"gameapi/internal/platform/upstream"
)

// Name identifies this provider in errors and logs.
const Name = "first-api"

const gamesPath = "/games"

// record matches one element of GET /games.
type record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Client lists games from the first upstream API.
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

// ListAll maps title and description straight across. This API carries no
// release date.
func (c *Client) ListAll(ctx context.Context) ([]catalog.Entry, error) {
	var records []record
	if err := c.api.GetJSON(ctx, gamesPath, &records); err != nil {
		return nil, upstream.Classify(Name, err)
	}

	entries := make([]catalog.Entry, 0, len(records))
	for i, rec := range records {
		e, err := catalog.NewEntry(c.ids.NewID(), rec.Title, rec.Description, nil)
		if err != nil {
			return nil, catalog.NewFormatError(Name, fmt.Errorf("record %d: %w", i, err))
		}
		entries = append(entries, e)
	}
	c.log.Debug("fetched games", zap.Int("count", len(entries)))
	return entries, nil
}
