package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Provider is implemented by every source of catalog entries, including
// the Aggregator itself.
type Provider interface {
	// Name identifies the provider in errors and logs.
	Name() string
	// ListAll returns fully normalized entries.
	ListAll(ctx context.Context) ([]Entry, error)
}

// IDGenerator produces the identifiers assigned to entries at
// normalization time.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a plain function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// UUIDGenerator issues random UUIDv4 strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// FetchObserver is told about every provider call an Aggregator makes.
type FetchObserver interface {
	ObserveFetch(provider string, d time.Duration, entries int, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, time.Duration, int, error) {}
