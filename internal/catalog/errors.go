package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks a network or HTTP status failure reaching a provider.
	ErrTransport = errors.New("provider transport failure")
	// ErrFormat marks a payload or field that could not be parsed.
	ErrFormat = errors.New("provider payload malformed")
	// ErrPanic marks a provider that panicked instead of returning.
	ErrPanic = errors.New("provider panicked")
	// ErrAllProvidersFailed is returned by best-effort aggregation when
	// nothing succeeded.
	ErrAllProvidersFailed = errors.New("all catalog providers failed")
)

// ProviderError tags a failure with the provider that produced it.
// Kind is ErrTransport, ErrFormat or ErrPanic.
type ProviderError struct {
	Provider string
	Kind     error
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewTransportError wraps err as a transport failure of provider.
func NewTransportError(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: ErrTransport, Err: err}
}

// NewFormatError wraps err as a format failure of provider.
func NewFormatError(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: ErrFormat, Err: err}
}

// AggregationError is returned when a provider failure fails the whole
// aggregation.
type AggregationError struct {
	Provider string
	Index    int
	Err      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate catalog: provider %q (#%d) failed: %v", e.Provider, e.Index, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }
