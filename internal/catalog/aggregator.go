package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FailurePolicy decides what one failing provider does to an aggregation.
type FailurePolicy string

const (
	// PolicyAllOrNothing fails the whole aggregation on any provider error.
	PolicyAllOrNothing FailurePolicy = "all_or_nothing"
	// PolicyBestEffort skips failed providers and reports them in Result.Failures.
	PolicyBestEffort FailurePolicy = "best_effort"
)

// ParseFailurePolicy accepts the config spelling of a policy. Empty means
// PolicyAllOrNothing.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", PolicyAllOrNothing:
		return PolicyAllOrNothing, nil
	case PolicyBestEffort:
		return PolicyBestEffort, nil
	default:
		return "", fmt.Errorf("unknown catalog failure policy %q", s)
	}
}

// Aggregator queries a fixed list of providers concurrently and flattens
// their entries in provider order. It is a Provider itself.
type Aggregator struct {
	name            string
	providers       []Provider
	policy          FailurePolicy
	providerTimeout time.Duration
	log             *zap.Logger
	observer        FetchObserver
}

type AggregatorOption func(*Aggregator)

func WithFailurePolicy(p FailurePolicy) AggregatorOption {
	return func(a *Aggregator) { a.policy = p }
}

// WithProviderTimeout bounds each provider call. Zero disables it.
func WithProviderTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) { a.providerTimeout = d }
}

func WithAggregatorLogger(l *zap.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

func WithFetchObserver(o FetchObserver) AggregatorOption {
	return func(a *Aggregator) {
		if o != nil {
			a.observer = o
		}
	}
}

func WithName(name string) AggregatorOption {
	return func(a *Aggregator) { a.name = name }
}

// NewAggregator copies providers; later changes to the caller's slice are
// not observed.
func NewAggregator(providers []Provider, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		name:      "federated",
		providers: append([]Provider(nil), providers...),
		policy:    PolicyAllOrNothing,
		log:       zap.NewNop(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Name() string { return a.name }

func (a *Aggregator) Policy() FailurePolicy { return a.policy }

// ListAll returns the flattened entries of every provider.
func (a *Aggregator) ListAll(ctx context.Context) ([]Entry, error) {
	res, err := a.Aggregate(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Failures {
		a.log.Warn("catalog provider skipped",
			zap.String("aggregator", a.name),
			zap.String("provider", f.Provider),
			zap.Error(f.Err),
		)
	}
	return res.Entries, nil
}

// Aggregate fans out ListAll to every provider and waits for all of them.
// Entries are ordered by provider index, then by position within each
// provider, regardless of which call finished first.
func (a *Aggregator) Aggregate(ctx context.Context) (Result, error) {
	batches := make([][]Entry, len(a.providers))
	errs := make([]error, len(a.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range a.providers {
		g.Go(func() error {
			entries, err := a.fetch(gctx, p)
			if err == nil {
				batches[i] = entries
				return nil
			}
			aggErr := &AggregationError{Provider: p.Name(), Index: i, Err: err}
			if a.policy == PolicyAllOrNothing {
				if errors.Is(err, context.Canceled) && gctx.Err() != nil && ctx.Err() == nil {
					a.log.Debug("catalog provider cancelled after sibling failure", zap.String("provider", p.Name()))
				} else {
					a.log.Warn("catalog provider failed", zap.String("provider", p.Name()), zap.Int("index", i), zap.Error(err))
				}
				return aggErr
			}
			errs[i] = aggErr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	res := Result{Entries: make([]Entry, 0, total)}
	for _, b := range batches {
		res.Entries = append(res.Entries, b...)
	}

	var failed []error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed = append(failed, err)
		res.Failures = append(res.Failures, Failure{
			Provider: a.providers[i].Name(),
			Index:    i,
			Err:      err,
		})
	}
	if len(a.providers) > 0 && len(failed) == len(a.providers) {
		return res, errors.Join(append([]error{ErrAllProvidersFailed}, failed...)...)
	}
	return res, nil
}

func (a *Aggregator) fetch(ctx context.Context, p Provider) (entries []Entry, err error) {
	if a.providerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.providerTimeout)
		defer cancel()
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = &ProviderError{Provider: p.Name(), Kind: ErrPanic, Err: fmt.Errorf("%v", r)}
			a.observer.ObserveFetch(p.Name(), time.Since(start), 0, err)
		}
	}()

	entries, err = p.ListAll(ctx)
	elapsed := time.Since(start)
	a.observer.ObserveFetch(p.Name(), elapsed, len(entries), err)
	a.log.Debug("catalog provider listed",
		zap.String("provider", p.Name()),
		zap.Int("entries", len(entries)),
		zap.Duration("duration", elapsed),
		zap.Bool("ok", err == nil),
	)
	return entries, err
}
