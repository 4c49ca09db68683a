package catalog

import (
	"context"
	"strings"
)

// Service serves catalog listings from a single Provider. It does not know
// whether that provider is federated.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// List returns every catalog entry.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.provider.ListAll(ctx)
}

// Search returns entries whose title contains q, ignoring case. An empty q
// matches everything.
func (s *Service) Search(ctx context.Context, q string) ([]Entry, error) {
	entries, err := s.provider.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries, nil
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title()), q) {
			out = append(out, e)
		}
	}
	return out, nil
}
