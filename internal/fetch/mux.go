package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/okra-platform/abiparse/internal/imports"
)

// Mux dispatches a uri to the fetcher registered for its scheme.
// Uris without a registered scheme, such as plain paths, go to the fallback.
type Mux struct {
	fetchers map[string]imports.Fetcher
	fallback imports.Fetcher
}

// NewMux creates a mux with the given fallback, which may be nil
func NewMux(fallback imports.Fetcher) *Mux {
	return &Mux{
		fetchers: make(map[string]imports.Fetcher),
		fallback: fallback,
	}
}

// Handle registers f for uris starting with scheme://
func (m *Mux) Handle(scheme string, f imports.Fetcher) {
	m.fetchers[strings.ToLower(scheme)] = f
}

func (m *Mux) Fetch(ctx context.Context, uri string) (string, error) {
	if scheme, _, ok := strings.Cut(uri, "://"); ok {
		if f, exists := m.fetchers[strings.ToLower(scheme)]; exists {
			return f.Fetch(ctx, uri)
		}
	}

	if m.fallback == nil {
		return "", fmt.Errorf("no fetcher for uri: %s", uri)
	}
	return m.fallback.Fetch(ctx, uri)
}
