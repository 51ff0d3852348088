package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds a single schema download
const DefaultHTTPTimeout = 30 * time.Second

// DefaultMaxSchemaSize caps the size of a downloaded schema (10MB)
const DefaultMaxSchemaSize = 10 * 1024 * 1024

// HTTP downloads schemas over http and https
type HTTP struct {
	client *http.Client
}

// NewHTTP creates an HTTP fetcher. A nil client gets DefaultHTTPTimeout.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTP{client: client}
}

func (h *HTTP) Fetch(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", uri, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch schema %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch schema %s: unexpected status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, DefaultMaxSchemaSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", uri, err)
	}
	if len(data) > DefaultMaxSchemaSize {
		return "", fmt.Errorf("schema %s exceeds %d bytes", uri, DefaultMaxSchemaSize)
	}

	return string(data), nil
}
