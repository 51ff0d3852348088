package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// SchemaFetcher serves schemas from memory and counts fetches per uri.
// It satisfies imports.Fetcher.
type SchemaFetcher struct {
	mu      sync.RWMutex
	schemas map[string]string
	calls   map[string]int
}

// NewSchemaFetcher creates a fetcher serving the given uri -> schema map
func NewSchemaFetcher(schemas map[string]string) *SchemaFetcher {
	return &SchemaFetcher{
		schemas: schemas,
		calls:   make(map[string]int),
	}
}

func (f *SchemaFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[uri]++
	schema, ok := f.schemas[uri]
	if !ok {
		return "", fmt.Errorf("schema not found: %s", uri)
	}
	return schema, nil
}

// Calls returns how many times uri was fetched
func (f *SchemaFetcher) Calls(uri string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[uri]
}

// WriteSchemas writes files, keyed by relative path, into a new temp dir and returns the dir
func WriteSchemas(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}
