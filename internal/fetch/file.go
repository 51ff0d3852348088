// Package fetch loads schema documents for import resolution
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File reads schemas from disk. Relative paths are resolved against Root.
type File struct {
	Root string
}

// NewFile creates a file fetcher rooted at dir
func NewFile(dir string) *File {
	return &File{Root: dir}
}

func (f *File) Fetch(ctx context.Context, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := strings.TrimPrefix(uri, "file://")
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", uri, err)
	}

	return string(data), nil
}
