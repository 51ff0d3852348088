package commands

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/okra-platform/abiparse/internal/imports"
)

// Watch rebuilds the ABI whenever a schema file below the schema's directory changes.
// A failed rebuild is logged and watching continues.
func (c *Controller) Watch(ctx context.Context, schemaPath string) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	if schemaPath == "" {
		schemaPath = p.config.Schema
	}

	format, err := abi.ParseFormat(p.config.Format)
	if err != nil {
		return err
	}

	fetcher, err := p.fetcher(c.Logger)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()

		if err := c.rebuild(ctx, schemaPath, format, p.config.Output, fetcher); err != nil {
			c.Logger.Error().Err(err).Str("schema", schemaPath).Msg("rebuild failed")
		}
	}

	rebuild()

	watcher, err := NewFileWatcher(p.config.Watch.Patterns, p.config.Watch.Exclude, c.Logger, func(path string, op fsnotify.Op) {
		if !op.Has(fsnotify.Write) && !op.Has(fsnotify.Create) && !op.Has(fsnotify.Remove) && !op.Has(fsnotify.Rename) {
			return
		}

		c.Logger.Info().Str("path", path).Str("op", op.String()).Msg("schema changed")

		// Imported schemas on disk may have changed too
		if cache, ok := fetcher.(interface{ Purge() }); ok {
			cache.Purge()
		}
		rebuild()
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(schemaPath)
	if err := watcher.AddDirectory(dir); err != nil {
		return err
	}

	c.Logger.Info().Str("dir", dir).Msg("watching for changes")

	err = watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// rebuild parses the schema, resolves its imports so broken imports surface early, then writes the ABI
func (c *Controller) rebuild(ctx context.Context, schemaPath string, format abi.Format, output string, fetcher imports.Fetcher) error {
	result, err := parseFile(schemaPath)
	if err != nil {
		return err
	}

	tree, err := c.resolveFile(ctx, schemaPath, fetcher)
	if err != nil {
		return err
	}
	c.Logger.Debug().Int("schemas", tree.Len()).Msg("imports resolved")

	return c.writeAbi(result, format, output)
}
