package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/abiparse/internal/imports"
)

// Imports resolves the dependency tree of each schema file and prints it.
// Roots are resolved concurrently and share one fetch cache.
func (c *Controller) Imports(ctx context.Context, schemaPaths []string) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	if len(schemaPaths) == 0 {
		schemaPaths = []string{p.config.Schema}
	}

	fetcher, err := p.fetcher(c.Logger)
	if err != nil {
		return err
	}

	trees := make([]*imports.DependencyTree, len(schemaPaths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range schemaPaths {
		g.Go(func() error {
			tree, err := c.resolveFile(ctx, path, fetcher)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := c.stdout()
	for i, tree := range trees {
		if err := writeTree(out, schemaPaths[i], tree); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) resolveFile(ctx context.Context, path string, fetcher imports.Fetcher) (*imports.DependencyTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	resolver := imports.NewResolver(fetcher, imports.WithLogger(c.Logger.With().Str("schema", path).Logger()))
	tree, err := resolver.Resolve(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve imports of %s: %w", path, err)
	}
	return tree, nil
}

// writeTree prints one line per node, followed by its direct dependencies
func writeTree(w io.Writer, name string, tree *imports.DependencyTree) error {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString("\n")
	for _, uri := range tree.Nodes() {
		sb.WriteString("  ")
		sb.WriteString(uri)
		if deps := tree.Dependencies(uri); len(deps) > 0 {
			sb.WriteString(" -> ")
			sb.WriteString(strings.Join(deps, ", "))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
