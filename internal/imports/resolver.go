package imports

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

// Fetcher loads the raw schema stored at a uri or path
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (string, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, uri string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, uri string) (string, error) {
	return f(ctx, uri)
}

// Resolver builds the dependency tree of a schema's external imports
type Resolver struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the resolver's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver that loads imported schemas through fetcher
func NewResolver(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveTree resolves rootSchema's imports with a default Resolver
func ResolveTree(ctx context.Context, rootSchema string, fetcher Fetcher) (*DependencyTree, error) {
	return NewResolver(fetcher).Resolve(ctx, rootSchema)
}

// Resolve fetches every externally imported schema, and transitively every schema those imports
// need, into a tree rooted at RootURI. Fetch errors are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, rootSchema string) (*DependencyTree, error) {
	externals, err := ParseExternal(rootSchema)
	if err != nil {
		return nil, err
	}

	res := &resolution{
		fetcher:  r.fetcher,
		logger:   r.logger.With().Str("resolution", ksuid.New().String()).Logger(),
		tree:     NewDependencyTree(),
		resolved: make(map[string]map[string]bool),
	}
	res.tree.AddNode(RootURI, rootSchema)

	for _, ext := range externals {
		if err := res.resolve(ctx, RootURI, ext.URIOrPath, ext.ImportedTypes); err != nil {
			return nil, err
		}
	}

	res.logger.Debug().
		Int("nodes", res.tree.Len()).
		Int("fetches", res.fetches).
		Msg("resolved import tree")

	return res.tree, nil
}

// resolution is the state of a single Resolve call
type resolution struct {
	fetcher Fetcher
	logger  zerolog.Logger
	tree    *DependencyTree
	fetches int

	// resolved tracks which types of each uri have been scanned already.
	// It bounds the recursion when imports form a cycle.
	resolved map[string]map[string]bool
}

func (res *resolution) resolve(ctx context.Context, parent, uri string, types []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	schema, err := res.load(ctx, uri)
	if err != nil {
		return err
	}
	if err := res.tree.AddEdge(parent, uri); err != nil {
		return err
	}

	pending := res.pending(uri, types)
	if len(pending) == 0 {
		return nil
	}

	required, err := RequiredImports(schema, pending)
	if err != nil {
		return err
	}

	res.logger.Debug().
		Str("uri", uri).
		Strs("types", pending).
		Int("required", len(required)).
		Msg("scanned imported schema")

	for _, req := range required {
		if err := res.resolve(ctx, uri, req.URIOrPath, req.ImportedTypes); err != nil {
			return err
		}
	}

	return nil
}

// load returns the schema for uri, fetching it only the first time it is seen
func (res *resolution) load(ctx context.Context, uri string) (string, error) {
	if schema, ok := res.tree.Schema(uri); ok {
		return schema, nil
	}

	res.logger.Debug().Str("uri", uri).Msg("fetching schema")
	schema, err := res.fetcher.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	res.fetches++

	res.tree.AddNode(uri, schema)
	return schema, nil
}

// pending marks types as resolved for uri and returns the ones that were not yet
func (res *resolution) pending(uri string, types []string) []string {
	done, ok := res.resolved[uri]
	if !ok {
		done = make(map[string]bool)
		res.resolved[uri] = done
	}
	if done[Wildcard] {
		return nil
	}

	var pending []string
	for _, t := range types {
		if !done[t] {
			done[t] = true
			pending = append(pending, t)
		}
	}
	return pending
}
