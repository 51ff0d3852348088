package imports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/abiparse/internal/testutil"
)

func TestResolveTree_TransitiveImport(t *testing.T) {
	// Test plan:
	// - Root imports Foo from a.graphql
	// - a.graphql's Foo references Bar, imported from b.graphql
	// - The tree has root -> a -> b, and b is a dependency of a

	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import { Bar } into B from "b.graphql"

type Foo {
  bar: B_Bar!
}`,
		"b.graphql": `
type Bar {
  id: String!
}`,
	})

	root := `#import { Foo } into A from "a.graphql"

type Query {
  foo: A_Foo
}`

	tree, err := ResolveTree(context.Background(), root, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{RootURI, "a.graphql", "b.graphql"}, tree.Nodes())
	assert.Equal(t, []string{"a.graphql"}, tree.Dependencies(RootURI))
	assert.Equal(t, []string{"b.graphql"}, tree.Dependencies("a.graphql"))
	assert.Contains(t, tree.AllDependencies(RootURI), "a.graphql")
	assert.Contains(t, tree.AllDependencies("a.graphql"), "b.graphql")

	schema, ok := tree.Schema("b.graphql")
	require.True(t, ok)
	assert.Contains(t, schema, "type Bar")
}

func TestResolveTree_BareReference(t *testing.T) {
	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import { Bar } into B from "b.graphql"

type Foo {
  bar: Bar
}`,
		"b.graphql": `type Bar { id: String }`,
	})

	tree, err := ResolveTree(context.Background(), `#import { Foo } into A from "a.graphql"`, fetcher)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.graphql"}, tree.Dependencies("a.graphql"))
}

func TestResolveTree_OnlyDefsOfInterest(t *testing.T) {
	// Test plan:
	// - a.graphql declares Foo and Unused; only Foo is imported
	// - Unused references c.graphql, which must not be fetched
	// - Function arguments of imported types count as references

	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import { Bar } into B from "b.graphql"
#import { Baz } into C from "c.graphql"

type Foo {
  items(filter: B_Bar): [String!]!
}

type Unused {
  baz: C_Baz
}`,
		"b.graphql": `type Bar { id: String }`,
		"c.graphql": `type Baz { id: String }`,
	})

	tree, err := ResolveTree(context.Background(), `#import { Foo } into A from "a.graphql"`, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.graphql"}, tree.Dependencies("a.graphql"))
	assert.False(t, tree.HasNode("c.graphql"))
	assert.Zero(t, fetcher.Calls("c.graphql"))
}

func TestResolveTree_ImplementedInterface(t *testing.T) {
	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import { Iface } into B from "b.graphql"
type Foo implements B_Iface { x: String }`,
		"b.graphql": `interface Iface { x: String }`,
	})

	tree, err := ResolveTree(context.Background(), `#import { Foo } into A from "a.graphql"`, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.graphql"}, tree.Dependencies("a.graphql"))
	assert.Equal(t, []string{"a.graphql", "b.graphql"}, tree.AllDependencies("a.graphql"))
}

func TestResolveTree_Wildcard(t *testing.T) {
	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import * into B from "b.graphql"

type Foo { bar: B_Bar }
type Other { baz: B_Baz }`,
		"b.graphql": `
#import { Deep } into C from "c.graphql"

type Bar { id: String }
type Baz { deep: C_Deep }`,
		"c.graphql": `type Deep { id: String }`,
	})

	tree, err := ResolveTree(context.Background(), `#import * into A from "a.graphql"`, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.graphql"}, tree.Dependencies("a.graphql"))
	assert.Equal(t, []string{"c.graphql"}, tree.Dependencies("b.graphql"))
}

func TestResolveTree_Cycle(t *testing.T) {
	// Test plan:
	// - a.Foo needs b.Bar and b.Bar needs a.Foo
	// - Resolution terminates and records both edges
	// - Each schema is fetched once

	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import { Bar } into B from "b.graphql"
type Foo { bar: B_Bar }`,
		"b.graphql": `
#import { Foo } into A from "a.graphql"
type Bar { foo: A_Foo }`,
	})

	tree, err := ResolveTree(context.Background(), `#import { Foo } into A from "a.graphql"`, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.graphql"}, tree.Dependencies("a.graphql"))
	assert.Equal(t, []string{"a.graphql"}, tree.Dependencies("b.graphql"))
	assert.Equal(t, 1, fetcher.Calls("a.graphql"))
	assert.Equal(t, 1, fetcher.Calls("b.graphql"))
}

func TestResolveTree_SharedSchemaDifferentTypes(t *testing.T) {
	// Two imports of the same uri with different types both get scanned
	fetcher := testutil.NewSchemaFetcher(map[string]string{
		"a.graphql": `
#import { Shared } into S from "s.graphql"
type Foo { s: S_Shared }`,
		"b.graphql": `
#import { Other } into S from "s.graphql"
type Bar { o: S_Other }`,
		"s.graphql": `
#import { Leaf } into L from "l.graphql"
type Shared { id: String }
type Other { leaf: L_Leaf }`,
		"l.graphql": `type Leaf { id: String }`,
	})

	root := `
#import { Foo } into A from "a.graphql"
#import { Bar } into B from "b.graphql"`

	tree, err := ResolveTree(context.Background(), root, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.graphql", "b.graphql"}, tree.Dependencies(RootURI))
	assert.Equal(t, []string{"l.graphql"}, tree.Dependencies("s.graphql"))
	assert.Equal(t, 1, fetcher.Calls("s.graphql"))
}

func TestResolveTree_Deterministic(t *testing.T) {
	schemas := map[string]string{
		"a.graphql": `
#import { Bar } into B from "b.graphql"
#import { Baz } into C from "c.graphql"
type Foo { bar: B_Bar baz: [C_Baz!] }`,
		"b.graphql": `type Bar { id: String }`,
		"c.graphql": `type Baz { id: String }`,
	}
	root := `#import { Foo } into A from "a.graphql"`

	first, err := ResolveTree(context.Background(), root, testutil.NewSchemaFetcher(schemas))
	require.NoError(t, err)
	second, err := ResolveTree(context.Background(), root, testutil.NewSchemaFetcher(schemas))
	require.NoError(t, err)

	assert.Equal(t, first.Nodes(), second.Nodes())
	assert.Equal(t, first.Edges(), second.Edges())
	assert.Equal(t, []string{"b.graphql", "c.graphql"}, first.Dependencies("a.graphql"))
}

func TestResolveTree_NoImports(t *testing.T) {
	tree, err := ResolveTree(context.Background(), `type Query { ok: Boolean }`, testutil.NewSchemaFetcher(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{RootURI}, tree.Nodes())
}

func TestResolveTree_Errors(t *testing.T) {
	t.Run("fetch error is returned unchanged", func(t *testing.T) {
		fetchErr := errors.New("connection refused")
		fetcher := FetcherFunc(func(context.Context, string) (string, error) {
			return "", fetchErr
		})

		_, err := ResolveTree(context.Background(), `#import { Foo } into A from "a.graphql"`, fetcher)
		assert.Same(t, fetchErr, err)
	})

	t.Run("invalid root statements", func(t *testing.T) {
		root := `
#import { Foo } into A from "a.graphql"
#import { Bar } into A from "b.graphql"`

		_, err := ResolveTree(context.Background(), root, testutil.NewSchemaFetcher(nil))
		assert.ErrorIs(t, err, ErrDuplicateNamespace)
	})

	t.Run("invalid imported schema", func(t *testing.T) {
		fetcher := testutil.NewSchemaFetcher(map[string]string{
			"a.graphql": `
#import { Bar } into B from "b.graphql"
type Foo { bar: B_Bar`,
		})

		_, err := ResolveTree(context.Background(), `#import { Foo } into A from "a.graphql"`, fetcher)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ResolveTree(ctx, `#import { Foo } into A from "a.graphql"`, testutil.NewSchemaFetcher(nil))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRequiredImports(t *testing.T) {
	schema := `
#import { Bar, Qux } into B from "b.graphql"
#import { Baz } into C from "c.graphql"

type Foo {
  qux: B_Qux
  baz: C_Baz
  bar: [B_Bar!]!
  again: B_Qux
}`

	got, err := RequiredImports(schema, []string{"Foo"})
	require.NoError(t, err)

	assert.Equal(t, []ExternalImport{
		{Namespace: "B", URIOrPath: "b.graphql", ImportedTypes: []string{"Qux", "Bar"}},
		{Namespace: "C", URIOrPath: "c.graphql", ImportedTypes: []string{"Baz"}},
	}, got)
}

func TestRequiredImports_InterfacesBeforeFields(t *testing.T) {
	schema := `
#import { Iface, Bar } into B from "b.graphql"
type Foo implements B_Iface { bar: Bar }`

	got, err := RequiredImports(schema, []string{"Foo"})
	require.NoError(t, err)

	assert.Equal(t, []ExternalImport{
		{Namespace: "B", URIOrPath: "b.graphql", ImportedTypes: []string{"Iface", "Bar"}},
	}, got)
}
