package imports

import (
	"fmt"
	"sort"
)

// RootURI is the node key of the schema a resolution starts from
const RootURI = "$root"

// DependencyTree is a directed graph of schemas keyed by uri or path.
// Nodes hold the raw schema text, edges point at the schemas a node imports from.
type DependencyTree struct {
	nodes map[string]string
	edges map[string][]string
}

// NewDependencyTree creates an empty tree
func NewDependencyTree() *DependencyTree {
	return &DependencyTree{
		nodes: make(map[string]string),
		edges: make(map[string][]string),
	}
}

// AddNode registers a schema under uri. Re-adding a node replaces its schema and keeps its edges.
func (t *DependencyTree) AddNode(uri, schema string) {
	t.nodes[uri] = schema
	if _, ok := t.edges[uri]; !ok {
		t.edges[uri] = []string{}
	}
}

// AddEdge records that from imports from to. Both nodes must exist; duplicate edges are ignored.
func (t *DependencyTree) AddEdge(from, to string) error {
	if !t.HasNode(from) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	if !t.HasNode(to) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}

	for _, existing := range t.edges[from] {
		if existing == to {
			return nil
		}
	}
	t.edges[from] = append(t.edges[from], to)
	return nil
}

// HasNode reports whether uri has been registered
func (t *DependencyTree) HasNode(uri string) bool {
	_, ok := t.nodes[uri]
	return ok
}

// Schema returns the raw schema stored for uri
func (t *DependencyTree) Schema(uri string) (string, bool) {
	schema, ok := t.nodes[uri]
	return schema, ok
}

// Dependencies returns the direct imports of uri in insertion order
func (t *DependencyTree) Dependencies(uri string) []string {
	return append([]string(nil), t.edges[uri]...)
}

// Nodes returns every registered uri, sorted
func (t *DependencyTree) Nodes() []string {
	uris := make([]string, 0, len(t.nodes))
	for uri := range t.nodes {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Len returns the number of nodes
func (t *DependencyTree) Len() int {
	return len(t.nodes)
}

// AllDependencies returns every uri reachable from seeds, seeds included, in breadth-first order
func (t *DependencyTree) AllDependencies(seeds ...string) []string {
	visited := make(map[string]bool)
	queue := make([]string, 0, len(seeds))
	var result []string

	for _, uri := range seeds {
		if !visited[uri] {
			visited[uri] = true
			queue = append(queue, uri)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dep := range t.edges[current] {
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	return result
}

// Edges returns a copy of the adjacency lists
func (t *DependencyTree) Edges() map[string][]string {
	edges := make(map[string][]string, len(t.edges))
	for uri, deps := range t.edges {
		edges[uri] = append([]string{}, deps...)
	}
	return edges
}
