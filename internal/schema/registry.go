package schema

import (
	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
)

// Registry maps every user-declared object and enum name to its kind.
// It is built once per document and never modified afterwards.
type Registry struct {
	defs map[string]abi.UniqueDefKind
}

// BuildRegistry scans the top-level declarations of doc. Module types are left out.
func BuildRegistry(doc *ast.Document) Registry {
	defs := make(map[string]abi.UniqueDefKind)

	for i := range doc.RootNodes {
		node := doc.RootNodes[i]
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			name := doc.Input.ByteSliceString(doc.ObjectTypeDefinitions[node.Ref].Name)
			if !abi.IsModuleType(name) {
				defs[name] = abi.UniqueObject
			}
		case ast.NodeKindEnumTypeDefinition:
			name := doc.Input.ByteSliceString(doc.EnumTypeDefinitions[node.Ref].Name)
			defs[name] = abi.UniqueEnum
		}
	}

	return Registry{defs: defs}
}

// Lookup returns the kind of a declared type
func (r Registry) Lookup(name string) (abi.UniqueDefKind, bool) {
	kind, ok := r.defs[name]
	return kind, ok
}

// Len returns the number of declared types
func (r Registry) Len() int {
	return len(r.defs)
}
