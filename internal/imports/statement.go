// Package imports parses schema import statements and resolves the external import graph
package imports

import "github.com/okra-platform/abiparse/internal/abi"

// Statement is an import statement found in a schema
type Statement interface {
	Kind() abi.ImportKind
	Types() []string
	Source() string
}

// ExternalImport is `import { A, B } into Namespace from "uri"`
type ExternalImport struct {
	ImportedTypes []string `json:"importedTypes"`
	Namespace     string   `json:"namespace"`
	URIOrPath     string   `json:"uri"`
}

// LocalImport is `import { A, B } from "./path.graphql"`
type LocalImport struct {
	ImportedTypes []string `json:"importedTypes"`
	URIOrPath     string   `json:"uri"`
}

func (i ExternalImport) Kind() abi.ImportKind { return abi.ImportExternal }
func (i ExternalImport) Types() []string      { return i.ImportedTypes }
func (i ExternalImport) Source() string       { return i.URIOrPath }

func (i LocalImport) Kind() abi.ImportKind { return abi.ImportLocal }
func (i LocalImport) Types() []string      { return i.ImportedTypes }
func (i LocalImport) Source() string       { return i.URIOrPath }

// IsWildcard reports whether the statement imports every type with `*`
func IsWildcard(s Statement) bool {
	for _, t := range s.Types() {
		if t == Wildcard {
			return true
		}
	}
	return false
}

// Imports reports whether the statement brings typeName in, either by name or via `*`
func Imports(s Statement, typeName string) bool {
	for _, t := range s.Types() {
		if t == typeName || t == Wildcard {
			return true
		}
	}
	return false
}

// ToDef converts a statement into its ABI record
func ToDef(s Statement) abi.ImportedDef {
	def := abi.ImportedDef{
		Kind:  s.Kind(),
		URI:   s.Source(),
		Types: append([]string(nil), s.Types()...),
	}
	if ext, ok := s.(ExternalImport); ok {
		def.Namespace = ext.Namespace
	}
	return def
}
