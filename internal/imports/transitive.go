package imports

import (
	"fmt"
	"strings"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// RequiredImports returns the external imports of schema that the given definitions actually use.
// Each returned statement only lists the types referenced from defs, in order of first reference.
// A def of "*" selects every object type in the schema.
func RequiredImports(schema string, defs []string) ([]ExternalImport, error) {
	externals, err := ParseExternal(schema)
	if err != nil {
		return nil, err
	}
	if len(externals) == 0 {
		return nil, nil
	}

	doc, report := astparser.ParseGraphqlDocumentString(StripStatements(schema))
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	var (
		required []ExternalImport
		index    = make(map[string]int)
		seen     = make(map[string]bool)
	)

	for _, name := range referencedTypes(&doc, defs) {
		for _, ext := range externals {
			imported, ok := matchImport(ext, name)
			if !ok {
				continue
			}

			key := ext.URIOrPath + "\x00" + imported
			if seen[key] {
				continue
			}
			seen[key] = true

			i, ok := index[ext.URIOrPath]
			if !ok {
				i = len(required)
				index[ext.URIOrPath] = i
				required = append(required, ExternalImport{
					Namespace: ext.Namespace,
					URIOrPath: ext.URIOrPath,
				})
			}
			required[i].ImportedTypes = append(required[i].ImportedTypes, imported)
		}
	}

	return required, nil
}

// matchImport checks a type reference against an import statement. References may use the
// bare imported name or the namespaced form; the returned name is the one in the imported schema.
func matchImport(ext ExternalImport, reference string) (string, bool) {
	for _, t := range ext.ImportedTypes {
		if t == reference {
			return reference, true
		}
	}

	name, ok := strings.CutPrefix(reference, abi.Namespaced(ext.Namespace, ""))
	if !ok {
		return "", false
	}
	if Imports(ext, name) {
		return name, true
	}
	return "", false
}

// referencedTypes collects the named types used by the selected objects: implemented interfaces,
// field arguments and field types, in source order
func referencedTypes(doc *ast.Document, defs []string) []string {
	interest := make(map[string]bool, len(defs))
	for _, def := range defs {
		interest[def] = true
	}

	var (
		names []string
		seen  = make(map[string]bool)
	)
	add := func(typeRef int) {
		name := namedType(doc, typeRef)
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for i := range doc.RootNodes {
		node := doc.RootNodes[i]
		if node.Kind != ast.NodeKindObjectTypeDefinition {
			continue
		}

		typeDef := doc.ObjectTypeDefinitions[node.Ref]
		typeName := doc.Input.ByteSliceString(typeDef.Name)
		if !interest[Wildcard] && !interest[typeName] {
			continue
		}

		for _, interfaceRef := range typeDef.ImplementsInterfaces.Refs {
			add(interfaceRef)
		}

		for _, fieldRef := range typeDef.FieldsDefinition.Refs {
			fieldDef := doc.FieldDefinitions[fieldRef]
			for _, argRef := range fieldDef.ArgumentsDefinition.Refs {
				add(doc.InputValueDefinitions[argRef].Type)
			}
			add(fieldDef.Type)
		}
	}

	return names
}

// namedType unwraps list and non-null wrappers
func namedType(doc *ast.Document, typeRef int) string {
	for typeRef >= 0 && typeRef < len(doc.Types) {
		typ := doc.Types[typeRef]
		if typ.TypeKind == ast.TypeKindNamed {
			return doc.Input.ByteSliceString(typ.Name)
		}
		typeRef = typ.OfType
	}
	return ""
}
