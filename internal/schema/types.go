package schema

import (
	"errors"
	"fmt"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
)

// AnnotateDirective is the only directive a schema may use
const AnnotateDirective = "annotate"

// ErrAnnotation is returned when an @annotate directive cannot be read
var ErrAnnotation = errors.New("invalid @annotate directive")

// extractType translates a GraphQL type reference into its ABI form
func extractType(doc *ast.Document, typeRef int, registry Registry) abi.OptionalType {
	typ := doc.Types[typeRef]

	switch typ.TypeKind {
	case ast.TypeKindNonNull:
		inner := extractType(doc, typ.OfType, registry)
		inner.Required = true
		return inner
	case ast.TypeKindList:
		return abi.OptionalType{Type: abi.NewArray(extractType(doc, typ.OfType, registry))}
	}

	name := doc.Input.ByteSliceString(typ.Name)
	return abi.OptionalType{Type: namedType(name, registry)}
}

func namedType(name string, registry Registry) abi.AnyType {
	if abi.IsScalar(name) {
		return abi.NewScalar(name)
	}
	if kind, ok := registry.Lookup(name); ok {
		return abi.NewRef(kind, name)
	}
	return abi.NewUnlinkedRef(name)
}

// resolveType returns the ABI type of a field or argument. An @annotate(type: "...") directive
// overrides the declared type; nullability always comes from the declaration.
func resolveType(doc *ast.Document, typeRef int, directives ast.DirectiveList, registry Registry) (bool, abi.AnyType, error) {
	declared := extractType(doc, typeRef, registry)

	annotated, ok, err := annotation(doc, directives, registry)
	if err != nil {
		return false, nil, err
	}
	if ok {
		return declared.Required, annotated.Type, nil
	}

	return declared.Required, declared.Type, nil
}

// annotation reads the type argument of an @annotate directive, if present
func annotation(doc *ast.Document, directives ast.DirectiveList, registry Registry) (abi.OptionalType, bool, error) {
	for _, directiveRef := range directives.Refs {
		directive := doc.Directives[directiveRef]
		if doc.Input.ByteSliceString(directive.Name) != AnnotateDirective {
			continue
		}

		for _, argRef := range directive.Arguments.Refs {
			arg := doc.Arguments[argRef]
			if doc.Input.ByteSliceString(arg.Name) != "type" {
				continue
			}

			value := doc.ArgumentValue(argRef)
			if value.Kind != ast.ValueKindString {
				return abi.OptionalType{}, false, fmt.Errorf("%w: type argument must be a string", ErrAnnotation)
			}

			typ, err := abi.ParseTypeExpression(doc.StringValueContentString(value.Ref), registry.Lookup)
			if err != nil {
				return abi.OptionalType{}, false, fmt.Errorf("%w: %w", ErrAnnotation, err)
			}
			return typ, true, nil
		}

		return abi.OptionalType{}, false, fmt.Errorf("%w: missing type argument", ErrAnnotation)
	}

	return abi.OptionalType{}, false, nil
}
