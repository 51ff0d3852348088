package schema

import (
	"fmt"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astvisitor"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/operationreport"
)

// Extractor fills one part of the Abi. Register hooks its callbacks into the shared walk.
type Extractor interface {
	Register(e *Extraction)
}

// DefaultExtractors returns the object, enum and function extractors
func DefaultExtractors() []Extractor {
	return []Extractor{
		ObjectExtractor{},
		EnumExtractor{},
		FunctionExtractor{},
	}
}

// Extraction is the state shared by all extractors during one document walk
type Extraction struct {
	Walker   *astvisitor.Walker
	Document *ast.Document
	Registry Registry
	Abi      *abi.Abi

	err error
}

// Fail stops the walk. The first error wins.
func (e *Extraction) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.Walker.StopWithInternalErr(err)
}

// Extract walks doc once with every extractor registered and fills out
func Extract(doc *ast.Document, registry Registry, out *abi.Abi, extractors ...Extractor) error {
	walker := astvisitor.NewWalker(48)
	e := &Extraction{
		Walker:   &walker,
		Document: doc,
		Registry: registry,
		Abi:      out,
	}

	for _, extractor := range extractors {
		extractor.Register(e)
	}

	report := operationreport.Report{}
	walker.Walk(doc, nil, &report)

	if e.err != nil {
		return e.err
	}
	if report.HasErrors() {
		return fmt.Errorf("failed to walk schema: %v", report)
	}
	return nil
}

// ObjectExtractor turns every non-module object type into an ObjectDef
type ObjectExtractor struct{}

func (ObjectExtractor) Register(e *Extraction) {
	e.Walker.RegisterEnterObjectTypeDefinitionVisitor(&objectVisitor{e})
}

type objectVisitor struct {
	*Extraction
}

func (v *objectVisitor) EnterObjectTypeDefinition(ref int) {
	doc := v.Document
	typeDef := doc.ObjectTypeDefinitions[ref]
	typeName := doc.Input.ByteSliceString(typeDef.Name)

	// Module types hold functions, not properties
	if abi.IsModuleType(typeName) {
		return
	}

	def := abi.ObjectDef{
		Kind:  abi.KindObject,
		Name:  typeName,
		Props: []abi.PropertyDef{},
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := doc.FieldDefinitions[fieldRef]
		fieldName := doc.Input.ByteSliceString(fieldDef.Name)

		required, typ, err := resolveType(doc, fieldDef.Type, fieldDef.Directives, v.Registry)
		if err != nil {
			v.Fail(fmt.Errorf("%s.%s: %w", typeName, fieldName, err))
			return
		}

		def.Props = append(def.Props, abi.PropertyDef{
			Kind:     abi.KindProperty,
			Name:     fieldName,
			Required: required,
			Type:     typ,
		})
	}

	v.Abi.Objects = append(v.Abi.Objects, def)
}

// EnumExtractor turns every enum into an EnumDef
type EnumExtractor struct{}

func (EnumExtractor) Register(e *Extraction) {
	e.Walker.RegisterEnterEnumTypeDefinitionVisitor(&enumVisitor{e})
}

type enumVisitor struct {
	*Extraction
}

func (v *enumVisitor) EnterEnumTypeDefinition(ref int) {
	doc := v.Document
	enumDef := doc.EnumTypeDefinitions[ref]

	def := abi.EnumDef{
		Kind:      abi.KindEnum,
		Name:      doc.Input.ByteSliceString(enumDef.Name),
		Constants: []string{},
	}

	for _, valueRef := range enumDef.EnumValuesDefinition.Refs {
		valueDef := doc.EnumValueDefinitions[valueRef]
		def.Constants = append(def.Constants, doc.Input.ByteSliceString(valueDef.EnumValue))
	}

	v.Abi.Enums = append(v.Abi.Enums, def)
}

// FunctionExtractor turns the fields of the Module type into FunctionDefs.
// Imported modules (Namespace_Module) are linked elsewhere and skipped here.
type FunctionExtractor struct{}

func (FunctionExtractor) Register(e *Extraction) {
	e.Walker.RegisterEnterObjectTypeDefinitionVisitor(&functionVisitor{e})
}

type functionVisitor struct {
	*Extraction
}

func (v *functionVisitor) EnterObjectTypeDefinition(ref int) {
	doc := v.Document
	typeDef := doc.ObjectTypeDefinitions[ref]
	if doc.Input.ByteSliceString(typeDef.Name) != abi.ModuleTypeName {
		return
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fn, err := v.function(fieldRef)
		if err != nil {
			v.Fail(err)
			return
		}
		v.Abi.Functions = append(v.Abi.Functions, fn)
	}
}

func (v *functionVisitor) function(fieldRef int) (abi.FunctionDef, error) {
	doc := v.Document
	fieldDef := doc.FieldDefinitions[fieldRef]
	name := doc.Input.ByteSliceString(fieldDef.Name)

	fn := abi.FunctionDef{
		Kind: abi.KindFunction,
		Name: name,
	}

	for _, argRef := range fieldDef.ArgumentsDefinition.Refs {
		argDef := doc.InputValueDefinitions[argRef]
		argName := doc.Input.ByteSliceString(argDef.Name)

		required, typ, err := resolveType(doc, argDef.Type, argDef.Directives, v.Registry)
		if err != nil {
			return fn, fmt.Errorf("%s.%s(%s): %w", abi.ModuleTypeName, name, argName, err)
		}

		fn.Args = append(fn.Args, abi.ArgumentDef{
			Kind:     abi.KindArgument,
			Name:     argName,
			Required: required,
			Type:     typ,
		})
	}

	required, typ, err := resolveType(doc, fieldDef.Type, fieldDef.Directives, v.Registry)
	if err != nil {
		return fn, fmt.Errorf("%s.%s: %w", abi.ModuleTypeName, name, err)
	}
	fn.Result = abi.ResultDef{
		Kind:     abi.KindResult,
		Required: required,
		Type:     typ,
	}

	return fn, nil
}
