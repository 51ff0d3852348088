package abi

import "strings"

// TypeKind tags the variants of AnyType
type TypeKind string

const (
	TypeScalar      TypeKind = "Scalar"
	TypeRef         TypeKind = "Ref"
	TypeUnlinkedRef TypeKind = "UnlinkedRef"
	TypeArray       TypeKind = "Array"
	TypeMap         TypeKind = "Map"
)

// AnyType is a resolved type expression
type AnyType interface {
	TypeKind() TypeKind
	String() string
}

// ScalarType is one of the built-in scalars
type ScalarType struct {
	Kind   TypeKind `json:"kind" yaml:"kind"`
	Scalar string   `json:"scalar" yaml:"scalar"`
}

// RefType references an object or enum declared in the same schema
type RefType struct {
	Kind    TypeKind      `json:"kind" yaml:"kind"`
	RefKind UniqueDefKind `json:"ref_kind" yaml:"ref_kind"`
	RefName string        `json:"ref_name" yaml:"ref_name"`
}

// UnlinkedRefType references a type declared elsewhere, typically an imported one
type UnlinkedRefType struct {
	Kind    TypeKind `json:"kind" yaml:"kind"`
	RefName string   `json:"ref_name" yaml:"ref_name"`
}

// ArrayType is a list of Item
type ArrayType struct {
	Kind TypeKind     `json:"kind" yaml:"kind"`
	Item OptionalType `json:"item" yaml:"item"`
}

// MapType maps a scalar Key to Value
type MapType struct {
	Kind  TypeKind     `json:"kind" yaml:"kind"`
	Key   ScalarType   `json:"key" yaml:"key"`
	Value OptionalType `json:"value" yaml:"value"`
}

// OptionalType pairs a type with its nullability
type OptionalType struct {
	Required bool    `json:"required" yaml:"required"`
	Type     AnyType `json:"type" yaml:"type"`
}

func NewScalar(name string) ScalarType {
	return ScalarType{Kind: TypeScalar, Scalar: name}
}

func NewRef(kind UniqueDefKind, name string) RefType {
	return RefType{Kind: TypeRef, RefKind: kind, RefName: name}
}

func NewUnlinkedRef(name string) UnlinkedRefType {
	return UnlinkedRefType{Kind: TypeUnlinkedRef, RefName: name}
}

func NewArray(item OptionalType) ArrayType {
	return ArrayType{Kind: TypeArray, Item: item}
}

func NewMap(key ScalarType, value OptionalType) MapType {
	return MapType{Kind: TypeMap, Key: key, Value: value}
}

func (t ScalarType) TypeKind() TypeKind      { return TypeScalar }
func (t RefType) TypeKind() TypeKind         { return TypeRef }
func (t UnlinkedRefType) TypeKind() TypeKind { return TypeUnlinkedRef }
func (t ArrayType) TypeKind() TypeKind       { return TypeArray }
func (t MapType) TypeKind() TypeKind         { return TypeMap }

func (t ScalarType) String() string      { return t.Scalar }
func (t RefType) String() string         { return t.RefName }
func (t UnlinkedRefType) String() string { return t.RefName }
func (t ArrayType) String() string       { return "[" + t.Item.String() + "]" }
func (t MapType) String() string {
	return "Map<" + t.Key.String() + ", " + t.Value.String() + ">"
}

// String renders the type in schema notation, e.g. "[Int!]"
func (o OptionalType) String() string {
	var sb strings.Builder
	if o.Type != nil {
		sb.WriteString(o.Type.String())
	}
	if o.Required {
		sb.WriteString("!")
	}
	return sb.String()
}
