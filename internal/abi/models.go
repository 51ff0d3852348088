// Package abi defines the application binary interface produced from a schema
package abi

// Version is the ABI format version written into every Abi
const Version = "0.2"

// DefKind tags every definition in the ABI
type DefKind string

const (
	KindObject   DefKind = "Object"
	KindEnum     DefKind = "Enum"
	KindFunction DefKind = "Function"
	KindProperty DefKind = "Property"
	KindArgument DefKind = "Argument"
	KindResult   DefKind = "Result"
)

// UniqueDefKind is the kind of a user-declared type name
type UniqueDefKind string

const (
	UniqueObject UniqueDefKind = "Object"
	UniqueEnum   UniqueDefKind = "Enum"
)

// Abi is the root of an extracted schema. Empty collections stay nil.
type Abi struct {
	Version   string        `json:"version" yaml:"version"`
	Objects   []ObjectDef   `json:"objects,omitempty" yaml:"objects,omitempty"`
	Enums     []EnumDef     `json:"enums,omitempty" yaml:"enums,omitempty"`
	Functions []FunctionDef `json:"functions,omitempty" yaml:"functions,omitempty"`
	Imports   []ImportedDef `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// New returns an empty Abi at the current Version
func New() *Abi {
	return &Abi{Version: Version}
}

// ObjectDef represents a top-level "type" block
type ObjectDef struct {
	Kind  DefKind       `json:"kind" yaml:"kind"`
	Name  string        `json:"name" yaml:"name"`
	Props []PropertyDef `json:"props" yaml:"props"`
}

// PropertyDef represents a field inside an object
type PropertyDef struct {
	Kind     DefKind `json:"kind" yaml:"kind"`
	Name     string  `json:"name" yaml:"name"`
	Required bool    `json:"required" yaml:"required"`
	Type     AnyType `json:"type" yaml:"type"`
}

// EnumDef represents an enum definition
type EnumDef struct {
	Kind      DefKind  `json:"kind" yaml:"kind"`
	Name      string   `json:"name" yaml:"name"`
	Constants []string `json:"constants" yaml:"constants"`
}

// FunctionDef represents a callable operation declared on a module type
type FunctionDef struct {
	Kind   DefKind       `json:"kind" yaml:"kind"`
	Name   string        `json:"name" yaml:"name"`
	Args   []ArgumentDef `json:"args,omitempty" yaml:"args,omitempty"`
	Result ResultDef     `json:"result" yaml:"result"`
}

// ArgumentDef represents a single function argument
type ArgumentDef struct {
	Kind     DefKind `json:"kind" yaml:"kind"`
	Name     string  `json:"name" yaml:"name"`
	Required bool    `json:"required" yaml:"required"`
	Type     AnyType `json:"type" yaml:"type"`
}

// ResultDef represents a function's return value
type ResultDef struct {
	Kind     DefKind `json:"kind" yaml:"kind"`
	Required bool    `json:"required" yaml:"required"`
	Type     AnyType `json:"type" yaml:"type"`
}

// ImportKind tells local and external import statements apart
type ImportKind string

const (
	ImportLocal    ImportKind = "local"
	ImportExternal ImportKind = "external"
)

// ImportedDef records an import statement found in the schema
type ImportedDef struct {
	Kind      ImportKind `json:"kind" yaml:"kind"`
	Namespace string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	URI       string     `json:"uri" yaml:"uri"`
	Types     []string   `json:"types" yaml:"types"`
}
