package imports

import "errors"

// SyntaxReference is appended to syntax errors
const SyntaxReference = "External Import:\n" +
	`import { Type, Module } into Namespace from "external.uri"` + "\n" +
	`import * into Namespace from "external.uri"` + "\n" +
	"Local Import:\n" +
	`import { Type } from "./local/path/file.graphql"` + "\n" +
	`import * from "./local/path/file.graphql"`

var (
	// Statement shape errors
	ErrSyntax = errors.New("invalid import statement")

	// Uniqueness errors
	ErrDuplicateType      = errors.New("duplicate type found")
	ErrDuplicateNamespace = errors.New("duplicate namespaces found")
	ErrNamespaceMismatch  = errors.New("imports from a single URI must be imported into the same namespace")

	// Namespacing errors
	ErrNamespacedType = errors.New("importing a namespaced type is forbidden")

	// Graph errors
	ErrUnknownNode = errors.New("unknown dependency tree node")
)
