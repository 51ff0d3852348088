package abi

import "strings"

// ModuleTypeName is the reserved name of the type whose fields are functions
const ModuleTypeName = "Module"

// NamespaceSeparator joins an import namespace and a type name, e.g. "Ipfs_Options"
const NamespaceSeparator = "_"

var scalarTypes = map[string]bool{
	"UInt":      true,
	"UInt8":     true,
	"UInt16":    true,
	"UInt32":    true,
	"Int":       true,
	"Int8":      true,
	"Int16":     true,
	"Int32":     true,
	"String":    true,
	"Boolean":   true,
	"Bytes":     true,
	"BigInt":    true,
	"BigNumber": true,
	"JSON":      true,
}

var mapKeyTypes = map[string]bool{
	"UInt":   true,
	"UInt8":  true,
	"UInt16": true,
	"UInt32": true,
	"Int":    true,
	"Int8":   true,
	"Int16":  true,
	"Int32":  true,
	"String": true,
}

// IsScalar reports whether name is a built-in scalar
func IsScalar(name string) bool {
	return scalarTypes[name]
}

// IsMapKey reports whether name may be used as a map key
func IsMapKey(name string) bool {
	return mapKeyTypes[name]
}

// IsModuleType reports whether name denotes a group of functions rather than a data object.
// Both the local "Module" and imported "<Namespace>_Module" types qualify.
func IsModuleType(name string) bool {
	return name == ModuleTypeName || strings.HasSuffix(name, NamespaceSeparator+ModuleTypeName)
}

// Namespaced returns name qualified by namespace
func Namespaced(namespace, name string) string {
	return namespace + NamespaceSeparator + name
}
