package imports

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/okra-platform/abiparse/internal/abi"
)

// Wildcard imports every type of the imported schema
const Wildcard = "*"

// externalImportRegex matches `import { A, B } into Namespace from "uri"`, optionally comment-prefixed.
// Captures the type list, the namespace and the uri.
var externalImportRegex = regexp.MustCompile("(?:#|\"\"\")*import\\s*(\\{[^}]+\\}|\\*)\\s*into\\s*(\\w+?)\\s*from\\s*[\"'`]([^\"'`\\s]+)[\"'`]")

// localImportRegex matches `import { A, B } from "path"`, optionally comment-prefixed.
// Captures the type list and the path.
var localImportRegex = regexp.MustCompile("(?:#|\"\"\")*import\\s*(\\{[^}]+\\}|\\*)\\s*from\\s*[\"'`]([^\"'`\\s]+)[\"'`]")

// statementStartRegex matches anything at the start of a line that looks like an import statement.
// Each hit must be covered by one of the patterns above, otherwise it is malformed.
var statementStartRegex = regexp.MustCompile(`(?m)^[ \t]*(?:#|""")*[ \t]*(import)[ \t]*[{*]`)

// intoRegex finds the namespace clause of an external statement
var intoRegex = regexp.MustCompile(`\binto\b`)

// ParseExternal extracts every external import statement from a raw schema
func ParseExternal(schema string) ([]ExternalImport, error) {
	if err := checkSyntax(schema); err != nil {
		return nil, err
	}

	var externalImports []ExternalImport
	for _, match := range externalImportRegex.FindAllStringSubmatch(schema, -1) {
		importedTypes := splitTypes(match[1])
		uri := match[3]

		if dups := duplicates(importedTypes); len(dups) > 0 {
			return nil, fmt.Errorf("%w: %s\nIn import: %s", ErrDuplicateType, strings.Join(dups, ", "), uri)
		}

		if name, ok := namespacedType(importedTypes); ok {
			return nil, fmt.Errorf("%w: %s\nIn import: %s\nImporting a dependency's imported type is forbidden. Only import types that do not have an '%s' in the typename.",
				ErrNamespacedType, name, uri, abi.NamespaceSeparator)
		}

		externalImports = append(externalImports, ExternalImport{
			ImportedTypes: importedTypes,
			Namespace:     match[2],
			URIOrPath:     uri,
		})
	}

	// Make sure namespaces are unique
	namespaces := make([]string, 0, len(externalImports))
	for _, ext := range externalImports {
		namespaces = append(namespaces, ext.Namespace)
	}
	if dups := duplicates(namespaces); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNamespace, strings.Join(dups, ", "))
	}

	// Make sure every uri is imported into a single namespace
	uriToNamespace := make(map[string]string, len(externalImports))
	for _, ext := range externalImports {
		namespace, seen := uriToNamespace[ext.URIOrPath]
		if !seen {
			uriToNamespace[ext.URIOrPath] = ext.Namespace
			continue
		}
		if namespace != ext.Namespace {
			return nil, fmt.Errorf("%w.\nURI: %s\nNamespace 1: %s\nNamespace 2: %s",
				ErrNamespaceMismatch, ext.URIOrPath, ext.Namespace, namespace)
		}
	}

	return externalImports, nil
}

// ParseLocal extracts every local import statement from a raw schema
func ParseLocal(schema string) ([]LocalImport, error) {
	if err := checkSyntax(schema); err != nil {
		return nil, err
	}

	var localImports []LocalImport
	for _, match := range localImportRegex.FindAllStringSubmatch(schema, -1) {
		importedTypes := splitTypes(match[1])
		path := match[2]

		if dups := duplicates(importedTypes); len(dups) > 0 {
			return nil, fmt.Errorf("%w: %s\nIn import: %s", ErrDuplicateType, strings.Join(dups, ", "), path)
		}

		if name, ok := namespacedType(importedTypes); ok {
			return nil, fmt.Errorf("%w: %s\nIn import: %s\nUser defined types with '%s' in their name are forbidden. This is used for import namespacing.",
				ErrNamespacedType, name, path, abi.NamespaceSeparator)
		}

		localImports = append(localImports, LocalImport{
			ImportedTypes: importedTypes,
			URIOrPath:     path,
		})
	}

	// Make sure types are unique across all local imports
	var names []string
	for _, imp := range localImports {
		names = append(names, imp.ImportedTypes...)
	}
	if dups := duplicates(names); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, strings.Join(dups, ", "))
	}

	return localImports, nil
}

// Parse returns the local and external statements of a schema in one call
func Parse(schema string) ([]LocalImport, []ExternalImport, error) {
	local, err := ParseLocal(schema)
	if err != nil {
		return nil, nil, err
	}
	external, err := ParseExternal(schema)
	if err != nil {
		return nil, nil, err
	}
	return local, external, nil
}

// StripStatements blanks import statements out of the schema so the remaining text is plain
// GraphQL. Newlines are kept so parser locations still point at the original lines.
// A leading comment or block string opener is kept, so `"""import ..."""` stays a balanced
// block string.
func StripStatements(schema string) string {
	blank := func(match string) string {
		keyword := strings.Index(match, "import")
		return match[:keyword] + strings.Map(func(r rune) rune {
			if r == '\n' {
				return r
			}
			return ' '
		}, match[keyword:])
	}

	schema = externalImportRegex.ReplaceAllStringFunc(schema, blank)
	return localImportRegex.ReplaceAllStringFunc(schema, blank)
}

// checkSyntax rejects statement-looking lines that neither pattern accepts
func checkSyntax(schema string) error {
	var spans [][]int
	spans = append(spans, externalImportRegex.FindAllStringIndex(schema, -1)...)
	spans = append(spans, localImportRegex.FindAllStringIndex(schema, -1)...)

	for _, loc := range statementStartRegex.FindAllStringSubmatchIndex(schema, -1) {
		keyword := loc[2]
		if covered(spans, keyword) {
			continue
		}

		statement := schema[loc[0]:]
		if end := strings.IndexByte(statement, '\n'); end >= 0 {
			statement = statement[:end]
		}

		return fmt.Errorf("%w: invalid %s import statement found:\n%s\nPlease use the following syntax...\n%s",
			ErrSyntax, statementKind(statement), strings.TrimSpace(statement), SyntaxReference)
	}

	return nil
}

// statementKind names a malformed statement by its shape: an `into` clause makes it external
func statementKind(statement string) abi.ImportKind {
	if intoRegex.MatchString(statement) {
		return abi.ImportExternal
	}
	return abi.ImportLocal
}

func covered(spans [][]int, offset int) bool {
	for _, span := range spans {
		if span[0] <= offset && offset < span[1] {
			return true
		}
	}
	return false
}

// splitTypes turns "{ A, B }" into [A B]
func splitTypes(list string) []string {
	var types []string
	for _, part := range strings.Split(list, ",") {
		name := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) || r == '{' || r == '}' {
				return -1
			}
			return r
		}, part)
		if name != "" {
			types = append(types, name)
		}
	}
	return types
}

func namespacedType(types []string) (string, bool) {
	for _, t := range types {
		if strings.Contains(t, abi.NamespaceSeparator) {
			return t, true
		}
	}
	return "", false
}

// duplicates returns every value that occurs more than once, in order of first repetition
func duplicates(values []string) []string {
	seen := make(map[string]int, len(values))
	var dups []string
	for _, v := range values {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}
	return dups
}
