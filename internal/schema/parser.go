package schema

import (
	"fmt"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/okra-platform/abiparse/internal/imports"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

type options struct {
	noValidate bool
	extractors []Extractor
}

// Option configures Parse
type Option func(*options)

// WithoutValidation skips the directive allow-list check
func WithoutValidation() Option {
	return func(o *options) {
		o.noValidate = true
	}
}

// WithExtractors replaces the default extractors
func WithExtractors(extractors ...Extractor) Option {
	return func(o *options) {
		o.extractors = extractors
	}
}

// Parse builds the Abi of a single schema. Import statements are parsed from the raw text and
// recorded in the Abi, the rest of the document is parsed as GraphQL and extracted in one walk.
func Parse(input string, opts ...Option) (*abi.Abi, error) {
	o := &options{extractors: DefaultExtractors()}
	for _, opt := range opts {
		opt(o)
	}

	localImports, externalImports, err := imports.Parse(input)
	if err != nil {
		return nil, err
	}

	// Parse the GraphQL document
	doc, report := astparser.ParseGraphqlDocumentString(imports.StripStatements(input))
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	registry := BuildRegistry(&doc)

	if !o.noValidate {
		if err := Validate(&doc); err != nil {
			return nil, err
		}
	}

	result := abi.New()
	if err := Extract(&doc, registry, result, o.extractors...); err != nil {
		return nil, err
	}

	for _, ext := range externalImports {
		result.Imports = append(result.Imports, imports.ToDef(ext))
	}
	for _, local := range localImports {
		result.Imports = append(result.Imports, imports.ToDef(local))
	}

	return result, nil
}
