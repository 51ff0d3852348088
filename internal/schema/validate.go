package schema

import (
	"fmt"
	"strings"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astvisitor"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/operationreport"
)

var supportedDirectives = map[string]bool{
	AnnotateDirective: true,
}

// UnsupportedDirectivesError lists every directive usage outside the allow-list, in document order
type UnsupportedDirectivesError struct {
	Names []string
}

func (e *UnsupportedDirectivesError) Error() string {
	var sb strings.Builder
	sb.WriteString("Found the following usages of unsupported directives:")
	for _, name := range e.Names {
		sb.WriteString("\n@")
		sb.WriteString(name)
	}
	return sb.String()
}

// Validate checks every directive in doc. All violations are collected before reporting.
func Validate(doc *ast.Document) error {
	walker := astvisitor.NewWalker(48)
	v := &directiveValidator{doc: doc}
	walker.RegisterEnterDirectiveVisitor(v)

	report := operationreport.Report{}
	walker.Walk(doc, nil, &report)
	if report.HasErrors() {
		return fmt.Errorf("failed to walk schema: %v", report)
	}

	if len(v.unsupported) > 0 {
		return &UnsupportedDirectivesError{Names: v.unsupported}
	}
	return nil
}

type directiveValidator struct {
	doc         *ast.Document
	unsupported []string
}

func (v *directiveValidator) EnterDirective(ref int) {
	name := v.doc.Input.ByteSliceString(v.doc.Directives[ref].Name)
	if !supportedDirectives[name] {
		v.unsupported = append(v.unsupported, name)
	}
}
