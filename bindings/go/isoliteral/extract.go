// Package isoliteral finds Isograph literals embedded in JavaScript and
// TypeScript sources and parses their bodies with the Isograph grammar.
//
// A literal is a call of the identifier iso with a template string:
//
//	export const HomePage = iso(`
//	  field Query.HomePage @component { me { name } }
//	`)(function HomePage({ data }) { ... })
package isoliteral

import (
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_isograph "github.com/tree-sitter/tree-sitter-isograph/bindings/go"
)

var (
	ErrNoTree             = errors.New("parser returned no tree")
	ErrMissingParentheses = errors.New("iso literals must be called with parentheses, as in iso(`...`)")
	ErrMissingFunction    = errors.New("a client field must be passed a function, as in iso(`...`)(fn)")
)

// SyntaxError reports the first parse error inside a literal body.
type SyntaxError struct {
	// Offset is the byte offset of the error in the host source.
	Offset uint
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in iso literal at byte %d", e.Offset)
}

// Literal is one iso call found in a host file.
type Literal struct {
	// Text is the literal body without the surrounding backticks.
	Text string
	// Offset is the byte offset of Text in the host source.
	Offset uint
	// ExportName is set when the literal is written as export const Name = iso(...).
	ExportName string
	// CalledWithParens is false for the tagged form iso`...`.
	CalledWithParens bool
	// HasFunction reports whether the result is applied to a function, as in iso(`...`)(fn).
	HasFunction bool
}

// Extractor holds one parser for the host dialect and one for Isograph. It is
// not safe for concurrent use.
type Extractor struct {
	host *tree_sitter.Parser
	iso  *tree_sitter.Parser
}

func NewExtractor(d Dialect) (*Extractor, error) {
	hostLanguage, err := d.language()
	if err != nil {
		return nil, err
	}
	isoLanguage, err := tree_sitter_isograph.Load()
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		host: tree_sitter.NewParser(),
		iso:  tree_sitter.NewParser(),
	}
	if err := e.host.SetLanguage(hostLanguage); err != nil {
		e.Close()
		return nil, err
	}
	if err := e.iso.SetLanguage(isoLanguage); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Extractor) Close() {
	e.host.Close()
	e.iso.Close()
}

// Extract returns the iso literals in source, in source order. Literals inside
// comments are not reported.
func (e *Extractor) Extract(source []byte) ([]Literal, error) {
	tree := e.host.Parse(source, nil)
	if tree == nil {
		return nil, ErrNoTree
	}
	defer tree.Close()

	var literals []Literal
	collect(tree.RootNode(), source, &literals)
	return literals, nil
}

func collect(node *tree_sitter.Node, source []byte, literals *[]Literal) {
	if node.Kind() == "call_expression" {
		if literal, ok := literalAt(node, source); ok {
			*literals = append(*literals, literal)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collect(node.Child(i), source, literals)
	}
}

func literalAt(call *tree_sitter.Node, source []byte) (Literal, bool) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Kind() != "identifier" || callee.Utf8Text(source) != "iso" {
		return Literal{}, false
	}
	template := call.ChildByFieldName("arguments")
	if template == nil {
		return Literal{}, false
	}
	parens := template.Kind() == "arguments"
	if parens {
		if template.NamedChildCount() != 1 {
			return Literal{}, false
		}
		template = template.NamedChild(0)
	}
	if template.Kind() != "template_string" || template.EndByte()-template.StartByte() < 2 {
		return Literal{}, false
	}

	start, end := template.StartByte()+1, template.EndByte()-1
	literal := Literal{
		Text:             string(source[start:end]),
		Offset:           start,
		CalledWithParens: parens,
	}

	value := call
	if parent := call.Parent(); parent != nil && parent.Kind() == "call_expression" && isCallee(parent, call) {
		literal.HasFunction = true
		value = parent
	}
	literal.ExportName = exportName(value, source)
	return literal, true
}

func isCallee(call, node *tree_sitter.Node) bool {
	callee := call.ChildByFieldName("function")
	return callee != nil && callee.StartByte() == node.StartByte() && callee.EndByte() == node.EndByte()
}

// exportName returns Name for export const Name = value, and "" otherwise.
func exportName(value *tree_sitter.Node, source []byte) string {
	declarator := value.Parent()
	if declarator == nil || declarator.Kind() != "variable_declarator" {
		return ""
	}
	declaration := declarator.Parent()
	if declaration == nil || declaration.Kind() != "lexical_declaration" {
		return ""
	}
	statement := declaration.Parent()
	if statement == nil || statement.Kind() != "export_statement" {
		return ""
	}
	if keyword := declaration.Child(0); keyword == nil || keyword.Utf8Text(source) != "const" {
		return ""
	}
	name := declarator.ChildByFieldName("name")
	if name == nil || name.Kind() != "identifier" {
		return ""
	}
	return name.Utf8Text(source)
}

// Parse parses the literal body. The caller closes the returned tree. A body
// with syntax errors yields a *SyntaxError and no tree.
func (e *Extractor) Parse(literal Literal) (*tree_sitter.Tree, error) {
	tree := e.iso.Parse([]byte(literal.Text), nil)
	if tree == nil {
		return nil, ErrNoTree
	}
	root := tree.RootNode()
	if root.HasError() {
		offset := firstError(root)
		tree.Close()
		return nil, &SyntaxError{Offset: literal.Offset + offset}
	}
	return tree, nil
}

func firstError(node *tree_sitter.Node) uint {
	if node.IsError() || node.IsMissing() {
		return node.StartByte()
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.HasError() {
			return firstError(child)
		}
	}
	return node.StartByte()
}

// Check applies the rules the Isograph compiler enforces on a literal: it must
// be called with parentheses, it must parse, and a client field must be
// applied to a function.
func (e *Extractor) Check(literal Literal) error {
	if !literal.CalledWithParens {
		return ErrMissingParentheses
	}
	tree, err := e.Parse(literal)
	if err != nil {
		return err
	}
	defer tree.Close()

	declaration := tree.RootNode().NamedChild(0)
	if declaration != nil && declaration.Kind() == "client_field_declaration" && !literal.HasFunction {
		return ErrMissingFunction
	}
	return nil
}
