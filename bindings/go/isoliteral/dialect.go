package isoliteral

import (
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	tree_sitter_isograph "github.com/tree-sitter/tree-sitter-isograph/bindings/go"
)

// Dialect selects the host grammar iso literals are embedded in.
type Dialect int

const (
	JavaScript Dialect = iota
	TypeScript
	TSX
)

func (d Dialect) String() string {
	switch d {
	case JavaScript:
		return "JavaScript"
	case TypeScript:
		return "TypeScript"
	case TSX:
		return "TSX"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// DialectForPath picks the host dialect from a file extension. It reports
// false for files that cannot contain iso literals.
func DialectForPath(path string) (Dialect, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	}
	return 0, false
}

func (d Dialect) language() (*tree_sitter.Language, error) {
	switch d {
	case JavaScript:
		return tree_sitter_isograph.LoadLanguage(d.String(), tree_sitter_javascript.Language())
	case TypeScript:
		return tree_sitter_isograph.LoadLanguage(d.String(), tree_sitter_typescript.LanguageTypescript())
	case TSX:
		return tree_sitter_isograph.LoadLanguage(d.String(), tree_sitter_typescript.LanguageTSX())
	}
	return nil, fmt.Errorf("unsupported dialect %s", d)
}
