package tree_sitter_isograph

import (
	"errors"
	"fmt"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrNilHandle is the cause reported when a grammar package hands out no language.
var ErrNilHandle = errors.New("grammar handle is nil")

// LoadError reports that a grammar handle could not be turned into a usable
// language. The message is the same for every cause; use errors.Unwrap or
// errors.As to inspect what went wrong.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Error loading %s grammar", e.Name)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadLanguage builds a tree-sitter language from a raw grammar handle and
// confirms the linked runtime accepts it. Any failure, including an ABI version
// outside the runtime's supported range, is returned as a *LoadError.
func LoadLanguage(name string, handle unsafe.Pointer) (language *tree_sitter.Language, err error) {
	defer func() {
		if r := recover(); r != nil {
			language = nil
			err = &LoadError{Name: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if handle == nil {
		return nil, &LoadError{Name: name, Err: ErrNilHandle}
	}

	language = tree_sitter.NewLanguage(handle)

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(language); err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	return language, nil
}

// Load returns the Isograph language. Every call constructs a new language
// value; nothing is cached between calls.
func Load() (*tree_sitter.Language, error) {
	return LoadLanguage("Isograph", Language())
}
