package isoliteral

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"
)

// GeneratedDir holds compiler output and is never scanned for literals.
const GeneratedDir = "__isograph"

// Files lists the JavaScript and TypeScript files under root, in lexical
// order. Directories and files whose base name matches an exclude pattern are
// skipped, as is every GeneratedDir.
func Files(root string, exclude ...string) ([]string, error) {
	globs := make([]glob.Glob, 0, len(exclude))
	for _, p := range exclude {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := d.Name()
		if d.IsDir() {
			if path != root && (base == GeneratedDir || matchAny(globs, base)) {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := DialectForPath(path); !ok || matchAny(globs, base) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
