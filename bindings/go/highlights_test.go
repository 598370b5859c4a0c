package tree_sitter_isograph_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestHighlightsQuery(t *testing.T) {
	queryText, err := os.ReadFile("../../queries/highlights.scm")
	require.NoError(t, err)

	language := isographLanguage(t)
	query, qerr := tree_sitter.NewQuery(language, string(queryText))
	if qerr != nil {
		t.Fatalf("highlights.scm does not compile: %v", qerr)
	}
	defer query.Close()
	t.Logf("highlights.scm: %d patterns", query.PatternCount())

	source := []byte(`field Query.HomePage($id: ID!) @component { me { name } }`)
	tree := parse(t, string(source))

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	captured := make(map[string][]string)
	names := query.CaptureNames()
	matches := cursor.Matches(query, tree.RootNode(), source)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			name := names[capture.Index]
			captured[name] = append(captured[name], capture.Node.Utf8Text(source))
		}
	}

	assert.Contains(t, captured["keyword"], "field")
	assert.Contains(t, captured["type"], "Query")
	assert.Contains(t, captured["type"], "ID")
	assert.Contains(t, captured["function"], "HomePage")
	assert.Contains(t, captured["variable"], "id")
	assert.Contains(t, captured["attribute"], "component")
	assert.Contains(t, captured["property"], "me")
	assert.Contains(t, captured["property"], "name")
	assert.Contains(t, captured["punctuation.bracket"], "{")
	assert.Contains(t, captured["operator"], "!")
}
