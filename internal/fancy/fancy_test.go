package fancy_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/atlanticdynamic/mcpregistry/internal/fancy"
	"github.com/stretchr/testify/assert"
)

func TestTree(t *testing.T) {
	tree := fancy.Tree()
	assert.NotNil(t, tree)

	tree.Root("Root Node")
	tree.Child("Child Node")

	treeString := tree.String()
	assert.Contains(t, treeString, "Root Node")
	assert.Contains(t, treeString, "Child Node")
}

func TestBranchNode(t *testing.T) {
	branchNode := fancy.BranchNode("Registry", "(3)")
	assert.NotNil(t, branchNode)

	rendered := branchNode.String()
	assert.Contains(t, rendered, "Registry")
	assert.Contains(t, rendered, "(3)")
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{name: "short string", input: "abc", maxLength: 10, expected: "abc"},
		{name: "exact length", input: "abcdefghij", maxLength: 10, expected: "abcdefghij"},
		{name: "truncated", input: "abcdefghijklmnop", maxLength: 10, expected: "abcdefg..."},
		{name: "tiny limit is ignored", input: "abcdef", maxLength: 2, expected: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fancy.TruncateString(tt.input, tt.maxLength))
		})
	}
}

func TestValuesTree(t *testing.T) {
	values := map[string]any{
		"db_url":  "postgres://db:5432/app",
		"retries": json.Number("3"),
		"flags": map[string]any{
			"beta": true,
		},
		"hosts":  []any{"a.local", "b.local"},
		"absent": nil,
	}

	rendered := fancy.ValuesTree("Registry", values).String()

	assert.Contains(t, rendered, "Registry")
	assert.Contains(t, rendered, "(5)")
	assert.Contains(t, rendered, "db_url: postgres://db:5432/app")
	assert.Contains(t, rendered, "retries: 3")
	assert.Contains(t, rendered, "beta: true")
	assert.Contains(t, rendered, "[0]: a.local")
	assert.Contains(t, rendered, "[1]: b.local")
	assert.Contains(t, rendered, "absent: null")

	// keys are sorted
	assert.Less(t, strings.Index(rendered, "absent"), strings.Index(rendered, "db_url"))
	assert.Less(t, strings.Index(rendered, "db_url"), strings.Index(rendered, "flags"))
	assert.Less(t, strings.Index(rendered, "flags"), strings.Index(rendered, "hosts"))
}

func TestValuesTreeEmpty(t *testing.T) {
	rendered := fancy.ValuesTree("Registry", map[string]any{}).String()
	assert.Contains(t, rendered, "(0)")
}

func TestValuesTreeTruncatesLongValues(t *testing.T) {
	rendered := fancy.ValuesTree("Registry", map[string]any{"blob": strings.Repeat("x", 200)}).String()
	assert.Contains(t, rendered, "...")
	assert.NotContains(t, rendered, strings.Repeat("x", 100))
}
