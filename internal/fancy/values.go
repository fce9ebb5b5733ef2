package fancy

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss/tree"
)

// maxValueWidth keeps one long value from wrapping the whole tree.
const maxValueWidth = 80

// ValuesTree renders a registry mapping as a tree headed by title. Keys are sorted; nested
// objects and arrays become branches.
func ValuesTree(title string, values map[string]any) *tree.Tree {
	root := BranchNode(title, fmt.Sprintf("(%d)", len(values)))
	addMap(root, values)
	return root
}

func addMap(parent *tree.Tree, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		addNode(parent, KeyStyle.Render(k), m[k])
	}
}

func addNode(parent *tree.Tree, label string, value any) {
	switch v := value.(type) {
	case map[string]any:
		branch := Tree().Root(label)
		addMap(branch, v)
		parent.Child(branch)
	case []any:
		branch := Tree().Root(label)
		for i, item := range v {
			addNode(branch, InfoStyle.Render("["+strconv.Itoa(i)+"]"), item)
		}
		parent.Child(branch)
	default:
		parent.Child(label + ": " + scalarText(v))
	}
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return NullStyle.Render("null")
	case string:
		return ValueStyle.Render(TruncateString(v, maxValueWidth))
	case json.Number:
		return ValueStyle.Render(v.String())
	default:
		return ValueStyle.Render(TruncateString(fmt.Sprint(v), maxValueWidth))
	}
}
