package results

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/xlab/treeprint"
)

const maxLeafLen = 80

var labelKeys = []string{"name", "title", "description", "function", "id"}

// Print writes the loaded document as indented JSON followed by a tree of
// its test cases.
func Print(w io.Writer, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if _, err = fmt.Fprintf(w, "%s\n\n%s", body, Tree(v)); err != nil {
		return err
	}
	return nil
}

func Tree(v any) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s (%d)", TestCasesKey, Count(v)))

	doc, _ := v.(map[string]any)
	cases, _ := doc[TestCasesKey].([]any)
	for i, c := range cases {
		obj, ok := c.(map[string]any)
		if !ok {
			tree.AddNode(leaf(c))
			continue
		}
		branch := tree.AddBranch(caseLabel(i, obj))
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			branch.AddNode(k + ": " + leaf(obj[k]))
		}
	}
	return tree.String()
}

func caseLabel(i int, obj map[string]any) string {
	for _, k := range labelKeys {
		if s, ok := obj[k].(string); ok && s != "" {
			return fmt.Sprintf("#%d %s", i+1, truncate(s))
		}
	}
	return fmt.Sprintf("#%d", i+1)
}

func leaf(v any) string {
	if s, ok := v.(string); ok {
		return truncate(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return truncate(string(b))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLeafLen {
		return s
	}
	return string(r[:maxLeafLen-3]) + "..."
}
