package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"ContractTestGen/app/utils"
)

const TestCasesKey = "test_cases"

var (
	ErrNoJSON         = errors.New("no JSON document found in model output")
	ErrNoTestCases    = errors.New("JSON document has no test_cases array")
	ErrOutputNotFound = fmt.Errorf("output file not found: %w", fs.ErrNotExist)
)

// ParseError reports an output file that exists but is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize turns free-form model output into an indented
// {"test_cases": [...]} document and returns it with the number of cases.
// It accepts a top-level test_cases key, one nested one level down, or a
// bare array of cases.
func Normalize(raw string) ([]byte, int, error) {
	doc, ok := extractJSON(raw)
	if !ok {
		return nil, 0, ErrNoJSON
	}

	cases, ok := findTestCases(gjson.Parse(doc))
	if !ok {
		return nil, 0, ErrNoTestCases
	}

	out := pretty.Pretty([]byte(`{"` + TestCasesKey + `":` + cases.Raw + `}`))
	return out, len(cases.Array()), nil
}

func extractJSON(raw string) (string, bool) {
	candidates := []string{utils.StripCodeFence(raw), utils.UnescapeIfNeeded(raw)}
	for _, c := range candidates {
		if gjson.Valid(c) {
			return c, true
		}
		if sub, ok := outermost(c); ok {
			return sub, true
		}
	}
	return "", false
}

// outermost returns the widest {...} or [...] span of s that parses as JSON.
func outermost(s string) (string, bool) {
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(s, pair[0])
		end := strings.LastIndex(s, pair[1])
		if start < 0 || end <= start {
			continue
		}
		if sub := s[start : end+1]; gjson.Valid(sub) {
			return sub, true
		}
	}
	return "", false
}

func findTestCases(root gjson.Result) (gjson.Result, bool) {
	if root.IsArray() {
		return root, true
	}
	if !root.IsObject() {
		return gjson.Result{}, false
	}
	if tc := root.Get(TestCasesKey); tc.IsArray() {
		return tc, true
	}

	var found gjson.Result
	root.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		if tc := value.Get(TestCasesKey); tc.IsArray() {
			found = tc
			return false
		}
		return true
	})
	return found, found.Exists()
}

// Save atomically replaces path with doc.
func Save(path string, doc []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp output: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Reset removes a previous output file, if any.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale output %s: %w", path, err)
	}
	return nil
}

// Load reads path and parses it as generic JSON.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrOutputNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return v, nil
}

// Count returns the number of entries under test_cases, or zero when the
// document does not have that shape.
func Count(v any) int {
	doc, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	cases, ok := doc[TestCasesKey].([]any)
	if !ok {
		return 0
	}
	return len(cases)
}
