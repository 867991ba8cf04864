package tools

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolkitFromPreset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.json")

	tk := NewToolkitFromPreset(PresetReformatter, out)
	assert.Len(t, tk, 3)
	for _, name := range []string{save_test_cases, validate_json, read_output} {
		require.Contains(t, tk, name)
		assert.NotNil(t, tk[name].HandlerFunc)
	}
	assert.Contains(t, tk[save_test_cases].Description, out)

	assert.Len(t, NewToolkitFromPreset(PresetValidator, out), 1)
	assert.Empty(t, NewToolkitFromPreset(Custom, out))
}

func TestToolSerializationOmitsHandler(t *testing.T) {
	tk := NewToolkitFromPreset(PresetValidator, "output.json")
	b, err := json.Marshal(tk[validate_json])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "HandlerFunc")
	assert.Contains(t, string(b), `"required":["json"]`)
}

func TestSaveTestCases(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.json")
	tk := NewToolkitFromPreset(PresetReformatter, out)
	save := tk[save_test_cases]

	res, err := save.HandlerFunc(ToolTask{Key: save_test_cases, Parameters: map[string]any{
		"json": `{"contract": "Token", "test_cases": [{"name": "mint"}, {"name": "burn"}]}`,
	}})
	require.NoError(t, err)
	assert.Contains(t, res, "2 test cases")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc, 1)
	assert.Len(t, doc["test_cases"], 2)

	read, err := tk[read_output].HandlerFunc(ToolTask{Key: read_output})
	require.NoError(t, err)
	assert.Equal(t, string(data), read)
}

func TestSaveTestCasesInvalidLeavesFileUntouched(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(out, []byte(`{"test_cases":[]}`), 0o644))

	tk := NewToolkitFromPreset(PresetReformatter, out)
	_, err := tk[save_test_cases].HandlerFunc(ToolTask{Key: save_test_cases, Parameters: map[string]any{"json": "not json"}})
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `{"test_cases":[]}`, string(data))
}

func TestValidateJSON(t *testing.T) {
	tk := NewToolkitFromPreset(PresetValidator, "unused.json")
	h := tk[validate_json].HandlerFunc

	res, err := h(ToolTask{Key: validate_json, Parameters: map[string]any{"json": `[{"a":1}]`}})
	require.NoError(t, err)
	assert.Equal(t, "Valid JSON with 1 test cases", res)

	_, err = h(ToolTask{Key: validate_json, Parameters: map[string]any{"json": `{"x":1}`}})
	assert.Error(t, err)
}

func TestReadOutputMissing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.json")
	res, err := NewToolkitFromPreset(PresetReformatter, out)[read_output].HandlerFunc(ToolTask{Key: read_output})
	require.NoError(t, err)
	assert.Contains(t, res, "was not found")
}

func TestReadOutputEmptyFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(out, nil, 0o644))

	res, err := NewToolkitFromPreset(PresetReformatter, out)[read_output].HandlerFunc(ToolTask{Key: read_output})
	require.NoError(t, err)
	assert.Equal(t, "[ File "+out+" is empty ]", res)
}

func TestUnknownToolKey(t *testing.T) {
	h := NewToolkitFromPreset(PresetReformatter, "output.json")[read_output].HandlerFunc
	_, err := h(ToolTask{Key: "run_python"})
	assert.Error(t, err)
}
