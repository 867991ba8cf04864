package tools

import (
	"errors"
	"log"

	"ContractTestGen/app/utils"
)

// Presets
const (
	PresetReformatter = "reformatter"
	PresetValidator   = "validator"
	Custom            = "custom"
)

// Tools
const (
	save_test_cases = "save_test_cases"
	validate_json   = "validate_json"
	read_output     = "read_output"
)

type Tool struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	Parameters  Parameter                      `json:"parameters"`
	HandlerFunc func(ToolTask) (string, error) `json:"-"`
}

type Parameter struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

type ToolTask struct {
	Key        string         `json:"key"`
	Parameters map[string]any `json:"parameters"`
}

func allTools(outputPath string) map[string]Tool {
	handler := fileHandler(outputPath)
	return map[string]Tool{
		save_test_cases: {
			Name: save_test_cases,
			Description: "Use this action to save the final test cases. The JSON must contain a \"test_cases\" array " +
				"(or be the array itself). It is validated, indented and written to " + outputPath + ".",
			Parameters: Parameter{
				Type: "object",
				Properties: map[string]any{
					"json": map[string]any{
						"type":        "string",
						"description": "The JSON document holding the test_cases array.",
					},
				},
				Required: []string{"json"},
			},
			HandlerFunc: handler,
		},
		validate_json: {
			Name:        validate_json,
			Description: "Use this action to check a candidate JSON document before saving it. Returns the number of test cases found or the parse error.",
			Parameters: Parameter{
				Type: "object",
				Properties: map[string]any{
					"json": map[string]any{
						"type":        "string",
						"description": "The JSON document to check.",
					},
				},
				Required: []string{"json"},
			},
			HandlerFunc: handler,
		},
		read_output: {
			Name:        read_output,
			Description: "Use this action to read back the content currently saved in " + outputPath + ".",
			Parameters: Parameter{
				Type:       "object",
				Properties: map[string]any{},
				Required:   []string{},
			},
			HandlerFunc: handler,
		},
	}
}

// NewToolkitFromPreset returns the tools of preset bound to outputPath.
func NewToolkitFromPreset(preset, outputPath string) map[string]Tool {
	switch preset {
	case PresetValidator:
		return pick(outputPath,
			validate_json,
		)
	case Custom:
		return make(map[string]Tool)
	case PresetReformatter:
		fallthrough
	default:
		return pick(outputPath,
			validate_json,
			save_test_cases,
			read_output,
		)
	}
}

func pick(outputPath string, names ...string) map[string]Tool {
	available := allTools(outputPath)
	m := make(map[string]Tool, len(names))
	for _, n := range names {
		if t, ok := available[n]; ok {
			m[n] = t
		}
	}
	return m
}

func withParsed[T any](params any, op string, f func(T) (string, error)) (string, error) {
	v, err := utils.CastAny[T](params)
	if err != nil {
		log.Printf("❌ Error parsing %s action: %v\n", op, err)
		return "", err
	}
	if v == nil {
		log.Printf("❌ %s action is nil\n", op)
		return "", errors.New("action is nil")
	}
	return f(*v)
}
