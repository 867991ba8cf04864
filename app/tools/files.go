package tools

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"ContractTestGen/app/results"
)

func fileHandler(outputPath string) func(ToolTask) (string, error) {
	dispatch := map[string]func(any) (string, error){
		save_test_cases: func(p any) (string, error) {
			return withParsed[DocumentAction](p, save_test_cases, func(da DocumentAction) (string, error) {
				return saveTestCases(outputPath, da.JSON)
			})
		},
		validate_json: func(p any) (string, error) {
			return withParsed[DocumentAction](p, validate_json, func(da DocumentAction) (string, error) {
				return validateJSON(da.JSON)
			})
		},
		read_output: func(any) (string, error) {
			return readOutput(outputPath)
		},
	}

	return func(action ToolTask) (string, error) {
		h, ok := dispatch[action.Key]
		if !ok {
			log.Printf("❌ Unknown tool key: %s\n", action.Key)
			return "", fmt.Errorf("unknown tool key: %s", action.Key)
		}
		return h(action.Parameters)
	}
}

func saveTestCases(path, raw string) (string, error) {
	doc, n, err := results.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("test cases not saved: %w", err)
	}
	if err = results.Save(path, doc); err != nil {
		return "", err
	}
	log.Printf("✅ %d test cases written to %s.\n", n, path)
	return fmt.Sprintf("Successfully wrote %d test cases to %s", n, path), nil
}

func validateJSON(raw string) (string, error) {
	_, n, err := results.Normalize(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Valid JSON with %d test cases", n), nil
}

func readOutput(path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️ File %s does not exist.\n", path)
		return "[ File " + path + " was not found ]", nil
	}
	if err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "[ File " + path + " is empty ]", nil
	}
	return string(content), nil
}
