package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
)

func containsEscapeSequence(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if s[i] == '\\' && strings.ContainsRune("ntr\"\\", rune(s[i+1])) {
			return true
		}
	}
	return false
}

// UnescapeIfNeeded turns a JSON document that a model returned as a quoted,
// escaped string back into raw text.
func UnescapeIfNeeded(s string) string {
	s = strings.TrimSpace(s)
	if containsEscapeSequence(s) {
		if !strings.HasPrefix(s, "\"") || !strings.HasSuffix(s, "\"") {
			s = fmt.Sprintf("\"%s\"", s)
		}
		unescaped, err := strconv.Unquote(s)
		if err != nil {
			log.Printf("Error unquoting string: %v", err)
			return strings.Trim(s, "\"")
		}
		return unescaped
	}
	return s
}

// StripCodeFence removes a surrounding Markdown code fence (```json ... ```)
// and returns the inner text. Text without a fence is returned trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	body := s[start+3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		lang := strings.TrimSpace(body[:nl])
		if !strings.ContainsAny(lang, "{[") {
			body = body[nl+1:]
		}
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func ParseArguments(arguments string) (map[string]any, error) {
	if strings.TrimSpace(arguments) == "" {
		return map[string]any{}, nil
	}
	var result map[string]any
	err := json.Unmarshal([]byte(arguments), &result)
	if err != nil {
		return nil, fmt.Errorf("error parsing arguments: %w", err)
	}
	return result, nil
}

func CastAny[T any](v any) (*T, error) {
	var result T
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error serializing input to JSON: %w", err)
	}

	err = json.Unmarshal(jsonData, &result)
	if err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	return &result, nil
}
