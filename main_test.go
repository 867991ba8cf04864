package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContract = "pragma solidity ^0.8.0;\ncontract Counter { uint256 public n; function inc() public { n += 1; } }\n"

const sampleTestCases = `{"test_cases": [{"name": "inc increments", "function": "inc", "expected_output": 1}]}`

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUsageOnWrongArgumentCount(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	for _, args := range [][]string{{}, {"a.sol", "b.sol"}} {
		code, stdout, _ := runCLI(t, args...)
		assert.Equal(t, 1, code)
		assert.Contains(t, stdout, usage)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "usage errors must not touch the filesystem")
}

func TestMissingContractFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	code, _, stderr := runCLI(t, "Missing.sol")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: The specified Solidity file 'Missing.sol' does not exist.")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a missing contract must not create history or logs")
}

func TestMissingContractReportedBeforeConfig(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte("agent:\n  mode: repl\n"), 0o644))

	code, _, stderr := runCLI(t, "--config", "config.yaml", "Missing.sol")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: The specified Solidity file 'Missing.sol' does not exist.")
	assert.NotContains(t, stderr, "invalid configs")
	assert.NoDirExists(t, "data")
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("Counter.sol", []byte(sampleContract), 0o644))
	require.NoError(t, os.WriteFile("config.yaml", []byte("agent:\n  mode: repl\n"), 0o644))

	code, _, stderr := runCLI(t, "--config", "config.yaml", "Counter.sol")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configs")
}

// chatServer answers plain completions with sampleTestCases and drives the
// agent through one save_test_cases call unless skipSave is set.
type chatServer struct {
	mu       sync.Mutex
	skipSave bool
	prompts  []string
	calls    int
}

func (s *chatServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	raw, _ := io.ReadAll(r.Body)
	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Tools []any `json:"tools"`
	}
	_ = json.Unmarshal(raw, &req)
	if len(req.Messages) > 0 {
		s.prompts = append(s.prompts, req.Messages[len(req.Messages)-1].Content)
	}

	var message map[string]any
	switch {
	case len(req.Tools) == 0:
		message = map[string]any{"role": "assistant", "content": sampleTestCases}
	case req.Messages[len(req.Messages)-1].Role == "tool" || s.skipSave:
		message = map[string]any{"role": "assistant", "content": "Final Answer: saved."}
	default:
		args, _ := json.Marshal(map[string]string{"json": sampleTestCases})
		message = map[string]any{"role": "assistant", "tool_calls": []any{map[string]any{
			"id": "call_1", "type": "function",
			"function": map[string]any{"name": "save_test_cases", "arguments": string(args)},
		}}}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"index": 0, "finish_reason": "stop", "message": message}},
	})
}

func setupEndToEnd(t *testing.T, server *chatServer, extraConfig string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	require.NoError(t, os.WriteFile("Counter.sol", []byte(sampleContract), 0o644))
	require.NoError(t, os.WriteFile(".env", []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0o644))
	cfg := fmt.Sprintf("provider:\n  base_url: %s\nstorage:\n  path: %s\n%s",
		ts.URL, filepath.Join(dir, "data", "history.db"), extraConfig)
	require.NoError(t, os.WriteFile("config.yaml", []byte(cfg), 0o644))
	return dir
}

func TestEndToEndAgentMode(t *testing.T) {
	server := &chatServer{}
	dir := setupEndToEnd(t, server, "")

	code, stdout, stderr := runCLI(t, "--config", "config.yaml", "Counter.sol")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, server.prompts[0], "Smart Contract Code:\n\n"+sampleContract)
	assert.Equal(t, 3, server.calls)
	assert.Contains(t, stdout, "Success: Found Solidity file at 'Counter.sol'.")
	assert.Contains(t, stdout, "Output:...")
	assert.Contains(t, stdout, "#1 inc increments")

	data, err := os.ReadFile(filepath.Join(dir, "output.json"))
	require.NoError(t, err)
	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc["test_cases"], 1)
	assert.FileExists(t, filepath.Join(dir, "data", "history.db"))
}

func TestEndToEndLocalModeWithOutputFlag(t *testing.T) {
	server := &chatServer{}
	dir := setupEndToEnd(t, server, "agent:\n  mode: local\n")

	code, _, stderr := runCLI(t, "--config", "config.yaml", "-o", "out/cases.json", "Counter.sol")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 1, server.calls)
	assert.FileExists(t, filepath.Join(dir, "out", "cases.json"))
	assert.NoFileExists(t, filepath.Join(dir, "output.json"))
}

func TestEndToEndAgentWritesNothing(t *testing.T) {
	server := &chatServer{skipSave: true}
	setupEndToEnd(t, server, "")

	code, _, stderr := runCLI(t, "--config", "config.yaml", "Counter.sol")
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(stderr, "output file not found"), stderr)
}
