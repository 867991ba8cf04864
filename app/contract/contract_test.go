package contract

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Missing.sol")

	err := Check(path)
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, path, nf.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestCheckExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Token.sol")
	require.NoError(t, os.WriteFile(path, []byte("contract Token {}"), 0o644))
	assert.NoError(t, Check(path))
}

func TestReadReturnsExactContent(t *testing.T) {
	cases := map[string]string{
		"empty":   "",
		"crlf":    "pragma solidity ^0.8.0;\r\ncontract A {}\r\n",
		"unicode": "// Ünïcode ✓\ncontract B { string s = \"%s %d\"; }",
		"no_eol":  "contract C {}",
	}
	dir := t.TempDir()
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".sol")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, content, got)
		})
	}
}

func TestReadDirectoryFails(t *testing.T) {
	_, err := Read(t.TempDir())
	assert.Error(t, err)
}
