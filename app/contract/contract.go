package contract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// NotFoundError reports a contract path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Error: The specified Solidity file '%s' does not exist.", e.Path)
}

func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// Check confirms that path exists.
func Check(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Path: path}
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// Read returns the full, unmodified contents of the contract file.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read contract %s: %w", path, err)
	}
	return string(data), nil
}
