// Package storage holds the small filesystem helpers the extraction flow
// needs: idempotent directory creation and whole-file writes.
package storage

import "os"

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile writes content to path, replacing any existing file.
func WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
