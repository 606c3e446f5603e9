package slippi

import (
	"os"
	"path/filepath"
)

// writeDebugFile writes data to path, creating any missing parent
// directories first.
func writeDebugFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
