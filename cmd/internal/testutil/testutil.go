// Package testutil holds helpers shared by the CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes files, keyed by slash-separated relative path, below a fresh
// temporary directory and returns that directory.
func WriteTree(tb testing.TB, files map[string]string) string {
	tb.Helper()

	root := tb.TempDir()
	for relPath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relPath))

		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			tb.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
			tb.Fatalf("writing file %s: %v", relPath, err)
		}
	}
	return root
}
