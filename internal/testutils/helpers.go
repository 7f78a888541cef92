// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteGraph writes content as name into a fresh temporary directory and
// returns the absolute path. It fails the test immediately on error.
func WriteGraph(t *testing.T, name, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write graph file")
	return absPath
}
