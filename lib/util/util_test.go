package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckFileExists distinguishes files, directories and missing paths.
func TestCheckFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a: 1\n"), 0o600))

	assert.True(t, CheckFileExists(file))
	assert.False(t, CheckFileExists(dir))
	assert.False(t, CheckFileExists(filepath.Join(dir, "missing.yaml")))
}

// TestUserHomeNotEmpty checks that some directory is always returned.
func TestUserHomeNotEmpty(t *testing.T) {
	assert.NotEmpty(t, UserHome())
}
