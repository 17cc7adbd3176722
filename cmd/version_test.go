package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersionCommand tests the version command
func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCmd(t, "version")
	require.NoError(t, err, "version command should succeed")

	assert.Equal(t, "ivsb version "+Version+"\n", stdout)
}

// TestVersionFlag tests the --version flag
func TestVersionFlag(t *testing.T) {
	stdout, _, err := runCmd(t, "--version")
	require.NoError(t, err, "version flag should succeed")

	assert.Equal(t, "ivsb version "+Version+"\n", stdout)
}

// TestVersionShortFlag tests the -v flag
func TestVersionShortFlag(t *testing.T) {
	stdout, _, err := runCmd(t, "-v")
	require.NoError(t, err)

	assert.Contains(t, stdout, Version)
}
