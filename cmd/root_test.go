package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the shared root command with the given arguments and
// returns the combined output. The command tree and its flag variables are
// package state, so callers pass every flag they rely on explicitly.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return buf.String(), err
}

// newProjectFile creates an initialized project in a fresh directory and
// returns its path.
func newProjectFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tests.vvf")

	_, err := executeCommand(t, "-f", path, "--no-tty", "setup", "init", "demo")
	require.NoError(t, err)

	return path
}

func TestRootCmd_HasAllCommandFamilies(t *testing.T) {
	names := make(map[string]bool)

	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"setup", "build", "test", "report", "view"} {
		assert.True(t, names[want], want)
	}
}

func TestParseItemID(t *testing.T) {
	id, err := parseItemID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		_, err := parseItemID(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultResultPath(t *testing.T) {
	assert.Equal(t, "tests.vvt", defaultResultPath("tests.vvf"))
	assert.Equal(t, "suite.vvt", defaultResultPath("suite"))
}

func TestUnknownProjectFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.vvf")

	_, err := executeCommand(t, "-f", path, "--no-tty", "setup", "list")
	require.Error(t, err)
}
