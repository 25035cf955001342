package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// newBuildableProject creates a project holding one enabled test that echoes
// a fixed string.
func newBuildableProject(t *testing.T) string {
	t.Helper()

	path := newProjectFile(t)

	_, err := executeCommand(t, "-f", path, "--no-tty", "setup", "add",
		"-n", "banner", "--category", "smoke", "-c", "echo hello", "-r", "2")
	require.NoError(t, err)

	_, err = executeCommand(t, "-f", path, "--no-tty", "setup", "enable", "1")
	require.NoError(t, err)

	return path
}

func TestBuildRun_CapturesBaseline(t *testing.T) {
	path := newBuildableProject(t)

	_, err := executeCommand(t, "-f", path, "--no-tty", "build", "run", "1")
	require.NoError(t, err)

	project, err := projectStore.Load(m.Path(path))
	require.NoError(t, err)

	item := project.ItemByID(1)
	require.Len(t, item.Baseline, 2)
	assert.Equal(t, "hello\n", item.Baseline[0].Output)
	assert.Nil(t, item.BuildError)
}

func TestBuildRun_RecordsBlockingErrorOnItem(t *testing.T) {
	path := newProjectFile(t)

	_, err := executeCommand(t, "-f", path, "--no-tty", "setup", "add",
		"-n", "broken", "--category", "smoke", "-c", "exit 7", "-r", "1")
	require.NoError(t, err)

	_, err = executeCommand(t, "-f", path, "--no-tty", "setup", "enable", "1")
	require.NoError(t, err)

	_, err = executeCommand(t, "-f", path, "--no-tty", "build", "run", "1")
	require.Error(t, err)

	// The error is saved on the item so `build status` shows it later.
	project, err := projectStore.Load(m.Path(path))
	require.NoError(t, err)

	item := project.ItemByID(1)
	require.NotNil(t, item.BuildError)
	assert.Equal(t, m.CodeNonZeroExit, item.BuildError.Code)

	out, err := executeCommand(t, "-f", path, "--no-tty", "build", "status")
	require.NoError(t, err)
	assert.Contains(t, out, item.BuildError.Error())
}

func TestBuildRun_SecondRunNeedsClear(t *testing.T) {
	path := newBuildableProject(t)

	_, err := executeCommand(t, "-f", path, "--no-tty", "build", "run", "1")
	require.NoError(t, err)

	_, err = executeCommand(t, "-f", path, "--no-tty", "build", "run", "1")
	require.Error(t, err)

	_, err = executeCommand(t, "-f", path, "--no-tty", "build", "clear", "1")
	require.NoError(t, err)

	_, err = executeCommand(t, "-f", path, "--no-tty", "build", "run", "1")
	require.NoError(t, err)
}

func TestBuildRule_AttachAndValidate(t *testing.T) {
	path := newBuildableProject(t)

	_, err := executeCommand(t, "-f", path, "--no-tty", "build", "rule", "1",
		"-m", "conditional-output", "--operator", "contains", "--operand", "hello")
	require.NoError(t, err)

	project, err := projectStore.Load(m.Path(path))
	require.NoError(t, err)

	rule := project.ItemByID(1).Rule
	require.NotNil(t, rule)
	assert.Equal(t, m.ConditionalOutput, rule.Mode)
	assert.Equal(t, m.OpContains, rule.Operator)
	assert.Equal(t, "hello", rule.Operand)

	_, err = executeCommand(t, "-f", path, "--no-tty", "build", "rule", "1",
		"-m", "bogus-mode", "--operator", "contains", "--operand", "x")
	require.Error(t, err)
}

func TestBuildStatus_ShowsBuildState(t *testing.T) {
	path := newBuildableProject(t)

	out, err := executeCommand(t, "-f", path, "--no-tty", "build", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not built")

	_, err = executeCommand(t, "-f", path, "--no-tty", "build", "run")
	require.NoError(t, err)

	out, err = executeCommand(t, "-f", path, "--no-tty", "build", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "built (2 captures)")
}
