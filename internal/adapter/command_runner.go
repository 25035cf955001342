// Package adapter contains infrastructure adapters: command execution,
// project and result persistence, and report exporters.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// DefaultShell is used when no shell override is configured.
const DefaultShell = "sh"

// CommandResult holds what a single command invocation produced.
type CommandResult struct {
	Output     string
	ReturnCode int
	Duration   time.Duration
}

// CommandRunner executes one shell command and captures its output, return
// code and elapsed time. A non-zero return code is reported through the
// result, not through the error; the error is reserved for launch failures
// and context cancellation.
type CommandRunner interface {
	Run(ctx context.Context, command string, dir m.Path) (CommandResult, error)
}

// ShellCommandRunner runs commands through `shell -c`, mirroring how the
// desktop application invoked test commands. An optional timeout bounds
// each invocation.
type ShellCommandRunner struct {
	shell   string
	timeout time.Duration
}

// NewShellCommandRunner constructs a runner. An empty shell selects
// DefaultShell; a zero timeout disables the bound.
func NewShellCommandRunner(shell string, timeout time.Duration) *ShellCommandRunner {
	if shell == "" {
		shell = DefaultShell
	}

	return &ShellCommandRunner{shell: shell, timeout: timeout}
}

// Run executes command with the working directory pinned to dir. Stdout and
// stderr are captured interleaved, the way a terminal would show them.
func (r *ShellCommandRunner) Run(ctx context.Context, command string, dir m.Path) (CommandResult, error) {
	if command == "" {
		return CommandResult{}, fmt.Errorf("empty command")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = string(dir)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	result := CommandResult{
		Output:   string(output),
		Duration: elapsed,
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("command aborted: %w", ctxErr)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, fmt.Errorf("failed to launch command: %w", err)
		}

		result.ReturnCode = exitErr.ExitCode()
	}

	return result, nil
}
