package domain

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dabecart/VVToolkit/internal/adapter"
	m "github.com/dabecart/VVToolkit/internal/model"
)

// Orchestrator runs a single test item: once per repetition, sequentially,
// with the working directory pinned to the project directory. Capture runs
// record baselines for the build phase; test runs evaluate each iteration
// against the item's verification rule.
type Orchestrator interface {
	CaptureItem(ctx context.Context, projectDir m.Path, item m.Item) ([]m.Capture, *m.ProcessError)
	TestItem(ctx context.Context, projectDir m.Path, item m.Item) (m.TestAttempt, error)
}

type orchestrator struct {
	runner adapter.CommandRunner
	log    *log.Logger
}

// NewOrchestrator constructs an Orchestrator backed by the provided command
// runner.
func NewOrchestrator(runner adapter.CommandRunner, logger *log.Logger) Orchestrator {
	return &orchestrator{
		runner: runner,
		log:    logger,
	}
}

// CaptureItem executes the item's command Repetitions times and returns the
// captured outputs. A launch failure or non-zero return code aborts the
// capture; partial captures are discarded so a baseline is always complete.
func (o *orchestrator) CaptureItem(ctx context.Context, projectDir m.Path, item m.Item) ([]m.Capture, *m.ProcessError) {
	captures := make([]m.Capture, 0, item.Repetitions)

	for rep := 0; rep < item.Repetitions; rep++ {
		result, err := o.runner.Run(ctx, item.Command, projectDir)
		if err != nil {
			return nil, processErrorFor(item, err)
		}

		if result.ReturnCode != 0 {
			return nil, m.NewProcessError(m.CodeNonZeroExit,
				"item %d %q returned %d on iteration %d", item.ID, item.Name, result.ReturnCode, rep+1)
		}

		o.log.Debug("captured iteration",
			"item", item.ID, "iteration", rep+1, "duration", result.Duration)

		captures = append(captures, m.Capture{
			Output:     result.Output,
			ReturnCode: result.ReturnCode,
			Duration:   result.Duration,
		})
	}

	return captures, nil
}

// TestItem executes the item's command Repetitions times, evaluating every
// iteration. A process-level error invalidates the attempt and stops it; a
// failing comparison is a normal recorded outcome and the attempt continues.
func (o *orchestrator) TestItem(ctx context.Context, projectDir m.Path, item m.Item) (m.TestAttempt, error) {
	attempt := m.TestAttempt{
		StartedAt:  time.Now(),
		Iterations: make([]m.IterationResult, 0, item.Repetitions),
	}

	if item.Rule == nil {
		attempt.Invalid = true
		attempt.Err = m.NewProcessError(m.CodeMissingRule,
			"item %d %q has no verification rule", item.ID, item.Name)

		return attempt, nil
	}

	for rep := 0; rep < item.Repetitions; rep++ {
		result, err := o.runner.Run(ctx, item.Command, projectDir)

		iteration := m.IterationResult{
			Output:     result.Output,
			ReturnCode: result.ReturnCode,
			Duration:   result.Duration,
		}

		if err == nil && result.ReturnCode != 0 {
			err = m.NewProcessError(m.CodeNonZeroExit,
				"item %d %q returned %d on iteration %d", item.ID, item.Name, result.ReturnCode, rep+1)
		}

		if err != nil {
			procErr, ok := err.(*m.ProcessError)
			if !ok {
				procErr = processErrorFor(item, err)
			}

			iteration.Err = procErr
			attempt.Iterations = append(attempt.Iterations, iteration)
			attempt.Invalid = true
			attempt.Err = procErr

			o.log.Warn("test invalidated", "item", item.ID, "err", procErr)

			return attempt, nil
		}

		reference := ""

		if item.Rule.UsesBuildOutput() {
			ref, ok := item.BaselineOutput(rep)
			if !ok {
				procErr := m.NewProcessError(m.CodeMissingBaseline,
					"item %d %q has no baseline capture", item.ID, item.Name)
				attempt.Invalid = true
				attempt.Err = procErr

				return attempt, nil
			}

			reference = ref
		}

		passed, err := Evaluate(*item.Rule, result.Output, reference)
		if err != nil {
			return attempt, err
		}

		iteration.Passed = passed
		attempt.Iterations = append(attempt.Iterations, iteration)

		o.log.Debug("tested iteration",
			"item", item.ID, "iteration", rep+1, "passed", passed)
	}

	return attempt, nil
}

func processErrorFor(item m.Item, err error) *m.ProcessError {
	if errors.Is(err, context.DeadlineExceeded) {
		return m.NewProcessError(m.CodeTimeout,
			"item %d %q timed out: %v", item.ID, item.Name, err)
	}

	return m.NewProcessError(m.CodeLaunchFailed,
		"item %d %q could not run: %v", item.ID, item.Name, err)
}
