// Package controller provides the terminal front-ends for displaying test
// lists, run progress and reports.
package controller

import (
	m "github.com/dabecart/VVToolkit/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	// ModeStatic is for one-shot views (lists, reports).
	ModeStatic StartMode = iota
	// ModeRun is for live suite execution.
	ModeRun
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to live run display.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// UI defines the interface for terminal output. Implementations can use
// different output methods (plain text, TUI). The observer methods satisfy
// domain.RunObserver so a UI can be handed straight to the workflow.
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() error

	ShowItems(items []m.Item) error
	ShowBuildStatus(items []m.Item) error
	ShowReport(report *m.RunReport) error

	SuiteStarted(total int)
	TestStarted(item m.Item)
	TestFinished(item m.Item, outcome m.TestOutcome)
	SuiteFinished(report *m.RunReport)
}
