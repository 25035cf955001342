package model

import "time"

// Item is a single test definition. The ID is unique within a project and
// defines execution order. The command runs through the shell with the
// working directory pinned to the project file's directory.
type Item struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Repetitions int               `json:"repetitions"`
	Enabled     bool              `json:"enabled"`
	Command     string            `json:"command"`
	Rule        *VerificationRule `json:"rule,omitempty"`
	Baseline    []Capture         `json:"baseline,omitempty"`
	BuildError  *ProcessError     `json:"buildError,omitempty"`
}

// Capture is one baseline output recorded during a build run. The test phase
// compares each iteration against the capture at the same index.
type Capture struct {
	Output     string        `json:"output"`
	ReturnCode int           `json:"returnCode"`
	Duration   time.Duration `json:"duration"`
}

// HasBeenBuilt reports whether the item holds baseline captures.
func (it *Item) HasBeenBuilt() bool {
	return len(it.Baseline) > 0
}

// BaselineOutput returns the reference output for iteration index. When the
// test runs more repetitions than were captured, the last capture applies.
func (it *Item) BaselineOutput(index int) (string, bool) {
	if len(it.Baseline) == 0 {
		return "", false
	}

	if index >= len(it.Baseline) {
		index = len(it.Baseline) - 1
	}

	return it.Baseline[index].Output, true
}

// ClearResults drops captured baselines and any recorded build error.
func (it *Item) ClearResults() {
	it.Baseline = nil
	it.BuildError = nil
}
