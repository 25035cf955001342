package model

import "time"

// IterationResult is the outcome of one repetition of a test's command.
type IterationResult struct {
	Output     string        `json:"output"`
	ReturnCode int           `json:"returnCode"`
	Duration   time.Duration `json:"duration"`
	Passed     bool          `json:"passed"`
	Err        *ProcessError `json:"error,omitempty"`
}

// TestAttempt is one full run of a test: up to Repetitions iteration
// results. Invalid marks attempts cut short by a process-level error.
type TestAttempt struct {
	StartedAt  time.Time         `json:"startedAt"`
	Iterations []IterationResult `json:"iterations"`
	Invalid    bool              `json:"invalid,omitempty"`
	Err        *ProcessError     `json:"error,omitempty"`
}

// Passed reports whether the attempt is valid and every iteration passed.
func (a TestAttempt) Passed() bool {
	if a.Invalid || len(a.Iterations) == 0 {
		return false
	}

	for _, it := range a.Iterations {
		if !it.Passed {
			return false
		}
	}

	return true
}

// TestOutcome aggregates the attempts of one test within a run. A retry
// appends an attempt; the latest attempt is authoritative but earlier ones
// stay on record so the final report reflects that a retry happened.
type TestOutcome struct {
	ItemID   int               `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Rule     *VerificationRule `json:"rule,omitempty"`
	Attempts []TestAttempt     `json:"attempts"`
}

// Latest returns the authoritative attempt, or nil when none was run.
func (o *TestOutcome) Latest() *TestAttempt {
	if len(o.Attempts) == 0 {
		return nil
	}

	return &o.Attempts[len(o.Attempts)-1]
}

// Passed reports whether the latest attempt passed.
func (o *TestOutcome) Passed() bool {
	latest := o.Latest()

	return latest != nil && latest.Passed()
}

// Invalid reports whether the latest attempt was invalidated by a
// process-level error.
func (o *TestOutcome) Invalid() bool {
	latest := o.Latest()

	return latest != nil && latest.Invalid
}

// Retried reports whether the test was run more than once.
func (o *TestOutcome) Retried() bool {
	return len(o.Attempts) > 1
}

// RunReport is the in-memory form of a .vvt result file: one uninterrupted
// test run over the enabled items of a project.
type RunReport struct {
	ID         string        `json:"id"`
	Project    string        `json:"project"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Outcomes   []TestOutcome `json:"results"`
}

// OutcomeByID returns a pointer to the outcome for the given item, or nil.
func (r *RunReport) OutcomeByID(id int) *TestOutcome {
	for i := range r.Outcomes {
		if r.Outcomes[i].ItemID == id {
			return &r.Outcomes[i]
		}
	}

	return nil
}

// Summary counts passed, failed and invalidated outcomes.
func (r *RunReport) Summary() (passed, failed, invalid int) {
	for i := range r.Outcomes {
		switch {
		case r.Outcomes[i].Invalid():
			invalid++
		case r.Outcomes[i].Passed():
			passed++
		default:
			failed++
		}
	}

	return passed, failed, invalid
}
