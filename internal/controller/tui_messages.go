package controller

import "time"

type tickMsg time.Time

// Message types.
type suiteStartedMsg struct {
	total int
}

type testStartedMsg struct {
	id   int
	name string
	reps int
}

type testFinishedMsg struct {
	row runRow
}

type suiteFinishedMsg struct {
	passed  int
	failed  int
	invalid int
}

// List item type.
type runRow struct {
	id       int
	name     string
	category string
	status   string
	output   string
}

func (r runRow) FilterValue() string {
	return r.name + " " + r.category + " " + r.status
}
