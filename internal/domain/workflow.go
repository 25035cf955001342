package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// Defaults applied to freshly created items.
const (
	DefaultItemName     = "Undeclared"
	DefaultItemCategory = "Undetermined"
)

// RunObserver receives progress notifications during a suite run. The UI
// layer implements it; a nil observer is allowed.
type RunObserver interface {
	SuiteStarted(total int)
	TestStarted(item m.Item)
	TestFinished(item m.Item, outcome m.TestOutcome)
	SuiteFinished(report *m.RunReport)
}

// ItemUpdate carries the optional field changes of a setup edit. Nil fields
// are left untouched.
type ItemUpdate struct {
	Name        *string
	Category    *string
	Command     *string
	Repetitions *int
}

// Workflow drives the three phases over an in-memory project: setup edits,
// build runs that capture baselines, and uninterrupted test runs. It never
// touches the disk; the caller loads and saves the project around it.
type Workflow interface {
	AddItem(p *m.Project, name, category, command string, repetitions int) (*m.Item, error)
	RemoveItem(p *m.Project, id int) error
	DuplicateItem(p *m.Project, id int) (*m.Item, error)
	UpdateItem(p *m.Project, id int, upd ItemUpdate) error
	SetEnabled(p *m.Project, id int, enabled bool) error
	SetRule(p *m.Project, id int, rule m.VerificationRule) error

	BuildItem(ctx context.Context, projectDir m.Path, p *m.Project, id int) error
	BuildAll(ctx context.Context, projectDir m.Path, p *m.Project) error
	ClearItem(p *m.Project, id int) error
	ClearAll(p *m.Project)

	CheckReady(p *m.Project) error
	RunSuite(ctx context.Context, projectDir m.Path, p *m.Project, obs RunObserver) (*m.RunReport, error)
	RetryTest(ctx context.Context, projectDir m.Path, p *m.Project, report *m.RunReport, id int) error
}

type workflow struct {
	orch Orchestrator
	log  *log.Logger
}

// NewWorkflow creates a Workflow backed by the provided orchestrator.
func NewWorkflow(orch Orchestrator, logger *log.Logger) Workflow {
	return &workflow{
		orch: orch,
		log:  logger,
	}
}

// AddItem appends a new disabled item with the smallest unused ID.
func (w *workflow) AddItem(p *m.Project, name, category, command string, repetitions int) (*m.Item, error) {
	if repetitions < 1 {
		return nil, fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}

	if name == "" {
		name = DefaultItemName
	}

	if category == "" {
		category = DefaultItemCategory
	}

	item := m.Item{
		ID:          p.NextID(),
		Name:        name,
		Category:    category,
		Repetitions: repetitions,
		Command:     command,
	}

	p.Items = append(p.Items, item)
	p.Sort()

	w.log.Debug("added item", "id", item.ID, "name", item.Name)

	return p.ItemByID(item.ID), nil
}

// RemoveItem deletes the item with the given ID.
func (w *workflow) RemoveItem(p *m.Project, id int) error {
	for i := range p.Items {
		if p.Items[i].ID == id {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("no item with id %d", id)
}

// DuplicateItem copies an item under the smallest unused ID. The copy keeps
// the rule but not the captured baseline or build error.
func (w *workflow) DuplicateItem(p *m.Project, id int) (*m.Item, error) {
	src := p.ItemByID(id)
	if src == nil {
		return nil, fmt.Errorf("no item with id %d", id)
	}

	dup := *src
	dup.ID = p.NextID()
	dup.ClearResults()

	if src.Rule != nil {
		rule := *src.Rule
		dup.Rule = &rule
	}

	p.Items = append(p.Items, dup)
	p.Sort()

	return p.ItemByID(dup.ID), nil
}

// UpdateItem applies the non-nil fields of upd. Changing the command or the
// repetition count invalidates any captured baseline.
func (w *workflow) UpdateItem(p *m.Project, id int, upd ItemUpdate) error {
	item := p.ItemByID(id)
	if item == nil {
		return fmt.Errorf("no item with id %d", id)
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}

	if upd.Category != nil {
		item.Category = *upd.Category
	}

	if upd.Command != nil && *upd.Command != item.Command {
		item.Command = *upd.Command
		item.ClearResults()
	}

	if upd.Repetitions != nil && *upd.Repetitions != item.Repetitions {
		if *upd.Repetitions < 1 {
			return fmt.Errorf("repetitions must be at least 1, got %d", *upd.Repetitions)
		}

		item.Repetitions = *upd.Repetitions
		item.ClearResults()
	}

	return nil
}

// SetEnabled flips the enabled flag. Disabling an item also resolves any
// pending build error, since disabled items are excluded from execution.
func (w *workflow) SetEnabled(p *m.Project, id int, enabled bool) error {
	item := p.ItemByID(id)
	if item == nil {
		return fmt.Errorf("no item with id %d", id)
	}

	item.Enabled = enabled

	if !enabled {
		item.BuildError = nil
	}

	return nil
}

// SetRule attaches a verification rule, validating its shape.
func (w *workflow) SetRule(p *m.Project, id int, rule m.VerificationRule) error {
	item := p.ItemByID(id)
	if item == nil {
		return fmt.Errorf("no item with id %d", id)
	}

	if _, err := m.ParseMode(string(rule.Mode)); err != nil {
		return err
	}

	if rule.Mode == m.ConditionalOutput {
		if _, err := m.ParseOperator(string(rule.Operator)); err != nil {
			return err
		}
	}

	item.Rule = &rule

	return nil
}

// BuildItem runs one enabled item and stores the captures as its baseline.
// An item holding captures must be cleared first; a process-level failure is
// recorded on the item and returned as a blocking error.
func (w *workflow) BuildItem(ctx context.Context, projectDir m.Path, p *m.Project, id int) error {
	item := p.ItemByID(id)
	if item == nil {
		return fmt.Errorf("no item with id %d", id)
	}

	if !item.Enabled {
		return fmt.Errorf("item %d %q is disabled", item.ID, item.Name)
	}

	if item.HasBeenBuilt() {
		return m.NewProcessError(m.CodeAlreadyRun,
			"item %d %q contains results; clear it before running it again", item.ID, item.Name)
	}

	captures, procErr := w.orch.CaptureItem(ctx, projectDir, *item)
	if procErr != nil {
		item.BuildError = procErr

		w.log.Error("build failed", "item", item.ID, "err", procErr)

		return procErr
	}

	item.Baseline = captures
	item.BuildError = nil

	w.log.Info("built item", "id", item.ID, "captures", len(captures))

	return nil
}

// BuildAll runs every enabled, not-yet-built item in ID order and stops at
// the first blocking error, leaving it recorded on the item.
func (w *workflow) BuildAll(ctx context.Context, projectDir m.Path, p *m.Project) error {
	p.Sort()

	for i := range p.Items {
		item := &p.Items[i]
		if !item.Enabled || item.HasBeenBuilt() {
			continue
		}

		if err := w.BuildItem(ctx, projectDir, p, item.ID); err != nil {
			return err
		}
	}

	return nil
}

// ClearItem drops an item's captures and build error.
func (w *workflow) ClearItem(p *m.Project, id int) error {
	item := p.ItemByID(id)
	if item == nil {
		return fmt.Errorf("no item with id %d", id)
	}

	item.ClearResults()

	return nil
}

// ClearAll drops captures and build errors on every item.
func (w *workflow) ClearAll(p *m.Project) {
	for i := range p.Items {
		p.Items[i].ClearResults()
	}
}

// CheckReady verifies that every enabled item can be tested: a rule is
// attached, a baseline exists when the rule needs one, and no build error is
// pending. All problems are reported together.
func (w *workflow) CheckReady(p *m.Project) error {
	var errs []error

	for _, item := range p.EnabledItems() {
		switch {
		case item.BuildError != nil:
			errs = append(errs, m.NewProcessError(m.CodeUnresolvedBuildError,
				"item %d %q has an unresolved build error: %s", item.ID, item.Name, item.BuildError.Message))
		case item.Rule == nil:
			errs = append(errs, m.NewProcessError(m.CodeMissingRule,
				"item %d %q has no verification rule", item.ID, item.Name))
		case item.Rule.UsesBuildOutput() && !item.HasBeenBuilt():
			errs = append(errs, m.NewProcessError(m.CodeMissingBaseline,
				"item %d %q has no baseline capture", item.ID, item.Name))
		}
	}

	return errors.Join(errs...)
}

// RunSuite executes every enabled item once, uninterrupted and in ID order.
// A process-level error invalidates that item's outcome; the suite carries
// on and the invalid outcome stays in the report.
func (w *workflow) RunSuite(ctx context.Context, projectDir m.Path, p *m.Project, obs RunObserver) (*m.RunReport, error) {
	if err := w.CheckReady(p); err != nil {
		return nil, err
	}

	if obs == nil {
		obs = noopObserver{}
	}

	items := p.EnabledItems()

	report := &m.RunReport{
		ID:        uuid.NewString(),
		Project:   p.Name,
		StartedAt: time.Now(),
		Outcomes:  make([]m.TestOutcome, 0, len(items)),
	}

	obs.SuiteStarted(len(items))

	for _, item := range items {
		obs.TestStarted(item)

		attempt, err := w.orch.TestItem(ctx, projectDir, item)
		if err != nil {
			return nil, fmt.Errorf("failed to test item %d: %w", item.ID, err)
		}

		outcome := m.TestOutcome{
			ItemID:   item.ID,
			Name:     item.Name,
			Category: item.Category,
			Rule:     item.Rule,
			Attempts: []m.TestAttempt{attempt},
		}

		report.Outcomes = append(report.Outcomes, outcome)
		obs.TestFinished(item, outcome)
	}

	report.FinishedAt = time.Now()
	obs.SuiteFinished(report)

	return report, nil
}

// RetryTest re-runs a single item against an existing report. The new
// attempt is appended so the aggregate report shows the retry instead of
// silently overwriting the earlier failure.
func (w *workflow) RetryTest(ctx context.Context, projectDir m.Path, p *m.Project, report *m.RunReport, id int) error {
	item := p.ItemByID(id)
	if item == nil {
		return fmt.Errorf("no item with id %d", id)
	}

	if !item.Enabled {
		return fmt.Errorf("item %d %q is disabled", item.ID, item.Name)
	}

	outcome := report.OutcomeByID(id)
	if outcome == nil {
		return fmt.Errorf("report %s has no result for item %d", report.ID, id)
	}

	attempt, err := w.orch.TestItem(ctx, projectDir, *item)
	if err != nil {
		return fmt.Errorf("failed to retry item %d: %w", id, err)
	}

	outcome.Attempts = append(outcome.Attempts, attempt)

	w.log.Info("retried item", "id", id, "passed", attempt.Passed(), "attempts", len(outcome.Attempts))

	return nil
}

type noopObserver struct{}

func (noopObserver) SuiteStarted(int)                   {}
func (noopObserver) TestStarted(m.Item)                 {}
func (noopObserver) TestFinished(m.Item, m.TestOutcome) {}
func (noopObserver) SuiteFinished(*m.RunReport)         {}
