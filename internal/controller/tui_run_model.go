package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// runRowDelegate renders one completed test in the results list.
type runRowDelegate struct{}

func (d runRowDelegate) Height() int  { return 1 }
func (d runRowDelegate) Spacing() int { return 0 }
func (d runRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d runRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(runRow)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	statusColorMap := map[string]lipgloss.Color{
		"PASS":    lipgloss.Color("2"),
		"FAIL":    lipgloss.Color("1"),
		"INVALID": lipgloss.Color("3"),
	}

	statusColor, ok := statusColorMap[row.status]
	if !ok {
		statusColor = lipgloss.Color("8")
	}

	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(5)
	statusStyle := lipgloss.NewStyle().Foreground(statusColor).Bold(true).Width(9)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	if isSelected {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		idStyle = selected.Width(5)
		statusStyle = selected.Width(9)
		nameStyle = selected
		categoryStyle = selected
	}

	line := fmt.Sprintf("%s %s %s  %s",
		idStyle.Render(fmt.Sprintf("%d", row.id)),
		statusStyle.Render(row.status),
		nameStyle.Render(row.name),
		categoryStyle.Render(row.category),
	)
	_, _ = fmt.Fprint(w, line)
}

// runModel handles the TUI display during a suite run.
type runModel struct {
	width       int
	height      int
	progressBar progress.Model
	resultsList list.Model

	total       int
	completed   int
	currentID   int
	currentName string
	currentReps int

	finished bool
	passed   int
	failed   int
	invalid  int
	quitting bool
}

func newRunModel() runModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	resultsList := list.New([]list.Item{}, runRowDelegate{}, 80, 20)
	resultsList.SetShowPagination(false)
	resultsList.SetShowFilter(true)
	resultsList.SetShowHelp(false)
	resultsList.SetShowTitle(false)
	resultsList.SetShowStatusBar(false)

	return runModel{
		progressBar: prog,
		resultsList: resultsList,
	}
}

func (rm runModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.resultsList.SetSize(msg.Width-4, msg.Height-8)

	case tea.KeyMsg:
		return rm.handleKeyMsg(msg)

	case tickMsg:
		if rm.finished {
			return rm, nil
		}

		return rm, rm.Init()

	case suiteStartedMsg:
		rm.total = msg.total
		rm.completed = 0

	case testStartedMsg:
		rm.currentID = msg.id
		rm.currentName = msg.name
		rm.currentReps = msg.reps

	case testFinishedMsg:
		rm.completed++

		cmd = rm.resultsList.InsertItem(len(rm.resultsList.Items()), msg.row)

	case suiteFinishedMsg:
		rm.finished = true
		rm.passed = msg.passed
		rm.failed = msg.failed
		rm.invalid = msg.invalid

	default:
	}

	return rm, cmd
}

func (rm runModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		rm.quitting = true

		return rm, tea.Quit
	default:
		var cmd tea.Cmd

		rm.resultsList, cmd = rm.resultsList.Update(msg)

		return rm, cmd
	}
}

func (rm runModel) View() string {
	if rm.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	title := titleStyle.Render("VVToolkit Test Run")

	if rm.finished {
		return rm.viewResults(title)
	}

	return rm.viewProgress(title)
}

func (rm runModel) viewProgress(title string) string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s / %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.total)),
	))

	percent := 0.0
	if rm.total > 0 {
		percent = float64(rm.completed) / float64(rm.total)
	}

	progressView := lipgloss.NewStyle().Padding(0, 2).Render(rm.progressBar.ViewAs(percent))

	current := ""
	if rm.currentName != "" {
		current = lipgloss.NewStyle().Padding(1, 2).Render(fmt.Sprintf(
			"Running test %d: %s (%d repetitions)", rm.currentID, rm.currentName, rm.currentReps))
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Padding(1, 2).
		Render("Press q to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, progressView, current, footer)
}

func (rm runModel) viewResults(title string) string {
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	summary := summaryStyle.Render(fmt.Sprintf(
		"%s passed  %s failed  %s invalid",
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(fmt.Sprintf("%d", rm.passed)),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(fmt.Sprintf("%d", rm.failed)),
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(fmt.Sprintf("%d", rm.invalid)),
	))

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Padding(1, 2).
		Render("Press q to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, rm.resultsList.View(), footer)
}
