package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dkalonji/tasbih/internal/cli/formatter"
	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/service"
)

// evaluateEvery keeps the view in sync with slot boundaries while open.
// Must stay at or below one minute so activation is never skipped.
const evaluateEvery = 30 * time.Second

type countKeyMap struct {
	Tap  key.Binding
	Quit key.Binding
}

var countKeys = countKeyMap{
	Tap: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space/enter", "tap"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

type evaluatedMsg struct {
	report service.StatusReport
	err    error
}

type tappedMsg struct {
	result service.TapResult
	err    error
}

// countModel is the full-screen tap counter.
type countModel struct {
	app      *App
	report   service.StatusReport
	bar      progress.Model
	notice   string
	width    int
	quitting bool
}

func newCountModel(app *App) countModel {
	bar := progress.New(progress.WithDefaultGradient())
	return countModel{app: app, bar: bar}
}

func (m countModel) Init() tea.Cmd {
	return tea.Batch(m.evaluateCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(evaluateEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m countModel) evaluateCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.app.Recitations.Evaluate(context.Background())
		return evaluatedMsg{report: report, err: err}
	}
}

func (m countModel) tapCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.app.Recitations.Tap(context.Background())
		return tappedMsg{result: result, err: err}
	}
}

func (m countModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-8, 50)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.evaluateCmd(), tickCmd())

	case evaluatedMsg:
		if msg.err == nil {
			m.report = msg.report
		}
		return m, nil

	case tappedMsg:
		switch {
		case errors.Is(msg.err, domain.ErrNoActiveSlot):
			m.notice = "No recitation pending right now."
		case msg.err != nil:
			m.notice = msg.err.Error()
		case msg.result.Completed && msg.result.FinalSlot:
			m.notice = "Congratulations! You have finished all your recitations for today."
		case msg.result.Completed:
			next := "later"
			if msg.result.Next != nil {
				next = msg.result.Next.String()
			}
			m.notice = fmt.Sprintf("Well done! Your next recitation is at %s.", next)
		default:
			m.notice = ""
		}
		return m, m.evaluateCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, countKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, countKeys.Tap):
			return m, m.tapCmd()
		}
	}
	return m, nil
}

func (m countModel) View() string {
	if m.quitting {
		return ""
	}
	snap := m.report.Snapshot

	var b strings.Builder
	b.WriteString("\n")

	count := lipgloss.NewStyle().
		Foreground(formatter.ColorHeader).
		Bold(true).
		Render(fmt.Sprintf("%d", m.report.TapCount))
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(count))
	b.WriteString("\n\n")

	if snap.Current != nil {
		pct := float64(m.report.TapCount) / float64(domain.TapsPerRecitation)
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(m.bar.ViewAs(pct)))
		b.WriteString("\n\n")
		remaining := domain.TapsPerRecitation - m.report.TapCount
		b.WriteString(fmt.Sprintf("    Current recitation: %s, press space to count (%d remaining)\n",
			formatter.Bold(snap.Current.String()), remaining))
	} else if snap.DailyCount > 0 && snap.AllDone() {
		b.WriteString("    " + formatter.StyleGreen.Render("All recitations completed for today") + "\n")
	} else if snap.Next != nil {
		b.WriteString("    " + formatter.StyleYellow.Render(
			fmt.Sprintf("Waiting for recitation time, next at %s", snap.Next)) + "\n")
	} else {
		b.WriteString("    " + formatter.Dim("No recitations scheduled") + "\n")
	}

	b.WriteString(fmt.Sprintf("\n    %s\n", formatter.Dim(
		fmt.Sprintf("%d/%d recitations completed today", snap.CompletedCount, snap.DailyCount))))

	if m.notice != "" {
		b.WriteString(fmt.Sprintf("\n    %s\n", formatter.StyleBlue.Render(m.notice)))
	}

	b.WriteString("\n    " + formatter.Dim("space/enter tap · q quit") + "\n")
	return b.String()
}
