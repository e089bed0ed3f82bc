package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	attemptdto "bioq/internal/modules/attempt/dto"
	"bioq/internal/ui/theme"
)

const historyLimit = 30

type AttemptsPort interface {
	List(ctx context.Context, limit int) ([]attemptdto.AttemptOutput, error)
	Sync(ctx context.Context) (attemptdto.SyncOutput, error)
}

type loadedMsg struct {
	attempts []attemptdto.AttemptOutput
	err      error
}

type syncedMsg struct {
	out attemptdto.SyncOutput
	err error
}

// Model lists past weekly attempts and lets the user retry pending
// submissions.
type Model struct {
	port     AttemptsPort
	attempts []attemptdto.AttemptOutput
	status   string
	width    int
}

func New(port AttemptsPort) Model {
	return Model{port: port, status: "loading…"}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Refresh() tea.Cmd {
	return m.loadCmd()
}

func (m Model) SyncNow() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Sync(context.Background())
		return syncedMsg{out: out, err: err}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		attempts, err := m.port.List(context.Background(), historyLimit)
		return loadedMsg{attempts: attempts, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case loadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.attempts = msg.attempts
		m.status = ""

	case syncedMsg:
		if msg.err != nil {
			m.status = "sync: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("sync: %d submitted, %d already known", msg.out.Submitted, msg.out.Duplicate)
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.status = "loading…"
			return m, m.loadCmd()
		case "s":
			m.status = "syncing…"
			return m, m.SyncNow()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Attempt history") + "\n\n")

	if len(m.attempts) == 0 && m.status == "" {
		b.WriteString(theme.Muted.Render("no attempts yet; play a weekly challenge"))
		return theme.Pane.Render(b.String())
	}

	b.WriteString(theme.Muted.Render(fmt.Sprintf("%-12s %-10s %7s %8s  %s", "date", "week", "score", "time", "sync")) + "\n")
	for _, a := range m.attempts {
		sync := theme.Good.Render("✓")
		if !a.Synced {
			sync = theme.Warning.Render("pending")
		}
		b.WriteString(fmt.Sprintf("%-12s %-10s %3d/%-3d %7.1fs  %s\n",
			a.Date, a.WeekID, a.Score, a.QuestionCount, float64(a.TotalElapsedMs)/1000, sync))
	}
	if m.status != "" {
		b.WriteString("\n" + theme.Muted.Render(m.status))
	}
	b.WriteString("\n" + theme.Muted.Render("r to refresh, s to sync pending"))
	return theme.Pane.Render(b.String())
}
