package leaderboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	attemptdto "bioq/internal/modules/attempt/dto"
	"bioq/internal/ui/theme"
)

type StandingsPort interface {
	Standings(ctx context.Context, weekID string) ([]attemptdto.StandingOutput, error)
}

type loadedMsg struct {
	week      string
	standings []attemptdto.StandingOutput
	err       error
}

// Model renders the client-side leaderboard computed from locally stored
// attempts. One row per identity, best attempt wins.
type Model struct {
	port        StandingsPort
	week        string
	currentWeek string
	standings   []attemptdto.StandingOutput
	status      string
	width       int
}

func New(port StandingsPort, currentWeek string) Model {
	return Model{port: port, week: currentWeek, currentWeek: currentWeek, status: "loading…"}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd(m.week)
}

// ShowWeek switches to another ISO week and reloads.
func (m *Model) ShowWeek(weekID string) tea.Cmd {
	if weekID == "" {
		weekID = m.currentWeek
	}
	m.week = weekID
	m.status = "loading…"
	return m.loadCmd(weekID)
}

func (m Model) Refresh() tea.Cmd {
	return m.loadCmd(m.week)
}

func (m Model) loadCmd(week string) tea.Cmd {
	return func() tea.Msg {
		standings, err := m.port.Standings(context.Background(), week)
		return loadedMsg{week: week, standings: standings, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case loadedMsg:
		if msg.week != m.week {
			return m, nil
		}
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.standings = msg.standings
		m.status = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.status = "loading…"
			return m, m.loadCmd(m.week)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Leaderboard · "+m.week) + "\n\n")

	if m.status != "" {
		b.WriteString(theme.Muted.Render(m.status))
		return theme.Pane.Render(b.String())
	}
	if len(m.standings) == 0 {
		b.WriteString(theme.Muted.Render("no attempts this week"))
		return theme.Pane.Render(b.String())
	}

	b.WriteString(theme.Muted.Render(fmt.Sprintf("%4s  %-24s %7s %8s", "rank", "player", "score", "time")) + "\n")
	for _, s := range m.standings {
		line := fmt.Sprintf("%4d  %-24s %3d/%-3d %7.1fs",
			s.Rank, truncate(s.Identity, 24), s.Score, s.QuestionCount, float64(s.TotalElapsedMs)/1000)
		if s.Rank == 1 {
			line = theme.Hot.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + theme.Muted.Render("r to refresh"))
	return theme.Pane.Render(b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
