package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bankdto "bioq/internal/modules/bank/dto"
	quizdto "bioq/internal/modules/quiz/dto"
	"bioq/internal/ui/components"
	"bioq/internal/ui/theme"
	historyview "bioq/internal/ui/views/history"
	leaderboardview "bioq/internal/ui/views/leaderboard"
	quizview "bioq/internal/ui/views/quiz"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type quizStatusPort interface {
	Status(ctx context.Context) (quizdto.StatusOutput, error)
}

type bankAdminPort interface {
	Fetch(ctx context.Context, url string) (bankdto.FetchOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabQuiz tabID = iota
	tabLeaderboard
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Quiz", "Leaderboard", "History"}

// ─── async messages ───────────────────────────────────────────────────────────

type weeklyStatusMsg struct {
	out quizdto.StatusOutput
	err error
}

type bankFetchedMsg struct {
	out bankdto.FetchOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Answer  key.Binding
	Next    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Answer:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
		Next:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm/next")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Answer, k.Next},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// and the command palette. Leaving a running weekly question, by quitting or
// by switching tabs, penalizes that question before anything else happens.
type Model struct {
	quizStatus quizStatusPort
	bank       bankAdminPort

	quizView        quizview.Model
	leaderboardView leaderboardview.Model
	historyView     historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	quiz quizview.QuizPort,
	quizStatus quizStatusPort,
	bank quizview.BankPort,
	bankAdmin bankAdminPort,
	standings leaderboardview.StandingsPort,
	attempts historyview.AttemptsPort,
	currentWeek string,
) Model {
	return Model{
		quizStatus:      quizStatus,
		bank:            bankAdmin,
		quizView:        quizview.New(quiz, bank),
		leaderboardView: leaderboardview.New(standings, currentWeek),
		historyView:     historyview.New(attempts),
		activeTab:       tabQuiz,
		keys:            defaultKeys(),
		help:            help.New(),
		palette:         components.NewPalette(),
		status:          "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.quizView.Init(),
		m.leaderboardView.Init(),
		m.historyView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case weeklyStatusMsg:
		if msg.err != nil {
			m.status = "weekly status: " + msg.err.Error()
		} else {
			m.status = formatWeeklyStatus(msg.out)
		}

	case bankFetchedMsg:
		if msg.err != nil {
			m.status = "bank fetch: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("bank updated: %d questions", msg.out.QuestionCount)
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			// Walking out on a running weekly question costs it.
			if m.quizView.WeeklyActive() {
				m.quizView.Abandon()
			}
			return m, tea.Quit
		case "tab":
			m.leaveQuizTab()
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, m.refreshTab()
		case "shift+tab":
			m.leaveQuizTab()
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, m.refreshTab()
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabQuiz:
		m.quizView, tabCmd = m.quizView.Update(msg)
	case tabLeaderboard:
		m.leaderboardView, tabCmd = m.leaderboardView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// leaveQuizTab penalizes a running weekly question when the user tabs away
// from it mid-question.
func (m *Model) leaveQuizTab() {
	if m.activeTab == tabQuiz && m.quizView.WeeklyActive() {
		m.quizView.Abandon()
		m.status = "weekly question penalized"
	}
}

// refreshTab reloads the tab the user just switched to so standings and
// history reflect the session that may just have finished.
func (m Model) refreshTab() tea.Cmd {
	switch m.activeTab {
	case tabLeaderboard:
		return m.leaderboardView.Refresh()
	case tabHistory:
		return m.historyView.Refresh()
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabQuiz:
		return m.quizView.View()
	case tabLeaderboard:
		return m.leaderboardView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "bioq  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "weekly:start":
		m.leaveQuizTab()
		m.activeTab = tabQuiz
		m.status = "starting weekly challenge…"
		return m, m.quizView.StartWeeklyNow()

	case "weekly:status":
		return m, m.weeklyStatusCmd()

	case "practice:start":
		practice := quizdto.PracticeInput{Count: 10}
		if len(parts) >= 2 {
			practice.Category = parts[1]
		}
		if len(parts) >= 3 {
			practice.Difficulty = parts[2]
		}
		if len(parts) >= 4 {
			if n, err := strconv.Atoi(parts[3]); err == nil {
				practice.Count = n
			}
		}
		m.leaveQuizTab()
		m.activeTab = tabQuiz
		m.status = "starting practice…"
		return m, m.quizView.StartPracticeWith(practice)

	case "leaderboard:week":
		m.leaveQuizTab()
		m.activeTab = tabLeaderboard
		week := ""
		if len(parts) >= 2 {
			week = parts[1]
		}
		return m, m.leaderboardView.ShowWeek(week)

	case "history:refresh":
		m.leaveQuizTab()
		m.activeTab = tabHistory
		return m, m.historyView.Refresh()

	case "attempts:sync":
		m.leaveQuizTab()
		m.activeTab = tabHistory
		m.status = "syncing…"
		return m, m.historyView.SyncNow()

	case "bank:fetch":
		if len(parts) < 2 {
			m.status = "usage: bank:fetch <url>"
			return m, nil
		}
		m.status = "fetching question pack…"
		return m, m.bankFetchCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.quizView, _ = m.quizView.Update(sz)
	m.leaderboardView, _ = m.leaderboardView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func formatWeeklyStatus(out quizdto.StatusOutput) string {
	switch {
	case out.Played:
		return fmt.Sprintf("weekly %s: already played today", out.Date)
	case out.Exists:
		return fmt.Sprintf("weekly %s: %d/%d answered, score %d", out.Date, out.Answered, out.Total, out.Score)
	default:
		return fmt.Sprintf("weekly %s: not started", out.Date)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) weeklyStatusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.quizStatus.Status(context.Background())
		return weeklyStatusMsg{out: out, err: err}
	}
}

func (m Model) bankFetchCmd(url string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.bank.Fetch(context.Background(), url)
		return bankFetchedMsg{out: out, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
