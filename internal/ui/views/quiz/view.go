package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bankdto "bioq/internal/modules/bank/dto"
	quizdto "bioq/internal/modules/quiz/dto"
	"bioq/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type QuizPort interface {
	StartWeekly(ctx context.Context) (quizdto.StartOutput, error)
	StartPractice(ctx context.Context, input quizdto.PracticeInput) (quizdto.StartOutput, error)
	RemainingMs(ctx context.Context) (int64, error)
	Choose(ctx context.Context, optionIndex int) (quizdto.AnswerOutput, error)
	Timeout(ctx context.Context) (quizdto.AnswerOutput, bool, error)
	Advance(ctx context.Context) (quizdto.AdvanceOutput, error)
	Abandon(ctx context.Context) error
}

type BankPort interface {
	Categories(ctx context.Context) ([]bankdto.CategoryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type startedMsg struct {
	out quizdto.StartOutput
	err error
}

type categoriesMsg struct {
	categories []bankdto.CategoryOutput
	err        error
}

type answeredMsg struct {
	out quizdto.AnswerOutput
	err error
}

type timedOutMsg struct {
	out   quizdto.AnswerOutput
	fired bool
	err   error
}

type advancedMsg struct {
	out quizdto.AdvanceOutput
	err error
}

// tickMsg carries the timer generation that scheduled it; ticks from an
// earlier question or a locked state are dropped instead of re-firing.
type tickMsg struct {
	seq int
}

const tickInterval = 100 * time.Millisecond

// ─── screens ─────────────────────────────────────────────────────────────────

type screen int

const (
	screenMenu screen = iota
	screenSetup
	screenPlaying
	screenSummary
	screenError
)

var difficulties = []string{"", "easy", "medium", "hard"}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port QuizPort
	bank BankPort

	screen  screen
	status  string
	loadErr string

	// menu
	menuIndex int

	// practice setup
	categories    []bankdto.CategoryOutput
	categoryIndex int // 0 = all
	diffIndex     int
	count         int

	// play state
	start       quizdto.StartOutput
	question    quizdto.QuestionView
	selection   int
	locked      bool
	lastAnswer  quizdto.AnswerOutput
	remainingMs int64
	timerSeq    int

	summary quizdto.SummaryOutput

	width  int
	height int
}

func New(port QuizPort, bank BankPort) Model {
	return Model{port: port, bank: bank, count: 10, status: "ready"}
}

func (m Model) Init() tea.Cmd {
	return m.loadCategoriesCmd()
}

// WeeklyActive reports whether a weekly question is currently running; the
// app model penalizes it before quitting.
func (m Model) WeeklyActive() bool {
	return m.screen == screenPlaying && m.start.Mode == "weekly" && !m.locked
}

// Abandon marks the running weekly question as penalized and snapshots
// state. It runs synchronously so it can finish before teardown.
func (m *Model) Abandon() {
	if m.screen != screenPlaying || m.start.Mode != "weekly" {
		return
	}
	_ = m.port.Abandon(context.Background())
	m.screen = screenMenu
	m.timerSeq++
}

// StartWeeklyNow kicks off the weekly challenge from outside the view, for
// the command palette.
func (m Model) StartWeeklyNow() tea.Cmd {
	return m.startWeeklyCmd()
}

// StartPracticeWith starts a practice run with explicit parameters, for the
// command palette.
func (m Model) StartPracticeWith(input quizdto.PracticeInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.StartPractice(context.Background(), input)
		return startedMsg{out: out, err: err}
	}
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		categories, err := m.bank.Categories(context.Background())
		return categoriesMsg{categories: categories, err: err}
	}
}

func (m Model) startWeeklyCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.StartWeekly(context.Background())
		return startedMsg{out: out, err: err}
	}
}

func (m Model) startPracticeCmd() tea.Cmd {
	input := quizdto.PracticeInput{Difficulty: difficulties[m.diffIndex], Count: m.count}
	if m.categoryIndex > 0 && m.categoryIndex <= len(m.categories) {
		input.Category = m.categories[m.categoryIndex-1].Name
	}
	return func() tea.Msg {
		out, err := m.port.StartPractice(context.Background(), input)
		return startedMsg{out: out, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	seq := m.timerSeq
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func (m Model) chooseCmd(option int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Choose(context.Background(), option)
		return answeredMsg{out: out, err: err}
	}
}

func (m Model) timeoutCmd() tea.Cmd {
	return func() tea.Msg {
		out, fired, err := m.port.Timeout(context.Background())
		return timedOutMsg{out: out, fired: fired, err: err}
	}
}

func (m Model) advanceCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Advance(context.Background())
		return advancedMsg{out: out, err: err}
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case categoriesMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			m.screen = screenError
			return m, nil
		}
		m.categories = msg.categories

	case startedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.screen = screenMenu
			return m, nil
		}
		m.start = msg.out
		m.question = msg.out.Question
		m.selection = 0
		m.locked = msg.out.Locked
		m.lastAnswer = quizdto.AnswerOutput{}
		m.remainingMs = msg.out.TimeBudgetMs
		m.summary = quizdto.SummaryOutput{}
		m.screen = screenPlaying
		if msg.out.Resumed {
			m.status = fmt.Sprintf("resumed at question %d", msg.out.Question.Index+1)
		} else {
			m.status = "go"
		}
		m.timerSeq++
		if m.locked {
			return m, nil
		}
		return m, m.tickCmd()

	case tickMsg:
		if msg.seq != m.timerSeq || m.screen != screenPlaying || m.locked {
			return m, nil
		}
		remaining, err := m.port.RemainingMs(context.Background())
		if err != nil {
			return m, nil
		}
		m.remainingMs = remaining
		if remaining <= 0 {
			// One-shot: the usecase ignores this if an answer won the race.
			return m, m.timeoutCmd()
		}
		return m, m.tickCmd()

	case answeredMsg:
		if msg.err != nil {
			// A locked question rejecting a second answer is not an error
			// worth surfacing.
			return m, nil
		}
		m.lockAnswer(msg.out)

	case timedOutMsg:
		if msg.err != nil || !msg.fired {
			return m, nil
		}
		// Nothing was chosen, so no option gets the wrong-answer mark.
		m.selection = -1
		m.lockAnswer(msg.out)
		m.status = "time's up"

	case advancedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.out.Finished {
			m.summary = msg.out.Summary
			m.screen = screenSummary
			m.timerSeq++
			return m, nil
		}
		m.question = msg.out.Question
		m.selection = 0
		m.locked = false
		m.lastAnswer = quizdto.AnswerOutput{}
		m.remainingMs = m.start.TimeBudgetMs
		m.status = "go"
		m.timerSeq++
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) lockAnswer(out quizdto.AnswerOutput) {
	m.locked = true
	m.lastAnswer = out
	m.start.Score = out.Score
	m.remainingMs = 0
	m.timerSeq++
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	switch m.screen {
	case screenMenu:
		switch key {
		case "up", "k":
			if m.menuIndex > 0 {
				m.menuIndex--
			}
		case "down", "j":
			if m.menuIndex < 1 {
				m.menuIndex++
			}
		case "enter":
			if m.menuIndex == 0 {
				m.status = "starting weekly challenge…"
				return m, m.startWeeklyCmd()
			}
			m.screen = screenSetup
		case "w":
			m.status = "starting weekly challenge…"
			return m, m.startWeeklyCmd()
		case "p":
			m.screen = screenSetup
		}

	case screenSetup:
		switch key {
		case "esc":
			m.screen = screenMenu
		case "up", "k":
			if m.categoryIndex > 0 {
				m.categoryIndex--
			}
		case "down", "j":
			if m.categoryIndex < len(m.categories) {
				m.categoryIndex++
			}
		case "left", "h":
			m.diffIndex = (m.diffIndex + len(difficulties) - 1) % len(difficulties)
		case "right", "l":
			m.diffIndex = (m.diffIndex + 1) % len(difficulties)
		case "-":
			if m.count > 5 {
				m.count -= 5
			}
		case "+", "=":
			if m.count < 50 {
				m.count += 5
			}
		case "enter":
			m.status = "starting practice…"
			return m, m.startPracticeCmd()
		}

	case screenPlaying:
		if m.locked {
			switch key {
			case "enter", " ", "n":
				return m, m.advanceCmd()
			}
			return m, nil
		}
		switch key {
		case "up", "k":
			if m.selection > 0 {
				m.selection--
			}
		case "down", "j":
			if m.selection < len(m.question.Options)-1 {
				m.selection++
			}
		case "enter", " ":
			return m, m.chooseCmd(m.selection)
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			if idx < len(m.question.Options) {
				m.selection = idx
				return m, m.chooseCmd(idx)
			}
		case "esc":
			if m.start.Mode == "weekly" {
				m.Abandon()
				m.status = "question penalized"
				return m, nil
			}
			m.screen = screenMenu
			m.timerSeq++
		}

	case screenSummary:
		switch key {
		case "enter", "esc":
			m.screen = screenMenu
		case "p":
			if m.summary.Mode == "practice" {
				m.status = "starting practice…"
				return m, m.startPracticeCmd()
			}
		}
	}

	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	switch m.screen {
	case screenError:
		return theme.Pane.Render(theme.Bad.Render("question bank unavailable") + "\n\n" + m.loadErr)
	case screenMenu:
		return m.viewMenu()
	case screenSetup:
		return m.viewSetup()
	case screenPlaying:
		return m.viewPlaying()
	case screenSummary:
		return m.viewSummary()
	}
	return ""
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("BioQ") + "\n\n")
	items := []string{"Weekly Challenge", "Practice"}
	for i, item := range items {
		cursor := "  "
		style := theme.Muted
		if i == m.menuIndex {
			cursor = "> "
			style = theme.Hot
		}
		b.WriteString(cursor + style.Render(item) + "\n")
	}
	b.WriteString("\n" + theme.Muted.Render(m.status))
	return theme.Pane.Render(b.String())
}

func (m Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Practice setup") + "\n\n")

	b.WriteString(theme.Muted.Render("category (↑/↓)") + "\n")
	all := "  All"
	if m.categoryIndex == 0 {
		all = "> All"
	}
	b.WriteString(all + "\n")
	for i, c := range m.categories {
		cursor := "  "
		if m.categoryIndex == i+1 {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s (%d)\n", cursor, c.Name, c.Count))
	}

	diff := difficulties[m.diffIndex]
	if diff == "" {
		diff = "all"
	}
	b.WriteString("\n" + theme.Muted.Render("difficulty (←/→): ") + theme.Hot.Render(diff))
	b.WriteString("\n" + theme.Muted.Render("questions (+/-): ") + theme.Hot.Render(fmt.Sprintf("%d", m.count)))
	b.WriteString("\n\n" + theme.Muted.Render("enter to start, esc to go back"))
	return theme.Pane.Render(b.String())
}

func (m Model) viewPlaying() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  ·  question %d/%d  ·  score %d",
		m.start.Mode, m.question.Index+1, m.question.Total, m.start.Score)
	b.WriteString(theme.Title.Render(header) + "\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("%s · %s", m.question.Category, m.question.Difficulty)) + "\n\n")

	b.WriteString(m.viewTimer() + "\n\n")
	b.WriteString(m.question.Prompt + "\n\n")

	revealed := m.locked && m.lastAnswer.Status != ""
	for i, option := range m.question.Options {
		line := fmt.Sprintf("%d. %s", i+1, option)
		switch {
		case revealed && i == m.lastAnswer.CorrectIndex:
			line = theme.Good.Render("✓ " + line)
		case revealed && i == m.selection && m.lastAnswer.Status != "correct":
			line = theme.Bad.Render("✗ " + line)
		case !m.locked && i == m.selection:
			line = theme.Hot.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.locked {
		b.WriteString("\n")
		if revealed {
			switch m.lastAnswer.Status {
			case "correct":
				b.WriteString(theme.Good.Render("correct") + "\n")
			default:
				b.WriteString(theme.Bad.Render(m.lastAnswer.Status) + "\n")
			}
			if m.lastAnswer.Explanation != "" {
				b.WriteString(theme.Muted.Render(m.lastAnswer.Explanation) + "\n")
			}
		} else {
			b.WriteString(theme.Muted.Render("already answered") + "\n")
		}
		b.WriteString("\n" + theme.Muted.Render("enter for next question"))
	} else {
		b.WriteString("\n" + theme.Muted.Render("1-9 or enter to answer"))
	}

	return theme.Pane.Render(b.String())
}

func (m Model) viewTimer() string {
	budget := m.start.TimeBudgetMs
	if budget <= 0 {
		return ""
	}
	barWidth := 30
	filled := int(float64(barWidth) * float64(m.remainingMs) / float64(budget))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	style := theme.Good
	if m.remainingMs < budget/4 {
		style = theme.Bad
	} else if m.remainingMs < budget/2 {
		style = theme.Warning
	}
	return style.Render(bar) + theme.Muted.Render(fmt.Sprintf(" %.1fs", float64(m.remainingMs)/1000))
}

func (m Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session complete") + "\n\n")
	b.WriteString(fmt.Sprintf("score: %s\n", theme.Hot.Render(fmt.Sprintf("%d/%d", m.summary.Score, m.summary.Total))))
	b.WriteString(fmt.Sprintf("time:  %.1fs\n\n", float64(m.summary.TotalElapsedMs)/1000))

	marks := make([]string, len(m.summary.Statuses))
	for i, status := range m.summary.Statuses {
		switch status {
		case "correct":
			marks[i] = theme.Good.Render("●")
		case "penalized":
			marks[i] = theme.Warning.Render("●")
		default:
			marks[i] = theme.Bad.Render("●")
		}
	}
	b.WriteString(strings.Join(marks, " ") + "\n")

	if m.summary.SubmitError != "" {
		b.WriteString("\n" + theme.Bad.Render("submit failed: "+m.summary.SubmitError))
		b.WriteString("\n" + theme.Muted.Render("run `bioq attempts sync` to retry"))
	}
	if m.summary.Mode == "practice" {
		b.WriteString("\n" + theme.Muted.Render("p to play again, esc for menu"))
	} else {
		b.WriteString("\n" + theme.Muted.Render("esc for menu"))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(b.String()))
}
