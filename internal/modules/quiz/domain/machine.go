package domain

import (
	"time"

	apperrors "bioq/internal/platform/errors"
)

// QuestionPhase is the per-question lifecycle. A question is either running
// (timer active, no answer yet) or locked (answered, timed out, or
// penalized). The tagged phase rules out the illegal flag combinations a
// boolean pair would allow.
type QuestionPhase int

const (
	PhaseRunning QuestionPhase = iota
	PhaseLocked
)

// SessionState is the session-level lifecycle.
type SessionState int

const (
	StateActive SessionState = iota
	StateFinished
)

// Machine drives one session question at a time. The locked phase is the
// single source of truth for transition guards: once a question locks, no
// Choose or Timeout may mutate its state again, even when a stale timer
// callback fires.
type Machine struct {
	record        Record
	phase         QuestionPhase
	state         SessionState
	questionStart time.Time
}

// NewMachine starts or resumes a session over the given record. When the
// record resumes onto a question that is already resolved (an abandonment
// clamped the index onto the last question), the machine comes up locked so
// the only legal move is Advance.
func NewMachine(record Record, now time.Time) *Machine {
	m := &Machine{record: record, questionStart: now}
	if record.Statuses[record.CurrentIndex] != StatusUnanswered {
		m.phase = PhaseLocked
	}
	return m
}

func (m *Machine) Record() Record       { return m.record }
func (m *Machine) Phase() QuestionPhase { return m.phase }
func (m *Machine) State() SessionState  { return m.state }
func (m *Machine) CurrentIndex() int    { return m.record.CurrentIndex }
func (m *Machine) CurrentQuestionID() string {
	return m.record.QuestionIDs[m.record.CurrentIndex]
}

// RemainingMs derives the time left on the current question from its fixed
// deadline, clamped to [0, budget].
func (m *Machine) RemainingMs(now time.Time) int64 {
	if m.phase == PhaseLocked || m.state == StateFinished {
		return 0
	}
	remaining := m.record.TimeBudgetMs - now.Sub(m.questionStart).Milliseconds()
	if remaining < 0 {
		return 0
	}
	if remaining > m.record.TimeBudgetMs {
		return m.record.TimeBudgetMs
	}
	return remaining
}

// Expired reports whether the current question's deadline has passed while
// it is still running.
func (m *Machine) Expired(now time.Time) bool {
	return m.phase == PhaseRunning && m.state == StateActive && m.RemainingMs(now) == 0
}

// Choose records an answer for the current question. Only legal while the
// question is running.
func (m *Machine) Choose(now time.Time, optionIndex, correctIndex int) (Delta, error) {
	if m.state == StateFinished {
		return Delta{}, apperrors.ErrSessionFinished
	}
	if m.phase == PhaseLocked {
		return Delta{}, apperrors.ErrQuestionLocked
	}
	elapsed := now.Sub(m.questionStart).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > m.record.TimeBudgetMs {
		elapsed = m.record.TimeBudgetMs
	}
	status := StatusWrong
	scoreDelta := 0
	if optionIndex == correctIndex {
		status = StatusCorrect
		scoreDelta = 1
	}
	idx := m.record.CurrentIndex
	m.record.Statuses[idx] = status
	m.record.ElapsedMs[idx] = elapsed
	m.record.Score += scoreDelta
	m.phase = PhaseLocked
	return Delta{Index: idx, Status: status, ElapsedMs: elapsed, ScoreDelta: scoreDelta, NewIndex: -1}, nil
}

// Timeout force-resolves the current question as wrong with the full budget
// elapsed. One-shot: a second call, or a call racing an already-registered
// answer, reports false and changes nothing.
func (m *Machine) Timeout(now time.Time) (Delta, bool) {
	if m.state == StateFinished || m.phase == PhaseLocked {
		return Delta{}, false
	}
	idx := m.record.CurrentIndex
	if m.record.Statuses[idx] == StatusUnanswered {
		m.record.Statuses[idx] = StatusWrong
		m.record.ElapsedMs[idx] = m.record.TimeBudgetMs
	}
	m.phase = PhaseLocked
	return Delta{Index: idx, Status: StatusWrong, ElapsedMs: m.record.TimeBudgetMs, NewIndex: -1}, true
}

// Advance moves past a locked question. On the last question it finishes the
// session instead; finished is true exactly once.
func (m *Machine) Advance(now time.Time) (Delta, bool, error) {
	if m.state == StateFinished {
		return Delta{}, false, apperrors.ErrSessionFinished
	}
	if m.phase != PhaseLocked {
		return Delta{}, false, apperrors.ErrQuestionRunning
	}
	last := len(m.record.QuestionIDs) - 1
	if m.record.CurrentIndex >= last {
		m.state = StateFinished
		return Delta{Index: -1, NewIndex: -1}, true, nil
	}
	m.record.CurrentIndex++
	m.phase = PhaseRunning
	m.questionStart = now
	return Delta{Index: -1, NewIndex: m.record.CurrentIndex}, false, nil
}

// Abandon handles the player leaving mid-session. A running question is
// penalized with the full budget elapsed and the index advanced (clamped to
// the last question); a locked question or finished session takes no
// penalty. The returned bool reports whether a penalty was applied.
func (m *Machine) Abandon(now time.Time) (Delta, bool) {
	if m.state == StateFinished || m.phase == PhaseLocked {
		return Delta{Index: -1, NewIndex: -1}, false
	}
	idx := m.record.CurrentIndex
	m.record.Statuses[idx] = StatusPenalized
	m.record.ElapsedMs[idx] = m.record.TimeBudgetMs
	last := len(m.record.QuestionIDs) - 1
	next := idx + 1
	if next > last {
		next = last
	}
	m.record.CurrentIndex = next
	m.phase = PhaseLocked
	return Delta{Index: idx, Status: StatusPenalized, ElapsedMs: m.record.TimeBudgetMs, NewIndex: next}, true
}
