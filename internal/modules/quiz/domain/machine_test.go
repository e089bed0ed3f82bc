package domain_test

import (
	"errors"
	"testing"
	"time"

	"bioq/internal/modules/quiz/domain"
	apperrors "bioq/internal/platform/errors"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestMachine(n int) *domain.Machine {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "q" + string(rune('a'+i))
	}
	record := domain.NewRecord("2026-03-10", "2026-W11", ids, 20000)
	return domain.NewMachine(record, t0)
}

func TestChooseRecordsElapsedAndScore(t *testing.T) {
	t.Parallel()
	m := newTestMachine(3)

	delta, err := m.Choose(t0.Add(5*time.Second), 2, 2)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if delta.Status != domain.StatusCorrect || delta.ScoreDelta != 1 || delta.ElapsedMs != 5000 {
		t.Fatalf("unexpected delta %+v", delta)
	}
	if m.Record().Score != 1 || m.Phase() != domain.PhaseLocked {
		t.Fatalf("machine not locked with score 1: score=%d phase=%d", m.Record().Score, m.Phase())
	}
}

func TestLockedQuestionRejectsSecondAnswer(t *testing.T) {
	t.Parallel()
	m := newTestMachine(3)
	if _, err := m.Choose(t0.Add(time.Second), 0, 0); err != nil {
		t.Fatalf("first choose: %v", err)
	}
	if _, err := m.Choose(t0.Add(2*time.Second), 1, 0); !errors.Is(err, apperrors.ErrQuestionLocked) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if m.Record().Score != 1 || m.Record().Statuses[0] != domain.StatusCorrect {
		t.Fatalf("second answer mutated state: %+v", m.Record())
	}
}

func TestTimeoutIsOneShot(t *testing.T) {
	t.Parallel()
	m := newTestMachine(2)

	expired := t0.Add(25 * time.Second)
	if !m.Expired(expired) {
		t.Fatalf("question should be expired")
	}
	delta, fired := m.Timeout(expired)
	if !fired || delta.Status != domain.StatusWrong || delta.ElapsedMs != 20000 {
		t.Fatalf("timeout should fire with full budget, got fired=%t delta=%+v", fired, delta)
	}
	if _, fired := m.Timeout(expired.Add(time.Second)); fired {
		t.Fatalf("second timeout must not fire")
	}
	if _, err := m.Choose(expired, 0, 0); !errors.Is(err, apperrors.ErrQuestionLocked) {
		t.Fatalf("choose after timeout must be rejected, got %v", err)
	}
}

func TestTimeoutRacingAnswerChangesNothing(t *testing.T) {
	t.Parallel()
	m := newTestMachine(2)
	if _, err := m.Choose(t0.Add(19*time.Second), 0, 0); err != nil {
		t.Fatalf("choose: %v", err)
	}
	// A timer callback scheduled before the answer fires late.
	if _, fired := m.Timeout(t0.Add(21 * time.Second)); fired {
		t.Fatalf("stale timeout must not fire against a locked question")
	}
	if m.Record().Statuses[0] != domain.StatusCorrect || m.Record().Score != 1 {
		t.Fatalf("answer was downgraded: %+v", m.Record())
	}
}

func TestAdvanceGuardsAndFinishes(t *testing.T) {
	t.Parallel()
	m := newTestMachine(2)

	if _, _, err := m.Advance(t0); !errors.Is(err, apperrors.ErrQuestionRunning) {
		t.Fatalf("advance while running must fail, got %v", err)
	}
	if _, err := m.Choose(t0.Add(time.Second), 0, 0); err != nil {
		t.Fatalf("choose q1: %v", err)
	}
	_, finished, err := m.Advance(t0.Add(2 * time.Second))
	if err != nil || finished {
		t.Fatalf("advance to q2: finished=%t err=%v", finished, err)
	}
	if m.CurrentIndex() != 1 || m.Phase() != domain.PhaseRunning {
		t.Fatalf("expected running q2, got index=%d phase=%d", m.CurrentIndex(), m.Phase())
	}
	// The new question gets a fresh deadline.
	if got := m.RemainingMs(t0.Add(2 * time.Second)); got != 20000 {
		t.Fatalf("fresh question should have full budget, got %d", got)
	}

	if _, err := m.Choose(t0.Add(3*time.Second), 1, 0); err != nil {
		t.Fatalf("choose q2: %v", err)
	}
	_, finished, err = m.Advance(t0.Add(4 * time.Second))
	if err != nil || !finished {
		t.Fatalf("last advance must finish, finished=%t err=%v", finished, err)
	}
	if m.State() != domain.StateFinished {
		t.Fatalf("session should be finished")
	}
	if _, _, err := m.Advance(t0.Add(5 * time.Second)); !errors.Is(err, apperrors.ErrSessionFinished) {
		t.Fatalf("advance after finish must fail, got %v", err)
	}
	if _, err := m.Choose(t0.Add(5*time.Second), 0, 0); !errors.Is(err, apperrors.ErrSessionFinished) {
		t.Fatalf("choose after finish must fail, got %v", err)
	}
}

func TestRemainingMsClamps(t *testing.T) {
	t.Parallel()
	m := newTestMachine(1)
	if got := m.RemainingMs(t0.Add(7 * time.Second)); got != 13000 {
		t.Fatalf("expected 13000 remaining, got %d", got)
	}
	if got := m.RemainingMs(t0.Add(time.Minute)); got != 0 {
		t.Fatalf("past deadline must clamp to 0, got %d", got)
	}
	if got := m.RemainingMs(t0.Add(-time.Minute)); got != 20000 {
		t.Fatalf("clock skew must clamp to the budget, got %d", got)
	}
}

func TestAbandonPenalizesRunningQuestion(t *testing.T) {
	t.Parallel()
	m := newTestMachine(3)
	if _, err := m.Choose(t0.Add(time.Second), 0, 0); err != nil {
		t.Fatalf("choose q1: %v", err)
	}
	if _, _, err := m.Advance(t0.Add(2 * time.Second)); err != nil {
		t.Fatalf("advance: %v", err)
	}

	delta, penalized := m.Abandon(t0.Add(5 * time.Second))
	if !penalized {
		t.Fatalf("running question must be penalized")
	}
	if delta.Index != 1 || delta.Status != domain.StatusPenalized || delta.ElapsedMs != 20000 || delta.NewIndex != 2 {
		t.Fatalf("unexpected penalty delta %+v", delta)
	}
	record := m.Record()
	if record.Statuses[1] != domain.StatusPenalized || record.CurrentIndex != 2 {
		t.Fatalf("penalty not applied: %+v", record)
	}
}

func TestAbandonClampsIndexOnLastQuestion(t *testing.T) {
	t.Parallel()
	m := newTestMachine(1)
	delta, penalized := m.Abandon(t0.Add(time.Second))
	if !penalized || delta.NewIndex != 0 {
		t.Fatalf("index must clamp to the last question, got %+v", delta)
	}
	if m.Record().CurrentIndex != 0 {
		t.Fatalf("current index moved past the end: %d", m.Record().CurrentIndex)
	}
}

func TestAbandonLockedQuestionTakesNoPenalty(t *testing.T) {
	t.Parallel()
	m := newTestMachine(2)
	if _, err := m.Choose(t0.Add(time.Second), 0, 0); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if _, penalized := m.Abandon(t0.Add(2 * time.Second)); penalized {
		t.Fatalf("locked question must not be penalized")
	}
	if m.Record().Statuses[0] != domain.StatusCorrect {
		t.Fatalf("abandon downgraded a locked answer: %+v", m.Record())
	}
}

func TestResumeOntoResolvedQuestionComesUpLocked(t *testing.T) {
	t.Parallel()
	ids := []string{"qa", "qb"}
	record := domain.NewRecord("2026-03-10", "2026-W11", ids, 20000)
	record.Statuses[1] = domain.StatusPenalized
	record.ElapsedMs[1] = 20000
	record.CurrentIndex = 1

	m := domain.NewMachine(record, t0)
	if m.Phase() != domain.PhaseLocked {
		t.Fatalf("machine must come up locked on a resolved question")
	}
	_, finished, err := m.Advance(t0)
	if err != nil || !finished {
		t.Fatalf("only legal move is finishing, finished=%t err=%v", finished, err)
	}
}
