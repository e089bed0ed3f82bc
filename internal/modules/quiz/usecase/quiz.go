package usecase

import (
	"context"
	"errors"
	"sync"

	bankdto "bioq/internal/modules/bank/dto"
	bankin "bioq/internal/modules/bank/port/in"
	"bioq/internal/modules/quiz/domain"
	"bioq/internal/modules/quiz/dto"
	quizin "bioq/internal/modules/quiz/port/in"
	quizout "bioq/internal/modules/quiz/port/out"
	"bioq/internal/modules/quiz/service"
	apperrors "bioq/internal/platform/errors"
)

const (
	ModeWeekly   = "weekly"
	ModePractice = "practice"
)

// Interactor owns the one live session of the process. All transitions run
// under a single mutex; the machine's locked phase remains the transition
// guard, the mutex only serializes callers.
type Interactor struct {
	svc    *service.QuizService
	bank   bankin.Usecase
	store  quizout.SessionStore
	marker quizout.PlayedMarkerStore
	sink   quizout.AttemptSink

	mu        sync.Mutex
	machine   *domain.Machine
	mode      string
	questions map[string]bankdto.QuestionOutput
}

func NewInteractor(svc *service.QuizService, bank bankin.Usecase, store quizout.SessionStore, marker quizout.PlayedMarkerStore, sink quizout.AttemptSink) quizin.Usecase {
	return &Interactor{svc: svc, bank: bank, store: store, marker: marker, sink: sink}
}

func (i *Interactor) StartWeekly(ctx context.Context) (dto.StartOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	pool, byID, err := i.loadBank(ctx)
	if err != nil {
		return dto.StartOutput{}, err
	}
	day, week := i.svc.Now()

	if i.marker != nil {
		if played, err := i.marker.Played(ctx, day); err == nil && played {
			return dto.StartOutput{}, apperrors.ErrAlreadyPlayed
		}
	}

	order := i.svc.WeeklyOrderToday(pool)
	if len(order) == 0 {
		return dto.StartOutput{}, apperrors.ErrEmptySelection
	}

	record, resumed := i.resumeOrFresh(ctx, day, week, order, byID, pool)
	i.machine = domain.NewMachine(record, i.svc.Clock().Now())
	i.mode = ModeWeekly
	i.questions = byID

	if !resumed {
		// Best effort: a failed write only costs resume-after-crash.
		_ = i.store.Save(ctx, record)
	}
	return i.startOutput(resumed), nil
}

func (i *Interactor) resumeOrFresh(ctx context.Context, day, week string, order []string, byID map[string]bankdto.QuestionOutput, pool []domain.PoolEntry) (domain.Record, bool) {
	stored, err := i.store.Load(ctx, day)
	if err == nil && stored.Valid() && stored.Date == day && stored.WeekID == week && len(stored.QuestionIDs) == len(order) && allKnown(stored.QuestionIDs, byID) {
		return stored, true
	}
	return i.svc.WeeklyRecord(ctx, pool), false
}

func (i *Interactor) StartPractice(ctx context.Context, input dto.PracticeInput) (dto.StartOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	pool, byID, err := i.loadBank(ctx)
	if err != nil {
		return dto.StartOutput{}, err
	}
	record := i.svc.PracticeRecord(pool, input.Category, input.Difficulty, input.Count)
	if len(record.QuestionIDs) == 0 {
		return dto.StartOutput{}, apperrors.ErrEmptySelection
	}
	i.machine = domain.NewMachine(record, i.svc.Clock().Now())
	i.mode = ModePractice
	i.questions = byID
	return i.startOutput(false), nil
}

func (i *Interactor) RemainingMs(_ context.Context) (int64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.machine == nil {
		return 0, apperrors.ErrNoSession
	}
	return i.machine.RemainingMs(i.svc.Clock().Now()), nil
}

func (i *Interactor) Choose(ctx context.Context, optionIndex int) (dto.AnswerOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.machine == nil {
		return dto.AnswerOutput{}, apperrors.ErrNoSession
	}
	question, ok := i.questions[i.machine.CurrentQuestionID()]
	if !ok {
		return dto.AnswerOutput{}, apperrors.ErrNotFound
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return dto.AnswerOutput{}, apperrors.ErrInvalidInput
	}
	delta, err := i.machine.Choose(i.svc.Clock().Now(), optionIndex, question.CorrectIndex)
	if err != nil {
		return dto.AnswerOutput{}, err
	}
	i.persistDelta(ctx, delta)
	return i.answerOutput(question, delta), nil
}

func (i *Interactor) Timeout(ctx context.Context) (dto.AnswerOutput, bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.machine == nil {
		return dto.AnswerOutput{}, false, apperrors.ErrNoSession
	}
	now := i.svc.Clock().Now()
	if !i.machine.Expired(now) {
		return dto.AnswerOutput{}, false, nil
	}
	question, ok := i.questions[i.machine.CurrentQuestionID()]
	if !ok {
		return dto.AnswerOutput{}, false, apperrors.ErrNotFound
	}
	delta, fired := i.machine.Timeout(now)
	if !fired {
		return dto.AnswerOutput{}, false, nil
	}
	i.persistDelta(ctx, delta)
	return i.answerOutput(question, delta), true, nil
}

func (i *Interactor) Advance(ctx context.Context) (dto.AdvanceOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.machine == nil {
		return dto.AdvanceOutput{}, apperrors.ErrNoSession
	}
	delta, finished, err := i.machine.Advance(i.svc.Clock().Now())
	if err != nil {
		return dto.AdvanceOutput{}, err
	}
	if finished {
		return dto.AdvanceOutput{Finished: true, Summary: i.finish(ctx)}, nil
	}
	i.persistDelta(ctx, delta)
	return dto.AdvanceOutput{Question: i.questionView()}, nil
}

func (i *Interactor) Abandon(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.machine == nil || i.mode != ModeWeekly {
		i.machine = nil
		return nil
	}
	delta, penalized := i.machine.Abandon(i.svc.Clock().Now())
	record := i.machine.Record()
	if penalized {
		_ = i.store.Merge(ctx, record.Date, delta, record)
	} else if i.machine.State() != domain.StateFinished {
		_ = i.store.Save(ctx, record)
	}
	i.machine = nil
	return nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	day, week := i.svc.Now()
	out := dto.StatusOutput{Date: day, WeekID: week}
	if i.marker != nil {
		if played, err := i.marker.Played(ctx, day); err == nil {
			out.Played = played
		}
	}
	record, err := i.store.Load(ctx, day)
	if err != nil {
		// Absent reads the same as unreadable here: no session to report.
		return out, nil
	}
	if !record.Valid() {
		return out, nil
	}
	out.Exists = true
	out.Total = len(record.QuestionIDs)
	out.Answered = record.Answered()
	out.Score = record.Score
	out.CurrentIndex = record.CurrentIndex
	return out, nil
}

// finish hands off the attempt summary exactly once, deletes the day's
// record so it cannot replay, and marks the day played. Submit failures are
// carried in the summary for a manual retry; they never block the summary
// view.
func (i *Interactor) finish(ctx context.Context) dto.SummaryOutput {
	record := i.machine.Record()
	out := dto.SummaryOutput{
		Mode:           i.mode,
		Date:           record.Date,
		WeekID:         record.WeekID,
		Score:          record.Score,
		Total:          len(record.QuestionIDs),
		TotalElapsedMs: record.TotalElapsedMs(),
		Statuses:       statusStrings(record.Statuses),
	}
	if i.mode == ModeWeekly {
		if i.sink != nil {
			if err := i.sink.RecordAttempt(ctx, record.Summary()); err != nil && !errors.Is(err, apperrors.ErrDuplicateAttempt) {
				out.SubmitError = err.Error()
			}
		}
		_ = i.store.Delete(ctx, record.Date)
		if i.marker != nil {
			_ = i.marker.MarkPlayed(ctx, record.Date)
		}
	}
	i.machine = nil
	return out
}

// persistDelta snapshots a weekly transition. Write failures are swallowed:
// the session continues in memory, only crash recovery degrades.
func (i *Interactor) persistDelta(ctx context.Context, delta domain.Delta) {
	if i.mode != ModeWeekly {
		return
	}
	record := i.machine.Record()
	_ = i.store.Merge(ctx, record.Date, delta, record)
}

func (i *Interactor) loadBank(ctx context.Context) ([]domain.PoolEntry, map[string]bankdto.QuestionOutput, error) {
	questions, err := i.bank.Questions(ctx)
	if err != nil {
		return nil, nil, err
	}
	pool := make([]domain.PoolEntry, 0, len(questions))
	byID := make(map[string]bankdto.QuestionOutput, len(questions))
	for _, q := range questions {
		pool = append(pool, domain.PoolEntry{ID: q.ID, Category: q.Category, Difficulty: q.Difficulty})
		byID[q.ID] = q
	}
	return pool, byID, nil
}

func (i *Interactor) startOutput(resumed bool) dto.StartOutput {
	record := i.machine.Record()
	return dto.StartOutput{
		Mode:         i.mode,
		Date:         record.Date,
		WeekID:       record.WeekID,
		Total:        len(record.QuestionIDs),
		Score:        record.Score,
		Resumed:      resumed,
		Locked:       i.machine.Phase() == domain.PhaseLocked,
		TimeBudgetMs: record.TimeBudgetMs,
		Question:     i.questionView(),
	}
}

func (i *Interactor) questionView() dto.QuestionView {
	record := i.machine.Record()
	question := i.questions[i.machine.CurrentQuestionID()]
	return dto.QuestionView{
		Index:      record.CurrentIndex,
		Total:      len(record.QuestionIDs),
		ID:         question.ID,
		Category:   question.Category,
		Difficulty: question.Difficulty,
		Prompt:     question.Prompt,
		Options:    question.Options,
	}
}

func (i *Interactor) answerOutput(question bankdto.QuestionOutput, delta domain.Delta) dto.AnswerOutput {
	return dto.AnswerOutput{
		Status:       string(delta.Status),
		CorrectIndex: question.CorrectIndex,
		Explanation:  question.Explanation,
		Score:        i.machine.Record().Score,
		ElapsedMs:    delta.ElapsedMs,
	}
}

func allKnown(ids []string, byID map[string]bankdto.QuestionOutput) bool {
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return false
		}
	}
	return true
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
