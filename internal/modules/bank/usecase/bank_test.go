package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	adapter "bioq/internal/modules/bank/adapter/out"
	"bioq/internal/modules/bank/domain"
	bankin "bioq/internal/modules/bank/port/in"
	bankout "bioq/internal/modules/bank/port/out"
	"bioq/internal/modules/bank/service"
	"bioq/internal/modules/bank/usecase"
	apperrors "bioq/internal/platform/errors"
)

type fakeFetcher struct {
	questions []domain.Question
	err       error
	calls     int
}

func (f *fakeFetcher) Fetch(context.Context, string) ([]domain.Question, error) {
	f.calls++
	return f.questions, f.err
}

type countingStore struct {
	inner bankout.PackStore
	loads int
}

func (s *countingStore) Load(ctx context.Context) ([]domain.Question, error) {
	s.loads++
	return s.inner.Load(ctx)
}

func (s *countingStore) Save(ctx context.Context, questions []domain.Question) (string, error) {
	return s.inner.Save(ctx, questions)
}

func samplePack() []domain.Question {
	return []domain.Question{
		{ID: "q1", Category: "genetics", Difficulty: domain.DifficultyHard, Prompt: "p1", Options: []string{"a", "b", "c"}, CorrectIndex: 0, Explanation: "because"},
		{ID: "q2", Category: "genetics", Difficulty: domain.DifficultyMedium, Prompt: "p2", Options: []string{"a", "b"}, CorrectIndex: 1},
		{ID: "q3", Category: "ecology", Difficulty: domain.DifficultyEasy, Prompt: "p3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
	}
}

type fixture struct {
	store     *countingStore
	fetcher   *fakeFetcher
	projector bankout.BankIndexProjector
	uc        bankin.Usecase
}

func newFixture(t *testing.T, pack []domain.Question) fixture {
	t.Helper()
	dir := t.TempDir()
	inner := adapter.NewFilePackStore(filepath.Join(dir, "questions.json"))
	if pack != nil {
		if _, err := inner.Save(context.Background(), pack); err != nil {
			t.Fatalf("seed pack: %v", err)
		}
	}
	projector, err := adapter.NewSQLiteBankProjector(filepath.Join(dir, "bioq.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	store := &countingStore{inner: inner}
	fetcher := &fakeFetcher{}
	svc := service.NewBankService(store, fetcher, projector)
	return fixture{store: store, fetcher: fetcher, projector: projector, uc: usecase.NewInteractor(svc)}
}

func TestQuestionsLoadPackOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t, samplePack())
	ctx := context.Background()

	first, err := f.uc.Questions(ctx)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(first))
	}
	if _, err := f.uc.Questions(ctx); err != nil {
		t.Fatalf("questions again: %v", err)
	}
	if f.store.loads != 1 {
		t.Fatalf("pack must load once, loaded %d times", f.store.loads)
	}
}

func TestQuestionLookup(t *testing.T) {
	t.Parallel()
	f := newFixture(t, samplePack())
	ctx := context.Background()

	q, err := f.uc.Question(ctx, "q2")
	if err != nil {
		t.Fatalf("question: %v", err)
	}
	if q.Category != "genetics" || q.Difficulty != "medium" {
		t.Fatalf("unexpected question %+v", q)
	}
	if _, err := f.uc.Question(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCategoriesCounted(t *testing.T) {
	t.Parallel()
	f := newFixture(t, samplePack())

	categories, err := f.uc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "ecology" || categories[0].Count != 1 {
		t.Fatalf("unexpected first category %+v", categories[0])
	}
	if categories[1].Name != "genetics" || categories[1].Count != 2 {
		t.Fatalf("unexpected second category %+v", categories[1])
	}
}

func TestValidateCountsAndReprojects(t *testing.T) {
	t.Parallel()
	f := newFixture(t, samplePack())
	ctx := context.Background()

	out, err := f.uc.Validate(ctx)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.QuestionCount != 3 || out.Categories != 2 {
		t.Fatalf("unexpected totals %+v", out)
	}
	if out.Hard != 1 || out.Medium != 1 || out.Easy != 1 {
		t.Fatalf("unexpected difficulty split %+v", out)
	}

	counts, err := f.projector.CategoryCounts(ctx)
	if err != nil {
		t.Fatalf("category counts: %v", err)
	}
	if counts["genetics"] != 2 || counts["ecology"] != 1 {
		t.Fatalf("projection out of date: %v", counts)
	}
}

func TestValidateRejectsBrokenPack(t *testing.T) {
	t.Parallel()
	broken := samplePack()
	broken[1].CorrectIndex = 99
	f := newFixture(t, broken)

	if _, err := f.uc.Validate(context.Background()); err == nil {
		t.Fatalf("broken pack must fail validation")
	}
}

func TestFetchValidatesBeforeSaving(t *testing.T) {
	t.Parallel()
	f := newFixture(t, samplePack())
	ctx := context.Background()

	// Prime the cache so the replacement is observable.
	if _, err := f.uc.Questions(ctx); err != nil {
		t.Fatalf("questions: %v", err)
	}

	bogus := samplePack()
	bogus[0].Options = nil
	f.fetcher.questions = bogus
	if _, err := f.uc.Fetch(ctx, "https://example.com/pack.json"); err == nil {
		t.Fatalf("invalid remote pack must not be saved")
	}
	questions, err := f.uc.Questions(ctx)
	if err != nil {
		t.Fatalf("questions after failed fetch: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("failed fetch must keep the old pack, got %d questions", len(questions))
	}

	f.fetcher.questions = []domain.Question{
		{ID: "n1", Category: "botany", Difficulty: domain.DifficultyHard, Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 0},
	}
	out, err := f.uc.Fetch(ctx, "https://example.com/pack.json")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if out.QuestionCount != 1 || out.Path == "" {
		t.Fatalf("unexpected fetch output %+v", out)
	}
	questions, err = f.uc.Questions(ctx)
	if err != nil {
		t.Fatalf("questions after fetch: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "n1" {
		t.Fatalf("fetch must replace the pack, got %+v", questions)
	}
}

func TestFetchRequiresURL(t *testing.T) {
	t.Parallel()
	f := newFixture(t, samplePack())
	if _, err := f.uc.Fetch(context.Background(), "  "); err == nil {
		t.Fatalf("blank url must fail")
	}
	if f.fetcher.calls != 0 {
		t.Fatalf("blank url must not hit the fetcher")
	}
}

func TestMissingPackSurfacesLoadError(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	if _, err := f.uc.Questions(context.Background()); err == nil {
		t.Fatalf("missing pack must fail")
	}
}
