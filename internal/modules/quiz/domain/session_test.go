package domain_test

import (
	"testing"

	"bioq/internal/modules/quiz/domain"
)

func validRecord() domain.Record {
	record := domain.NewRecord("2026-03-10", "2026-W11", []string{"qa", "qb", "qc"}, 20000)
	record.Statuses[0] = domain.StatusCorrect
	record.ElapsedMs[0] = 4000
	record.Score = 1
	record.CurrentIndex = 1
	return record
}

func TestRecordValidation(t *testing.T) {
	t.Parallel()
	if !validRecord().Valid() {
		t.Fatalf("baseline record must be valid")
	}

	mutations := map[string]func(*domain.Record){
		"no questions":        func(r *domain.Record) { r.QuestionIDs = nil },
		"status length":       func(r *domain.Record) { r.Statuses = r.Statuses[:2] },
		"elapsed length":      func(r *domain.Record) { r.ElapsedMs = append(r.ElapsedMs, 1) },
		"negative index":      func(r *domain.Record) { r.CurrentIndex = -1 },
		"index past end":      func(r *domain.Record) { r.CurrentIndex = 3 },
		"zero budget":         func(r *domain.Record) { r.TimeBudgetMs = 0 },
		"unknown status":      func(r *domain.Record) { r.Statuses[1] = "maybe" },
		"score inconsistency": func(r *domain.Record) { r.Score = 2 },
	}
	for name, mutate := range mutations {
		record := validRecord()
		mutate(&record)
		if record.Valid() {
			t.Fatalf("%s: record should be invalid", name)
		}
	}
}

func TestRecordAggregates(t *testing.T) {
	t.Parallel()
	record := validRecord()
	record.Statuses[1] = domain.StatusWrong
	record.ElapsedMs[1] = 6000
	if got := record.TotalElapsedMs(); got != 10000 {
		t.Fatalf("total elapsed: got %d", got)
	}
	if got := record.Answered(); got != 2 {
		t.Fatalf("answered: got %d", got)
	}
	summary := record.Summary()
	if summary.Score != 1 || summary.QuestionCount != 3 || summary.TotalElapsedMs != 10000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestDeltaApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	before := validRecord()
	delta := domain.Delta{Index: 1, Status: domain.StatusWrong, ElapsedMs: 7000, NewIndex: 2}

	after := delta.Apply(before)
	if before.Statuses[1] != domain.StatusUnanswered || before.CurrentIndex != 1 {
		t.Fatalf("apply mutated its input: %+v", before)
	}
	if after.Statuses[1] != domain.StatusWrong || after.ElapsedMs[1] != 7000 || after.CurrentIndex != 2 {
		t.Fatalf("delta not applied: %+v", after)
	}
}

func TestDeltaApplyNeverDowngradesResolvedStatus(t *testing.T) {
	t.Parallel()
	record := validRecord()
	// A stale penalty write racing the answer that already landed.
	delta := domain.Delta{Index: 0, Status: domain.StatusPenalized, ElapsedMs: 20000, NewIndex: 1}

	after := delta.Apply(record)
	if after.Statuses[0] != domain.StatusCorrect || after.Score != 1 || after.ElapsedMs[0] != 4000 {
		t.Fatalf("resolved status was downgraded: %+v", after)
	}
}

func TestDeltaApplyIndexIsMonotonicAndClamped(t *testing.T) {
	t.Parallel()
	record := validRecord()
	record.CurrentIndex = 2

	after := domain.Delta{Index: -1, NewIndex: 1}.Apply(record)
	if after.CurrentIndex != 2 {
		t.Fatalf("index moved backwards: %d", after.CurrentIndex)
	}
	after = domain.Delta{Index: -1, NewIndex: 9}.Apply(record)
	if after.CurrentIndex != 2 {
		t.Fatalf("index must clamp to the last question, got %d", after.CurrentIndex)
	}
}

func TestDeltaApplyIgnoresQuestionFieldsWhenIndexNegative(t *testing.T) {
	t.Parallel()
	record := validRecord()
	after := domain.Delta{Index: -1, NewIndex: -1}.Apply(record)
	if after.Score != record.Score || after.CurrentIndex != record.CurrentIndex {
		t.Fatalf("no-op delta changed the record: %+v", after)
	}
}
