package domain_test

import (
	"testing"

	"bioq/internal/modules/bank/domain"
)

func question(id, category string, difficulty domain.Difficulty) domain.Question {
	return domain.Question{
		ID:           id,
		Category:     category,
		Difficulty:   difficulty,
		Prompt:       "prompt for " + id,
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: 1,
	}
}

func TestQuestionValidation(t *testing.T) {
	t.Parallel()
	if err := question("q1", "genetics", domain.DifficultyHard).Validate(); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	cases := map[string]func(*domain.Question){
		"missing id":       func(q *domain.Question) { q.ID = "  " },
		"missing prompt":   func(q *domain.Question) { q.Prompt = "" },
		"one option":       func(q *domain.Question) { q.Options = q.Options[:1] },
		"index too high":   func(q *domain.Question) { q.CorrectIndex = 4 },
		"negative index":   func(q *domain.Question) { q.CorrectIndex = -1 },
		"bogus difficulty": func(q *domain.Question) { q.Difficulty = "impossible" },
	}
	for name, mutate := range cases {
		q := question("q1", "genetics", domain.DifficultyHard)
		mutate(&q)
		if err := q.Validate(); err == nil {
			t.Fatalf("%s: expected validation failure", name)
		}
	}
}

func TestNewBankRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewBank([]domain.Question{
		question("q1", "genetics", domain.DifficultyHard),
		question("q1", "ecology", domain.DifficultyMedium),
	}); err == nil {
		t.Fatalf("duplicate ids must fail")
	}
}

func TestBankLookupAndFilter(t *testing.T) {
	t.Parallel()
	bank, err := domain.NewBank([]domain.Question{
		question("q1", "genetics", domain.DifficultyHard),
		question("q2", "genetics", domain.DifficultyMedium),
		question("q3", "ecology", domain.DifficultyEasy),
	})
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	if bank.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", bank.Len())
	}
	if _, ok := bank.ByID("q2"); !ok {
		t.Fatalf("lookup q2 should succeed")
	}
	if _, ok := bank.ByID("missing"); ok {
		t.Fatalf("missing id must not resolve")
	}
	if got := len(bank.Filter("genetics", "")); got != 2 {
		t.Fatalf("category filter: got %d", got)
	}
	if got := len(bank.Filter("", domain.DifficultyEasy)); got != 1 {
		t.Fatalf("difficulty filter: got %d", got)
	}
	if got := len(bank.Categories()); got != 2 {
		t.Fatalf("categories: got %d", got)
	}
}
