package domain

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("unsupported difficulty %q", string(d))
	}
}

// Question is immutable once loaded; the bank owns it read-only for the
// lifetime of the process.
type Question struct {
	ID           string     `json:"id"`
	Category     string     `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	Prompt       string     `json:"prompt"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation,omitempty"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("question id is required")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %s: prompt is required", q.ID)
	}
	if err := q.Difficulty.Validate(); err != nil {
		return fmt.Errorf("question %s: %w", q.ID, err)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: at least two options are required", q.ID)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %s: correct index %d out of range", q.ID, q.CorrectIndex)
	}
	return nil
}

// Bank is an ordered, validated question collection with unique ids.
type Bank struct {
	questions []Question
	byID      map[string]Question
}

func NewBank(questions []Question) (*Bank, error) {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[q.ID]; exists {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		byID[q.ID] = q
	}
	return &Bank{questions: questions, byID: byID}, nil
}

func (b *Bank) Len() int { return len(b.questions) }

// All returns the bank's questions in load order. Callers must not mutate
// the returned slice elements.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func (b *Bank) ByID(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Filter returns questions matching the category and difficulty filters;
// an empty filter value matches everything.
func (b *Bank) Filter(category string, difficulty Difficulty) []Question {
	out := make([]Question, 0, len(b.questions))
	for _, q := range b.questions {
		if category != "" && q.Category != category {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (b *Bank) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, q := range b.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}
