package out

import (
	"context"

	"bioq/internal/modules/bank/domain"
)

// PackStore loads and saves the local question pack.
type PackStore interface {
	Load(ctx context.Context) ([]domain.Question, error)
	Save(ctx context.Context, questions []domain.Question) (string, error)
}

// PackFetcher retrieves a question pack from a remote source. One-shot:
// callers do not retry, a failure is terminal for the load.
type PackFetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.Question, error)
}

// BankIndexProjector maintains the queryable projection of the bank.
type BankIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertQuestion(ctx context.Context, question domain.Question) error
	CategoryCounts(ctx context.Context) (map[string]int, error)
}
