package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"bioq/internal/modules/bank/domain"
	bankout "bioq/internal/modules/bank/port/out"
)

// BankService loads the question pack once per process and serves it
// read-only thereafter.
type BankService struct {
	store     bankout.PackStore
	fetcher   bankout.PackFetcher
	projector bankout.BankIndexProjector

	mu   sync.Mutex
	bank *domain.Bank
}

func NewBankService(store bankout.PackStore, fetcher bankout.PackFetcher, projector bankout.BankIndexProjector) *BankService {
	return &BankService{store: store, fetcher: fetcher, projector: projector}
}

// Bank returns the loaded bank, loading it on first use. Load failure is
// terminal: there is no retry, the caller surfaces the error and stops.
func (s *BankService) Bank(ctx context.Context) (*domain.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bank != nil {
		return s.bank, nil
	}
	questions, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question pack: %w", err)
	}
	bank, err := domain.NewBank(questions)
	if err != nil {
		return nil, fmt.Errorf("validate question pack: %w", err)
	}
	s.bank = bank
	return s.bank, nil
}

// Reproject rebuilds the sqlite projection from the loaded bank.
func (s *BankService) Reproject(ctx context.Context) error {
	bank, err := s.Bank(ctx)
	if err != nil {
		return err
	}
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, q := range bank.All() {
		if err := s.projector.UpsertQuestion(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Fetch downloads a remote pack, validates it, and replaces the local one.
func (s *BankService) Fetch(ctx context.Context, url string) ([]domain.Question, string, error) {
	if strings.TrimSpace(url) == "" {
		return nil, "", fmt.Errorf("pack url is required")
	}
	if s.fetcher == nil {
		return nil, "", fmt.Errorf("no pack fetcher configured")
	}
	questions, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("fetch question pack: %w", err)
	}
	if _, err := domain.NewBank(questions); err != nil {
		return nil, "", fmt.Errorf("validate fetched pack: %w", err)
	}
	path, err := s.store.Save(ctx, questions)
	if err != nil {
		return nil, "", fmt.Errorf("save question pack: %w", err)
	}
	s.mu.Lock()
	s.bank = nil
	s.mu.Unlock()
	return questions, path, nil
}
