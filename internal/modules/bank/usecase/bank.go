package usecase

import (
	"context"
	"sort"

	"bioq/internal/modules/bank/domain"
	"bioq/internal/modules/bank/dto"
	bankin "bioq/internal/modules/bank/port/in"
	"bioq/internal/modules/bank/service"
	apperrors "bioq/internal/platform/errors"
)

type Interactor struct {
	svc *service.BankService
}

func NewInteractor(svc *service.BankService) bankin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Questions(ctx context.Context) ([]dto.QuestionOutput, error) {
	bank, err := i.svc.Bank(ctx)
	if err != nil {
		return nil, err
	}
	questions := bank.All()
	out := make([]dto.QuestionOutput, 0, len(questions))
	for _, q := range questions {
		out = append(out, toOutput(q))
	}
	return out, nil
}

func (i *Interactor) Question(ctx context.Context, id string) (dto.QuestionOutput, error) {
	bank, err := i.svc.Bank(ctx)
	if err != nil {
		return dto.QuestionOutput{}, err
	}
	q, ok := bank.ByID(id)
	if !ok {
		return dto.QuestionOutput{}, apperrors.ErrNotFound
	}
	return toOutput(q), nil
}

func (i *Interactor) Categories(ctx context.Context) ([]dto.CategoryOutput, error) {
	bank, err := i.svc.Bank(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, q := range bank.All() {
		counts[q.Category]++
	}
	out := make([]dto.CategoryOutput, 0, len(counts))
	for _, name := range bank.Categories() {
		out = append(out, dto.CategoryOutput{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (i *Interactor) Validate(ctx context.Context) (dto.ValidateOutput, error) {
	bank, err := i.svc.Bank(ctx)
	if err != nil {
		return dto.ValidateOutput{}, err
	}
	if err := i.svc.Reproject(ctx); err != nil {
		return dto.ValidateOutput{}, err
	}
	out := dto.ValidateOutput{
		QuestionCount: bank.Len(),
		Categories:    len(bank.Categories()),
	}
	for _, q := range bank.All() {
		switch q.Difficulty {
		case domain.DifficultyHard:
			out.Hard++
		case domain.DifficultyMedium:
			out.Medium++
		default:
			out.Easy++
		}
	}
	return out, nil
}

func (i *Interactor) Fetch(ctx context.Context, url string) (dto.FetchOutput, error) {
	questions, path, err := i.svc.Fetch(ctx, url)
	if err != nil {
		return dto.FetchOutput{}, err
	}
	return dto.FetchOutput{QuestionCount: len(questions), Path: path}, nil
}

func toOutput(q domain.Question) dto.QuestionOutput {
	return dto.QuestionOutput{
		ID:           q.ID,
		Category:     q.Category,
		Difficulty:   string(q.Difficulty),
		Prompt:       q.Prompt,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}
}
