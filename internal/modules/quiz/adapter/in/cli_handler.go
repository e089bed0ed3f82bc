package in

import (
	"context"

	"bioq/internal/modules/quiz/dto"
	quizin "bioq/internal/modules/quiz/port/in"
)

type CLIHandler struct {
	usecase quizin.Usecase
}

func NewCLIHandler(usecase quizin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) StartWeekly(ctx context.Context) (dto.StartOutput, error) {
	return h.usecase.StartWeekly(ctx)
}

func (h CLIHandler) StartPractice(ctx context.Context, category, difficulty string, count int) (dto.StartOutput, error) {
	return h.usecase.StartPractice(ctx, dto.PracticeInput{Category: category, Difficulty: difficulty, Count: count})
}

func (h CLIHandler) RemainingMs(ctx context.Context) (int64, error) {
	return h.usecase.RemainingMs(ctx)
}

func (h CLIHandler) Choose(ctx context.Context, optionIndex int) (dto.AnswerOutput, error) {
	return h.usecase.Choose(ctx, optionIndex)
}

func (h CLIHandler) Timeout(ctx context.Context) (dto.AnswerOutput, bool, error) {
	return h.usecase.Timeout(ctx)
}

func (h CLIHandler) Advance(ctx context.Context) (dto.AdvanceOutput, error) {
	return h.usecase.Advance(ctx)
}

func (h CLIHandler) Abandon(ctx context.Context) error {
	return h.usecase.Abandon(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
