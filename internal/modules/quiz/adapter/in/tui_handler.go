package in

import (
	"context"

	"bioq/internal/modules/quiz/dto"
	quizin "bioq/internal/modules/quiz/port/in"
)

// TUIHandler exposes the session operations with the shapes the quiz view
// consumes.
type TUIHandler struct {
	usecase quizin.Usecase
}

func NewTUIHandler(usecase quizin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) StartWeekly(ctx context.Context) (dto.StartOutput, error) {
	return h.usecase.StartWeekly(ctx)
}

func (h TUIHandler) StartPractice(ctx context.Context, input dto.PracticeInput) (dto.StartOutput, error) {
	return h.usecase.StartPractice(ctx, input)
}

func (h TUIHandler) RemainingMs(ctx context.Context) (int64, error) {
	return h.usecase.RemainingMs(ctx)
}

func (h TUIHandler) Choose(ctx context.Context, optionIndex int) (dto.AnswerOutput, error) {
	return h.usecase.Choose(ctx, optionIndex)
}

func (h TUIHandler) Timeout(ctx context.Context) (dto.AnswerOutput, bool, error) {
	return h.usecase.Timeout(ctx)
}

func (h TUIHandler) Advance(ctx context.Context) (dto.AdvanceOutput, error) {
	return h.usecase.Advance(ctx)
}

func (h TUIHandler) Abandon(ctx context.Context) error {
	return h.usecase.Abandon(ctx)
}

func (h TUIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
