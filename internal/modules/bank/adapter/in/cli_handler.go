package in

import (
	"context"

	"bioq/internal/modules/bank/dto"
	bankin "bioq/internal/modules/bank/port/in"
)

type CLIHandler struct {
	usecase bankin.Usecase
}

func NewCLIHandler(usecase bankin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Questions(ctx context.Context) ([]dto.QuestionOutput, error) {
	return h.usecase.Questions(ctx)
}

func (h CLIHandler) Question(ctx context.Context, id string) (dto.QuestionOutput, error) {
	return h.usecase.Question(ctx, id)
}

func (h CLIHandler) Categories(ctx context.Context) ([]dto.CategoryOutput, error) {
	return h.usecase.Categories(ctx)
}

func (h CLIHandler) Validate(ctx context.Context) (dto.ValidateOutput, error) {
	return h.usecase.Validate(ctx)
}

func (h CLIHandler) Fetch(ctx context.Context, url string) (dto.FetchOutput, error) {
	return h.usecase.Fetch(ctx, url)
}
