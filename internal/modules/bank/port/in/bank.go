package in

import (
	"context"

	"bioq/internal/modules/bank/dto"
)

type Usecase interface {
	Questions(ctx context.Context) ([]dto.QuestionOutput, error)
	Question(ctx context.Context, id string) (dto.QuestionOutput, error)
	Categories(ctx context.Context) ([]dto.CategoryOutput, error)
	Validate(ctx context.Context) (dto.ValidateOutput, error)
	Fetch(ctx context.Context, url string) (dto.FetchOutput, error)
}
