package in

import (
	"context"

	"bioq/internal/modules/attempt/dto"
	attemptin "bioq/internal/modules/attempt/port/in"
)

type CLIHandler struct {
	usecase attemptin.Usecase
}

func NewCLIHandler(usecase attemptin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]dto.AttemptOutput, error) {
	return h.usecase.List(ctx, limit)
}

func (h CLIHandler) Standings(ctx context.Context, weekID string) ([]dto.StandingOutput, error) {
	return h.usecase.Standings(ctx, weekID)
}

func (h CLIHandler) Sync(ctx context.Context) (dto.SyncOutput, error) {
	return h.usecase.Sync(ctx)
}

func (h CLIHandler) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Profile(ctx)
}

func (h CLIHandler) Link(ctx context.Context, token string) (dto.ProfileOutput, error) {
	return h.usecase.Link(ctx, token)
}
