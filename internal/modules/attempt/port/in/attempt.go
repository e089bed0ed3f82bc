package in

import (
	"context"

	"bioq/internal/modules/attempt/dto"
)

type Usecase interface {
	// Record stores a completed attempt locally and submits it remotely when
	// a collaborator is configured. A duplicate for the same identity and day
	// resolves as already-saved.
	Record(ctx context.Context, input dto.RecordInput) error
	List(ctx context.Context, limit int) ([]dto.AttemptOutput, error)
	Standings(ctx context.Context, weekID string) ([]dto.StandingOutput, error)
	// Sync pushes locally-recorded attempts that have not reached the remote
	// collaborator yet.
	Sync(ctx context.Context) (dto.SyncOutput, error)
	Profile(ctx context.Context) (dto.ProfileOutput, error)
	Link(ctx context.Context, token string) (dto.ProfileOutput, error)
}
