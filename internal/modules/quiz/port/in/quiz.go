package in

import (
	"context"

	"bioq/internal/modules/quiz/dto"
)

type Usecase interface {
	// StartWeekly starts or resumes today's weekly session.
	StartWeekly(ctx context.Context) (dto.StartOutput, error)
	// StartPractice starts an in-memory practice session; never persisted.
	StartPractice(ctx context.Context, input dto.PracticeInput) (dto.StartOutput, error)
	// RemainingMs reports the time left on the running question.
	RemainingMs(ctx context.Context) (int64, error)
	// Choose answers the running question.
	Choose(ctx context.Context, optionIndex int) (dto.AnswerOutput, error)
	// Timeout force-resolves the running question once its deadline passed.
	// Reports false when nothing fired (already locked, or not yet expired).
	Timeout(ctx context.Context) (dto.AnswerOutput, bool, error)
	// Advance moves past the locked question or finishes the session.
	Advance(ctx context.Context) (dto.AdvanceOutput, error)
	// Abandon penalizes a running weekly question and snapshots state.
	// Synchronous and local-only so it can run during teardown.
	Abandon(ctx context.Context) error
	// Status reports today's persisted weekly progress.
	Status(ctx context.Context) (dto.StatusOutput, error)
}
