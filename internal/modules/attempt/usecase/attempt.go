package usecase

import (
	"context"
	"errors"
	"fmt"

	"bioq/internal/modules/attempt/domain"
	"bioq/internal/modules/attempt/dto"
	attemptin "bioq/internal/modules/attempt/port/in"
	attemptout "bioq/internal/modules/attempt/port/out"
	"bioq/internal/modules/attempt/service"
	apperrors "bioq/internal/platform/errors"
)

type Interactor struct {
	svc    *service.AttemptService
	store  attemptout.AttemptStore
	submit attemptout.SubmitClient
}

func NewInteractor(svc *service.AttemptService, store attemptout.AttemptStore, submit attemptout.SubmitClient) attemptin.Usecase {
	return &Interactor{svc: svc, store: store, submit: submit}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) error {
	attempt, err := i.svc.Build(ctx, input.Date, input.WeekID, input.Score, input.QuestionCount, input.TotalElapsedMs, input.TimeBudgetMs)
	if err != nil {
		return err
	}
	if err := i.store.Insert(ctx, attempt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAttempt) {
			// Already recorded for this identity and day; saved is saved.
			return nil
		}
		return err
	}
	if i.submit == nil {
		return nil
	}
	if err := i.submit.Submit(ctx, attempt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAttempt) {
			_ = i.store.MarkSynced(ctx, attempt.Date, attempt.Identity())
			return nil
		}
		// Row stays unsynced; `attempts sync` retries it manually.
		return fmt.Errorf("submit attempt: %w", err)
	}
	return i.store.MarkSynced(ctx, attempt.Date, attempt.Identity())
}

func (i *Interactor) List(ctx context.Context, limit int) ([]dto.AttemptOutput, error) {
	attempts, err := i.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttemptOutput, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, dto.AttemptOutput{
			Date:           a.Date,
			WeekID:         a.WeekID,
			Score:          a.Score,
			QuestionCount:  a.QuestionCount,
			TotalElapsedMs: a.TotalElapsedMs,
			Identity:       a.Identity(),
			Synced:         a.Synced,
		})
	}
	return out, nil
}

func (i *Interactor) Standings(ctx context.Context, weekID string) ([]dto.StandingOutput, error) {
	attempts, err := i.store.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	standings := domain.Rankings(attempts)
	out := make([]dto.StandingOutput, 0, len(standings))
	for _, s := range standings {
		out = append(out, dto.StandingOutput{
			Rank:           s.Rank,
			Identity:       s.Identity,
			Score:          s.Score,
			QuestionCount:  s.QuestionCount,
			TotalElapsedMs: s.TotalElapsedMs,
			Date:           s.Date,
		})
	}
	return out, nil
}

func (i *Interactor) Sync(ctx context.Context) (dto.SyncOutput, error) {
	out := dto.SyncOutput{}
	if i.submit == nil {
		return out, fmt.Errorf("no attempt collaborator configured")
	}
	attempts, err := i.store.ListUnsynced(ctx)
	if err != nil {
		return out, err
	}
	for _, a := range attempts {
		err := i.submit.Submit(ctx, a)
		switch {
		case err == nil:
			out.Submitted++
		case errors.Is(err, apperrors.ErrDuplicateAttempt):
			out.Duplicate++
		default:
			out.Failed++
			continue
		}
		_ = i.store.MarkSynced(ctx, a.Date, a.Identity())
	}
	if out.Failed > 0 {
		return out, fmt.Errorf("%d attempts failed to submit", out.Failed)
	}
	return out, nil
}

func (i *Interactor) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	profile, err := i.svc.Profile(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) Link(ctx context.Context, token string) (dto.ProfileOutput, error) {
	profile, err := i.svc.Link(ctx, token)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func toProfileOutput(profile domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		DeviceID: profile.DeviceID,
		UserID:   profile.UserID,
		Linked:   profile.UserID != "",
	}
}
