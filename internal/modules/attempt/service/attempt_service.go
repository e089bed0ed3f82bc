package service

import (
	"context"
	"fmt"
	"strings"

	"bioq/internal/modules/attempt/domain"
	attemptout "bioq/internal/modules/attempt/port/out"
	"bioq/internal/platform/clock"
	"bioq/internal/platform/id"
)

type AttemptService struct {
	clock    clock.Clock
	idGen    id.Generator
	profiles attemptout.ProfileStore
	identity attemptout.IdentityClient
}

func NewAttemptService(clk clock.Clock, idGen id.Generator, profiles attemptout.ProfileStore, identity attemptout.IdentityClient) *AttemptService {
	return &AttemptService{clock: clk, idGen: idGen, profiles: profiles, identity: identity}
}

// Profile loads the local identity, generating the anonymous device id on
// first use.
func (s *AttemptService) Profile(ctx context.Context) (domain.Profile, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile.DeviceID == "" {
		profile.DeviceID = s.idGen.New()
		if err := s.profiles.Save(ctx, profile); err != nil {
			return domain.Profile{}, err
		}
	}
	return profile, nil
}

// Link stores a bearer token and resolves the authenticated user behind it.
func (s *AttemptService) Link(ctx context.Context, token string) (domain.Profile, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Profile{}, fmt.Errorf("token is required")
	}
	if s.identity == nil {
		return domain.Profile{}, fmt.Errorf("no identity provider configured")
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	userID, err := s.identity.WhoAmI(ctx, token)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("resolve identity: %w", err)
	}
	profile.UserID = userID
	profile.Token = token
	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Build stamps a summary with the current identity and recording time.
func (s *AttemptService) Build(ctx context.Context, date, weekID string, score, questionCount int, totalElapsedMs, timeBudgetMs int64) (domain.Attempt, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return domain.Attempt{}, err
	}
	return domain.Attempt{
		Date:           date,
		WeekID:         weekID,
		Score:          score,
		QuestionCount:  questionCount,
		TotalElapsedMs: totalElapsedMs,
		TimeBudgetMs:   timeBudgetMs,
		DeviceID:       profile.DeviceID,
		UserID:         profile.UserID,
		RecordedAt:     s.clock.Now(),
	}, nil
}
