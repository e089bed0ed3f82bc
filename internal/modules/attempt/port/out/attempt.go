package out

import (
	"context"

	"bioq/internal/modules/attempt/domain"
)

// AttemptStore is the local attempt history. Insert must enforce at most
// one attempt per identity per day and report apperrors.ErrDuplicateAttempt
// when the row already exists.
type AttemptStore interface {
	Insert(ctx context.Context, attempt domain.Attempt) error
	// ListByWeek returns the week's attempts ordered by score descending,
	// elapsed ascending.
	ListByWeek(ctx context.Context, weekID string) ([]domain.Attempt, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Attempt, error)
	ListUnsynced(ctx context.Context) ([]domain.Attempt, error)
	MarkSynced(ctx context.Context, date, identity string) error
}

// SubmitClient pushes an attempt to the remote collaborator, which enforces
// uniqueness per identity and day server-side. Implementations report
// apperrors.ErrDuplicateAttempt for a uniqueness violation so callers can
// treat it as saved.
type SubmitClient interface {
	Submit(ctx context.Context, attempt domain.Attempt) error
}

// ProfileStore persists the local identity.
type ProfileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}

// IdentityClient resolves the authenticated user behind a token, if any.
type IdentityClient interface {
	WhoAmI(ctx context.Context, token string) (string, error)
}
