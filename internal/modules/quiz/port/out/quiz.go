package out

import (
	"context"

	"bioq/internal/modules/quiz/domain"
)

// SessionStore persists the daily session record. Implementations treat
// corrupt or unreadable data as absent rather than failing the state
// machine.
type SessionStore interface {
	Load(ctx context.Context, day string) (domain.Record, error)
	Save(ctx context.Context, record domain.Record) error
	// Merge applies the delta against the latest stored record, falling back
	// to the given record when nothing valid is stored.
	Merge(ctx context.Context, day string, delta domain.Delta, fallback domain.Record) error
	Delete(ctx context.Context, day string) error
}

// PlayedMarkerStore remembers which days already have a completed attempt.
type PlayedMarkerStore interface {
	MarkPlayed(ctx context.Context, day string) error
	Played(ctx context.Context, day string) (bool, error)
}

// AttemptSink receives the summary of a completed weekly session exactly
// once per session. Duplicate hand-offs for the same identity and day must
// resolve as already-saved, not as an error.
type AttemptSink interface {
	RecordAttempt(ctx context.Context, summary domain.AttemptSummary) error
}
