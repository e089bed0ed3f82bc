package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bioq/internal/modules/quiz/domain"
	quizout "bioq/internal/modules/quiz/port/out"
	apperrors "bioq/internal/platform/errors"
)

// FileSessionStore keeps one JSON file per day under the data dir. Corrupt
// or schema-mismatched files read as absent so the state machine never sees
// a storage error on load.
type FileSessionStore struct {
	dir string
}

func NewFileSessionStore(dataPath string) quizout.SessionStore {
	return &FileSessionStore{dir: filepath.Join(dataPath, ".bioq", "sessions")}
}

func (s *FileSessionStore) path(day string) string {
	return filepath.Join(s.dir, "session-"+day+".json")
}

func (s *FileSessionStore) Load(_ context.Context, day string) (domain.Record, error) {
	payload, err := os.ReadFile(s.path(day))
	if err != nil {
		return domain.Record{}, apperrors.ErrNoSession
	}
	record := domain.Record{}
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Record{}, apperrors.ErrNoSession
	}
	if !record.Valid() || record.Date != day {
		return domain.Record{}, apperrors.ErrNoSession
	}
	return record, nil
}

func (s *FileSessionStore) Save(_ context.Context, record domain.Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	if err := os.WriteFile(s.path(record.Date), payload, 0o644); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// Merge re-reads the latest stored record before applying the delta, so a
// write racing an earlier one in the same teardown path cannot clobber it.
func (s *FileSessionStore) Merge(ctx context.Context, day string, delta domain.Delta, fallback domain.Record) error {
	latest, err := s.Load(ctx, day)
	if err != nil {
		latest = fallback
	}
	return s.Save(ctx, delta.Apply(latest))
}

func (s *FileSessionStore) Delete(_ context.Context, day string) error {
	if err := os.Remove(s.path(day)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
