package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	quizout "bioq/internal/modules/quiz/port/out"
)

// FilePlayedMarker records which days already have a completed weekly
// attempt, preventing a same-day replay after the session record is gone.
type FilePlayedMarker struct {
	path string
}

func NewFilePlayedMarker(dataPath string) quizout.PlayedMarkerStore {
	return &FilePlayedMarker{path: filepath.Join(dataPath, ".bioq", "played.json")}
}

func (s *FilePlayedMarker) load() map[string]bool {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]bool{}
	}
	days := map[string]bool{}
	if err := json.Unmarshal(payload, &days); err != nil {
		return map[string]bool{}
	}
	return days
}

func (s *FilePlayedMarker) MarkPlayed(_ context.Context, day string) error {
	days := s.load()
	days[day] = true
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create marker dir: %w", err)
	}
	payload, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal played marker: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write played marker: %w", err)
	}
	return nil
}

func (s *FilePlayedMarker) Played(_ context.Context, day string) (bool, error) {
	return s.load()[day], nil
}
