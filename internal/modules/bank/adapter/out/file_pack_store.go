package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bioq/internal/modules/bank/domain"
	bankout "bioq/internal/modules/bank/port/out"
)

type FilePackStore struct {
	path string
}

func NewFilePackStore(path string) bankout.PackStore {
	return &FilePackStore{path: path}
}

func (s *FilePackStore) Load(_ context.Context) ([]domain.Question, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read pack %s: %w", s.path, err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(payload, &questions); err != nil {
		return nil, fmt.Errorf("decode pack %s: %w", s.path, err)
	}
	return questions, nil
}

func (s *FilePackStore) Save(_ context.Context, questions []domain.Question) (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("create pack dir: %w", err)
	}
	payload, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal pack: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write pack: %w", err)
	}
	return s.path, nil
}
