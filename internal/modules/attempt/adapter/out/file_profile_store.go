package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bioq/internal/modules/attempt/domain"
	attemptout "bioq/internal/modules/attempt/port/out"
)

type FileProfileStore struct {
	path string
}

func NewFileProfileStore(dataPath string) attemptout.ProfileStore {
	return &FileProfileStore{path: filepath.Join(dataPath, ".bioq", "profile.json")}
}

func (s *FileProfileStore) Load(_ context.Context) (domain.Profile, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	profile := domain.Profile{}
	if err := json.Unmarshal(payload, &profile); err != nil {
		// A corrupt profile is replaced, not fatal.
		return domain.Profile{}, nil
	}
	return profile, nil
}

func (s *FileProfileStore) Save(_ context.Context, profile domain.Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	payload, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
