package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWeeklyCount  = 15
	DefaultTimeBudgetMs = 20000
)

type Config struct {
	DataPath string
	DBPath   string
	BankPath string

	Settings Settings
}

// Settings are user-tunable knobs read from settings.yaml in the data dir.
// A missing file yields defaults; a malformed file is an error so the user
// notices a typo instead of silently playing with wrong rules.
type Settings struct {
	WeeklyCount  int    `yaml:"weekly_count"`
	TimeBudgetMs int64  `yaml:"time_budget_ms"`
	BankURL      string `yaml:"bank_url"`
	APIBaseURL   string `yaml:"api_base_url"`
}

func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath: dataPath,
		DBPath:   filepath.Join(dataPath, ".bioq", "bioq.db"),
		BankPath: filepath.Join(dataPath, "questions.json"),
		Settings: Settings{
			WeeklyCount:  DefaultWeeklyCount,
			TimeBudgetMs: DefaultTimeBudgetMs,
		},
	}
	settings, err := loadSettings(filepath.Join(dataPath, "settings.yaml"))
	if err != nil {
		return Config{}, err
	}
	if settings.WeeklyCount > 0 {
		cfg.Settings.WeeklyCount = settings.WeeklyCount
	}
	if settings.TimeBudgetMs > 0 {
		cfg.Settings.TimeBudgetMs = settings.TimeBudgetMs
	}
	cfg.Settings.BankURL = settings.BankURL
	cfg.Settings.APIBaseURL = settings.APIBaseURL
	return cfg, nil
}

func loadSettings(path string) (Settings, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	settings := Settings{}
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
