package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bioq/internal/platform/config"
)

func TestDefaultsWhenSettingsMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Settings.WeeklyCount != config.DefaultWeeklyCount {
		t.Fatalf("expected default weekly count, got %d", cfg.Settings.WeeklyCount)
	}
	if cfg.Settings.TimeBudgetMs != config.DefaultTimeBudgetMs {
		t.Fatalf("expected default time budget, got %d", cfg.Settings.TimeBudgetMs)
	}
	if cfg.BankPath != filepath.Join(dir, "questions.json") {
		t.Fatalf("unexpected bank path %s", cfg.BankPath)
	}
	if cfg.DBPath != filepath.Join(dir, ".bioq", "bioq.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
}

func TestSettingsOverrideDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := "weekly_count: 10\ntime_budget_ms: 15000\napi_base_url: https://api.example.test\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Settings.WeeklyCount != 10 || cfg.Settings.TimeBudgetMs != 15000 {
		t.Fatalf("settings not applied: %+v", cfg.Settings)
	}
	if cfg.Settings.APIBaseURL != "https://api.example.test" {
		t.Fatalf("api base url not applied: %s", cfg.Settings.APIBaseURL)
	}
}

func TestMalformedSettingsFail(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("weekly_count: [oops"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("malformed settings must fail loudly")
	}
}

func TestEmptyDataPathFails(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data path must fail")
	}
}
