package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bioq/internal/modules/attempt/domain"
	attemptout "bioq/internal/modules/attempt/port/out"
	apperrors "bioq/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteAttemptStore struct {
	db *sql.DB
}

func NewSQLiteAttemptStore(dbPath string) (attemptout.AttemptStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteAttemptStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteAttemptStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS attempts (
  date TEXT NOT NULL,
  week_id TEXT NOT NULL,
  identity TEXT NOT NULL,
  device_id TEXT NOT NULL,
  user_id TEXT,
  score INTEGER NOT NULL,
  question_count INTEGER NOT NULL,
  total_elapsed_ms INTEGER NOT NULL,
  time_budget_ms INTEGER NOT NULL,
  synced INTEGER NOT NULL DEFAULT 0,
  recorded_at TEXT NOT NULL,
  PRIMARY KEY (date, identity)
);
CREATE INDEX IF NOT EXISTS idx_attempts_week ON attempts(week_id);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create attempts table: %w", err)
	}
	return nil
}

// Insert enforces the one-attempt-per-identity-per-day rule with the table's
// primary key; a duplicate reports ErrDuplicateAttempt and changes nothing.
func (s *SQLiteAttemptStore) Insert(ctx context.Context, attempt domain.Attempt) error {
	const stmt = `
INSERT OR IGNORE INTO attempts
  (date, week_id, identity, device_id, user_id, score, question_count, total_elapsed_ms, time_budget_ms, synced, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?);
`
	result, err := s.db.ExecContext(ctx, stmt,
		attempt.Date,
		attempt.WeekID,
		attempt.Identity(),
		attempt.DeviceID,
		attempt.UserID,
		attempt.Score,
		attempt.QuestionCount,
		attempt.TotalElapsedMs,
		attempt.TimeBudgetMs,
		attempt.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDuplicateAttempt
	}
	return nil
}

func (s *SQLiteAttemptStore) ListByWeek(ctx context.Context, weekID string) ([]domain.Attempt, error) {
	const query = `
SELECT date, week_id, identity, device_id, user_id, score, question_count, total_elapsed_ms, time_budget_ms, synced, recorded_at
FROM attempts
WHERE week_id = ?
ORDER BY score DESC, total_elapsed_ms ASC, date ASC;
`
	return s.list(ctx, query, weekID)
}

func (s *SQLiteAttemptStore) ListRecent(ctx context.Context, limit int) ([]domain.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT date, week_id, identity, device_id, user_id, score, question_count, total_elapsed_ms, time_budget_ms, synced, recorded_at
FROM attempts
ORDER BY date DESC
LIMIT ?;
`
	return s.list(ctx, query, limit)
}

func (s *SQLiteAttemptStore) ListUnsynced(ctx context.Context) ([]domain.Attempt, error) {
	const query = `
SELECT date, week_id, identity, device_id, user_id, score, question_count, total_elapsed_ms, time_budget_ms, synced, recorded_at
FROM attempts
WHERE synced = 0
ORDER BY date ASC;
`
	return s.list(ctx, query)
}

func (s *SQLiteAttemptStore) MarkSynced(ctx context.Context, date, identity string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE attempts SET synced = 1 WHERE date = ? AND identity = ?`, date, identity); err != nil {
		return fmt.Errorf("mark attempt synced: %w", err)
	}
	return nil
}

func (s *SQLiteAttemptStore) list(ctx context.Context, query string, args ...any) ([]domain.Attempt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	attempts := []domain.Attempt{}
	for rows.Next() {
		var a domain.Attempt
		var identity string
		var userID sql.NullString
		var synced int
		var recordedAt string
		if err := rows.Scan(&a.Date, &a.WeekID, &identity, &a.DeviceID, &userID, &a.Score, &a.QuestionCount, &a.TotalElapsedMs, &a.TimeBudgetMs, &synced, &recordedAt); err != nil {
			return nil, err
		}
		a.UserID = userID.String
		a.Synced = synced == 1
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			a.RecordedAt = t
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
