package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bioq/internal/modules/bank/domain"
	bankout "bioq/internal/modules/bank/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteBankProjector struct {
	db *sql.DB
}

func NewSQLiteBankProjector(dbPath string) (bankout.BankIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteBankProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteBankProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  prompt TEXT NOT NULL,
  option_count INTEGER NOT NULL,
  correct_index INTEGER NOT NULL,
  has_explanation INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create questions table: %w", err)
	}
	return nil
}

func (s *SQLiteBankProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("reset questions: %w", err)
	}
	return nil
}

func (s *SQLiteBankProjector) UpsertQuestion(ctx context.Context, question domain.Question) error {
	const stmt = `
INSERT INTO questions (id, category, difficulty, prompt, option_count, correct_index, has_explanation)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  category=excluded.category,
  difficulty=excluded.difficulty,
  prompt=excluded.prompt,
  option_count=excluded.option_count,
  correct_index=excluded.correct_index,
  has_explanation=excluded.has_explanation;
`
	hasExplanation := 0
	if strings.TrimSpace(question.Explanation) != "" {
		hasExplanation = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		question.ID,
		question.Category,
		string(question.Difficulty),
		question.Prompt,
		len(question.Options),
		question.CorrectIndex,
		hasExplanation,
	)
	if err != nil {
		return fmt.Errorf("upsert question: %w", err)
	}
	return nil
}

func (s *SQLiteBankProjector) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM questions GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}
