package service

import (
	"context"

	"bioq/internal/modules/quiz/domain"
	"bioq/internal/platform/clock"
	"bioq/internal/platform/datekey"
	"bioq/internal/platform/id"
)

// QuizService owns selection and record creation. The clock and id generator
// are injected so weekly determinism and practice freshness are both
// testable.
type QuizService struct {
	clock        clock.Clock
	idGen        id.Generator
	weeklyCount  int
	timeBudgetMs int64
}

func NewQuizService(clk clock.Clock, idGen id.Generator, weeklyCount int, timeBudgetMs int64) *QuizService {
	if weeklyCount <= 0 {
		weeklyCount = domain.DefaultWeeklyCount
	}
	return &QuizService{clock: clk, idGen: idGen, weeklyCount: weeklyCount, timeBudgetMs: timeBudgetMs}
}

func (s *QuizService) Now() (day, week string) {
	now := s.clock.Now()
	return datekey.Day(now), datekey.Week(now)
}

func (s *QuizService) Clock() clock.Clock  { return s.clock }
func (s *QuizService) TimeBudgetMs() int64 { return s.timeBudgetMs }
func (s *QuizService) WeeklyCount() int    { return s.weeklyCount }

// WeeklyRecord builds a fresh record for today from the deterministic weekly
// order.
func (s *QuizService) WeeklyRecord(_ context.Context, pool []domain.PoolEntry) domain.Record {
	day, week := s.Now()
	order := domain.WeeklyOrder(pool, day, s.weeklyCount)
	return domain.NewRecord(day, week, order, s.timeBudgetMs)
}

// WeeklyOrderToday recomputes today's selection; resume validation compares
// the stored record against it.
func (s *QuizService) WeeklyOrderToday(pool []domain.PoolEntry) []string {
	day, _ := s.Now()
	return domain.WeeklyOrder(pool, day, s.weeklyCount)
}

// PracticeRecord builds an in-memory practice record. Each call draws a
// fresh seed, so replaying reshuffles.
func (s *QuizService) PracticeRecord(pool []domain.PoolEntry, category, difficulty string, n int) domain.Record {
	day, week := s.Now()
	order := domain.PracticeOrder(pool, category, difficulty, n, s.idGen.New())
	return domain.NewRecord(day, week, order, s.timeBudgetMs)
}
