package out

import (
	"context"

	attemptdto "bioq/internal/modules/attempt/dto"
	attemptin "bioq/internal/modules/attempt/port/in"
	"bioq/internal/modules/quiz/domain"
	quizout "bioq/internal/modules/quiz/port/out"
)

// AttemptSinkAdapter bridges finished sessions into the attempt module.
type AttemptSinkAdapter struct {
	attempts attemptin.Usecase
}

func NewAttemptSinkAdapter(attempts attemptin.Usecase) quizout.AttemptSink {
	return &AttemptSinkAdapter{attempts: attempts}
}

func (a *AttemptSinkAdapter) RecordAttempt(ctx context.Context, summary domain.AttemptSummary) error {
	return a.attempts.Record(ctx, attemptdto.RecordInput{
		Date:           summary.Date,
		WeekID:         summary.WeekID,
		Score:          summary.Score,
		QuestionCount:  summary.QuestionCount,
		TotalElapsedMs: summary.TotalElapsedMs,
		TimeBudgetMs:   summary.TimeBudgetMs,
	})
}
