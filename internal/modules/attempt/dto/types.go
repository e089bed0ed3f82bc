package dto

type RecordInput struct {
	Date           string
	WeekID         string
	Score          int
	QuestionCount  int
	TotalElapsedMs int64
	TimeBudgetMs   int64
}

type AttemptOutput struct {
	Date           string
	WeekID         string
	Score          int
	QuestionCount  int
	TotalElapsedMs int64
	Identity       string
	Synced         bool
}

type StandingOutput struct {
	Rank           int
	Identity       string
	Score          int
	QuestionCount  int
	TotalElapsedMs int64
	Date           string
}

type SyncOutput struct {
	Submitted int
	Duplicate int
	Failed    int
}

type ProfileOutput struct {
	DeviceID string
	UserID   string
	Linked   bool
}
