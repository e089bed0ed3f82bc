package dto

type PracticeInput struct {
	Category   string
	Difficulty string
	Count      int
}

type QuestionView struct {
	Index      int
	Total      int
	ID         string
	Category   string
	Difficulty string
	Prompt     string
	Options    []string
}

type StartOutput struct {
	Mode         string
	Date         string
	WeekID       string
	Total        int
	Score        int
	Resumed      bool
	Locked       bool
	TimeBudgetMs int64
	Question     QuestionView
}

type AnswerOutput struct {
	Status       string
	CorrectIndex int
	Explanation  string
	Score        int
	ElapsedMs    int64
}

type SummaryOutput struct {
	Mode           string
	Date           string
	WeekID         string
	Score          int
	Total          int
	TotalElapsedMs int64
	Statuses       []string
	SubmitError    string
}

type AdvanceOutput struct {
	Finished bool
	Question QuestionView
	Summary  SummaryOutput
}

type StatusOutput struct {
	Date         string
	WeekID       string
	Exists       bool
	Played       bool
	Total        int
	Answered     int
	Score        int
	CurrentIndex int
}
