package domain

type Status string

const (
	StatusUnanswered Status = "unanswered"
	StatusCorrect    Status = "correct"
	StatusWrong      Status = "wrong"
	StatusPenalized  Status = "penalized"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnanswered, StatusCorrect, StatusWrong, StatusPenalized:
		return true
	}
	return false
}

// Record is the persisted state of one daily attempt. The three per-question
// slices always share the length of QuestionIDs, and QuestionIDs never
// changes once the record exists.
type Record struct {
	Date         string   `json:"date"`
	WeekID       string   `json:"weekId"`
	QuestionIDs  []string `json:"questionIds"`
	CurrentIndex int      `json:"currentIndex"`
	Statuses     []Status `json:"statuses"`
	ElapsedMs    []int64  `json:"elapsedMs"`
	Score        int      `json:"score"`
	TimeBudgetMs int64    `json:"timeBudgetMs"`
}

func NewRecord(date, weekID string, questionIDs []string, timeBudgetMs int64) Record {
	statuses := make([]Status, len(questionIDs))
	for i := range statuses {
		statuses[i] = StatusUnanswered
	}
	return Record{
		Date:         date,
		WeekID:       weekID,
		QuestionIDs:  questionIDs,
		CurrentIndex: 0,
		Statuses:     statuses,
		ElapsedMs:    make([]int64, len(questionIDs)),
		Score:        0,
		TimeBudgetMs: timeBudgetMs,
	}
}

// Valid reports whether a loaded record is internally consistent. Invalid
// records are discarded and the day starts fresh.
func (r Record) Valid() bool {
	n := len(r.QuestionIDs)
	if n == 0 || len(r.Statuses) != n || len(r.ElapsedMs) != n {
		return false
	}
	if r.CurrentIndex < 0 || r.CurrentIndex >= n {
		return false
	}
	if r.TimeBudgetMs <= 0 {
		return false
	}
	score := 0
	for _, status := range r.Statuses {
		if !status.Valid() {
			return false
		}
		if status == StatusCorrect {
			score++
		}
	}
	return score == r.Score
}

func (r Record) TotalElapsedMs() int64 {
	var total int64
	for _, ms := range r.ElapsedMs {
		total += ms
	}
	return total
}

func (r Record) Answered() int {
	count := 0
	for _, status := range r.Statuses {
		if status != StatusUnanswered && status != "" {
			count++
		}
	}
	return count
}

// Delta is one partial session update, applied against the latest stored
// record rather than a stale in-memory copy. Question-level fields are
// ignored when Index is negative; CurrentIndex moves only when NewIndex is
// non-negative.
type Delta struct {
	Index      int
	Status     Status
	ElapsedMs  int64
	ScoreDelta int
	NewIndex   int
}

// Apply merges the delta into rec and returns the updated record without
// mutating the input. A question already resolved in the stored record is
// left untouched: an abandonment write racing a just-persisted answer must
// not downgrade it.
func (d Delta) Apply(rec Record) Record {
	n := len(rec.QuestionIDs)
	rec.Statuses = append([]Status(nil), rec.Statuses...)
	rec.ElapsedMs = append([]int64(nil), rec.ElapsedMs...)
	if d.Index >= 0 && d.Index < n && d.Status != "" {
		if rec.Statuses[d.Index] == StatusUnanswered {
			rec.Statuses[d.Index] = d.Status
			rec.ElapsedMs[d.Index] = d.ElapsedMs
			rec.Score += d.ScoreDelta
		}
	}
	if d.NewIndex >= 0 {
		idx := d.NewIndex
		if idx > n-1 {
			idx = n - 1
		}
		if idx > rec.CurrentIndex {
			rec.CurrentIndex = idx
		}
	}
	return rec
}

// AttemptSummary is the finalized outcome of one completed weekly session,
// handed off to the attempt collaborator exactly once.
type AttemptSummary struct {
	Date           string
	WeekID         string
	Score          int
	QuestionCount  int
	TotalElapsedMs int64
	TimeBudgetMs   int64
}

func (r Record) Summary() AttemptSummary {
	return AttemptSummary{
		Date:           r.Date,
		WeekID:         r.WeekID,
		Score:          r.Score,
		QuestionCount:  len(r.QuestionIDs),
		TotalElapsedMs: r.TotalElapsedMs(),
		TimeBudgetMs:   r.TimeBudgetMs,
	}
}
