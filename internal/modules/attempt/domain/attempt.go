package domain

import "time"

// Attempt is one completed weekly session, enriched with the identity it
// was played under. Identity prefers the linked user id and falls back to
// the anonymous device id.
type Attempt struct {
	Date           string
	WeekID         string
	Score          int
	QuestionCount  int
	TotalElapsedMs int64
	TimeBudgetMs   int64
	DeviceID       string
	UserID         string
	Synced         bool
	RecordedAt     time.Time
}

func (a Attempt) Identity() string {
	if a.UserID != "" {
		return a.UserID
	}
	return a.DeviceID
}

// Standing is one leaderboard row for a week: the best attempt per identity,
// ranked by score, ties broken by total elapsed time.
type Standing struct {
	Rank           int
	Identity       string
	Score          int
	QuestionCount  int
	TotalElapsedMs int64
	Date           string
}

// Rankings keeps the best attempt per identity from rows already ordered by
// score descending, elapsed ascending, and assigns 1-indexed ranks.
func Rankings(ordered []Attempt) []Standing {
	seen := map[string]bool{}
	standings := []Standing{}
	for _, a := range ordered {
		identity := a.Identity()
		if seen[identity] {
			continue
		}
		seen[identity] = true
		standings = append(standings, Standing{
			Rank:           len(standings) + 1,
			Identity:       identity,
			Score:          a.Score,
			QuestionCount:  a.QuestionCount,
			TotalElapsedMs: a.TotalElapsedMs,
			Date:           a.Date,
		})
	}
	return standings
}

// Profile is the local identity: an anonymous device id generated on first
// use, and optionally a linked authenticated user.
type Profile struct {
	DeviceID string `json:"deviceId"`
	UserID   string `json:"userId,omitempty"`
	Token    string `json:"token,omitempty"`
}
