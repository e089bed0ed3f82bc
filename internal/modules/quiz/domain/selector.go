package domain

import (
	"math"

	"bioq/internal/platform/rng"
)

const (
	DefaultWeeklyCount = 15
	hardShare          = 0.8
)

// PoolEntry is the selector's view of one bank question.
type PoolEntry struct {
	ID         string
	Category   string
	Difficulty string
}

// PracticeOrder filters the pool by category and difficulty (empty matches
// all), shuffles with the given seed, and takes the first n ids. Callers pass
// a freshly random seed: practice runs are not reproducible on purpose.
func PracticeOrder(pool []PoolEntry, category, difficulty string, n int, seed string) []string {
	ids := make([]string, 0, len(pool))
	for _, e := range pool {
		if category != "" && e.Category != category {
			continue
		}
		if difficulty != "" && e.Difficulty != difficulty {
			continue
		}
		ids = append(ids, e.ID)
	}
	shuffled := rng.Shuffle(ids, seed)
	if n > 0 && n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// WeeklyOrder produces the deterministic question order for a calendar day.
// Every client computing the order for the same day and bank content gets the
// same list; resume depends on this stability.
//
// The mix targets round(n*0.8) hard and the rest medium, backfilling from
// hard, then medium, then everything else when a group runs short, and
// finishes with one interleaving shuffle.
func WeeklyOrder(pool []PoolEntry, day string, n int) []string {
	if n <= 0 {
		n = DefaultWeeklyCount
	}
	var hard, medium, other []string
	for _, e := range pool {
		switch e.Difficulty {
		case "hard":
			hard = append(hard, e.ID)
		case "medium":
			medium = append(medium, e.ID)
		default:
			other = append(other, e.ID)
		}
	}

	needHard := int(math.Round(float64(n) * hardShare))
	needMed := n - needHard

	picked := take(rng.Shuffle(hard, "WEEKLY-HARD-"+day), needHard)
	picked = append(picked, take(rng.Shuffle(medium, "WEEKLY-MED-"+day), needMed)...)

	if len(picked) < n {
		seen := make(map[string]bool, len(picked))
		for _, id := range picked {
			seen[id] = true
		}
		fills := []struct {
			ids  []string
			seed string
		}{
			{hard, "WEEKLY-HARD-FILL-" + day},
			{medium, "WEEKLY-MED-FILL-" + day},
			{other, "WEEKLY-OTHER-FILL-" + day},
		}
		for _, fill := range fills {
			for _, id := range rng.Shuffle(fill.ids, fill.seed) {
				if len(picked) >= n {
					break
				}
				if seen[id] {
					continue
				}
				seen[id] = true
				picked = append(picked, id)
			}
		}
	}

	return rng.Shuffle(picked, "WEEKLY-FINAL-"+day)
}

func take(ids []string, n int) []string {
	if n > len(ids) {
		n = len(ids)
	}
	out := make([]string, n)
	copy(out, ids[:n])
	return out
}
