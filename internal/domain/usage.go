package domain

import (
	"sort"
	"time"
)

// UsageLedger is a user's cumulative lemma occurrence history.
type UsageLedger struct {
	ID        int64
	UserID    int64
	History   map[string]int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailyStat holds the per-day counters of a single user.
type DailyStat struct {
	ID          int64
	UserID      int64
	Date        time.Time
	TotalWords  int
	UniqueWords int
}

// WordCount pairs a lemma with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords returns the n most frequent lemmas of history. Ties are broken
// alphabetically so the result is stable.
func TopWords(history map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(history))
	for w, c := range history {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// DayCount is one point of a per-day history series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsSummary aggregates a stats window.
type StatsSummary struct {
	TotalUniqueWords    int `json:"totalUniqueWords"`
	TotalWordsProcessed int `json:"totalWordsProcessed"`
	DaysWithActivity    int `json:"daysWithActivity"`
	AllTimeUniqueWords  int `json:"allTimeUniqueWords"`
}

// UserStats is the result of a stats query over the last PeriodDays days.
type UserStats struct {
	UserID        int64        `json:"userId"`
	PeriodDays    int          `json:"periodDays"`
	UniqueHistory []DayCount   `json:"uniqueHistory"`
	TotalHistory  []DayCount   `json:"totalHistory"`
	Summary       StatsSummary `json:"summary"`
}
