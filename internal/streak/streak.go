// Package streak derives consecutive-day activity streaks from ledger state.
// The streak is always a read-time projection over activation records; it is
// never the authoritative store, so it can be recomputed at any time.
package streak

import (
	"sort"
	"time"

	"github.com/pranaflow/prana-server/internal/model"
)

// Streak holds the current and longest consecutive-day activation runs.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Compute derives the streak from the full record set. Only
// activation-category records count; recalibration entries credit points and
// weekly coverage but do not extend the daily streak history.
//
// Current counts consecutive calendar days (UTC) back from today; a missing
// day, including today itself, ends the run.
func Compute(records []*model.ActivationRecord, now time.Time) Streak {
	days := make(map[string]bool)
	for _, r := range records {
		if r.Category != model.CategoryActivation {
			continue
		}
		day := r.Day
		if day == "" {
			day = model.DayOf(r.CompletedAt)
		}
		days[day] = true
	}
	if len(days) == 0 {
		return Streak{}
	}

	var s Streak
	for d := model.DayOf(now); days[d]; d = prevDay(d) {
		s.Current++
	}

	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	run := 1
	s.Longest = 1
	for i := 1; i < len(sorted); i++ {
		if prevDay(sorted[i]) == sorted[i-1] {
			run++
		} else {
			run = 1
		}
		if run > s.Longest {
			s.Longest = run
		}
	}
	return s
}

func prevDay(day string) string {
	t, err := time.Parse(model.DayFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(model.DayFormat)
}
