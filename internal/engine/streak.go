package engine

import (
	"sort"
	"time"

	"github.com/wanplusss/momento/internal/model"
)

// DayLayout is the calendar-day format used for streak and rest-day
// comparisons. All day bucketing happens in UTC.
const DayLayout = "2006-01-02"

// DayString formats a timestamp as its UTC calendar day.
func DayString(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// StreakResult holds the current and longest day-granularity streaks.
type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak derives streaks from scratch on every call; streaks are never
// incrementally updated, so they cannot drift from the session log.
//
// A day is covered if at least one session ended on it or it is a rest day.
// The current streak walks backward from now's day, falling back to yesterday
// when today has no coverage yet. Rest days preserve a streak without
// extending it.
func ComputeStreak(sessions []model.Session, restDays []string, now time.Time) StreakResult {
	if len(sessions) == 0 {
		return StreakResult{}
	}

	active := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		active[DayString(s.EndTime)] = true
	}
	rest := make(map[string]bool, len(restDays))
	for _, d := range restDays {
		rest[d] = true
	}
	covered := func(day string) bool { return active[day] || rest[day] }

	day := now.UTC()
	if !covered(DayString(day)) {
		day = day.AddDate(0, 0, -1)
	}

	current := 0
	if covered(DayString(day)) {
		for {
			ds := DayString(day)
			if active[ds] {
				current++
			} else if !rest[ds] {
				break
			}
			day = day.AddDate(0, 0, -1)
		}
	}

	return StreakResult{Current: current, Longest: longestStreak(active, rest)}
}

// longestStreak scans all covered days ascending, counting active days within
// each contiguous block. Rest days keep a block alive without counting.
func longestStreak(active, rest map[string]bool) int {
	seen := make(map[string]bool, len(active)+len(rest))
	for d := range active {
		seen[d] = true
	}
	for d := range rest {
		seen[d] = true
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)

	longest, run := 0, 0
	var prev time.Time
	for i, ds := range days {
		cur, err := time.Parse(DayLayout, ds)
		if err != nil {
			continue
		}
		if i == 0 {
			if active[ds] {
				run = 1
			}
			prev = cur
			continue
		}

		gap := int(cur.Sub(prev).Hours() / 24)
		if gap == 1 {
			if active[ds] {
				run++
			}
		} else {
			if run > longest {
				longest = run
			}
			run = 0
			if active[ds] {
				run = 1
			}
		}
		prev = cur
	}
	if run > longest {
		longest = run
	}
	return longest
}
