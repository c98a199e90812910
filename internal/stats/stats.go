// Package stats derives read-only figures from store data. Every function
// is pure; "today" is always passed in.
package stats

import (
	"slices"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/utils"
)

// StreakLength counts consecutive days ending at today that appear in
// dates. It is 0 when today is missing and never exceeds MaxStreakDays.
func StreakLength(dates []string, today string) int {
	if len(dates) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}

	day, err := utils.ParseDate(today)
	if err != nil {
		return 0
	}

	streak := 0
	for streak < constants.MaxStreakDays {
		if _, ok := set[utils.FormatDate(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// DurationBetween returns the minutes from start to end ("HH:MM"). An end
// earlier than start is taken to be on the next day. Missing or malformed
// input yields 0.
func DurationBetween(start, end string) int {
	if start == "" || end == "" {
		return 0
	}
	s, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return 0
	}
	e, err := utils.ParseTimeToMinutes(end)
	if err != nil {
		return 0
	}
	if e < s {
		e += 24 * 60
	}
	return e - s
}

// WeeklySeries returns byDate's values for the n days ending at today,
// oldest first. Missing days are zero.
func WeeklySeries[V int | float64](byDate map[string]V, today string, n int) []V {
	dates, err := utils.LastNDates(today, n)
	if err != nil {
		return make([]V, max(n, 0))
	}
	out := make([]V, len(dates))
	for i, d := range dates {
		out[i] = byDate[d]
	}
	return out
}

// PercentageClamped returns value as a percentage of goal, limited to
// [0, 100]. A non-positive goal makes value itself the percentage.
func PercentageClamped(value, goal float64) float64 {
	pct := value
	if goal > 0 {
		pct = value / goal * 100
	}
	return min(max(pct, 0), 100)
}

func StudyByDate(entries []models.StudyEntry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.Date] += e.Minutes
	}
	return out
}

// SleepHoursByDate maps each date to hours slept.
func SleepHoursByDate(entries []models.SleepEntry) map[string]float64 {
	out := make(map[string]float64, len(entries))
	for _, e := range entries {
		out[e.Date] = float64(e.DurationMinutes) / 60
	}
	return out
}

func StudyMinutesOn(entries []models.StudyEntry, date string) int {
	i := slices.IndexFunc(entries, func(e models.StudyEntry) bool { return e.Date == date })
	if i < 0 {
		return 0
	}
	return entries[i].Minutes
}

func SleepMinutesOn(entries []models.SleepEntry, date string) int {
	i := slices.IndexFunc(entries, func(e models.SleepEntry) bool { return e.Date == date })
	if i < 0 {
		return 0
	}
	return entries[i].DurationMinutes
}

// HabitsCompletedOn counts habits completed on date.
func HabitsCompletedOn(habits []models.Habit, date string) int {
	n := 0
	for _, h := range habits {
		if h.CompletedOn(date) {
			n++
		}
	}
	return n
}

// AverageSleepHours is the mean duration of the newest min(7, len) entries
// in hours. entries must be sorted newest first, as the store keeps them.
func AverageSleepHours(entries []models.SleepEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	recent := entries[:min(constants.WeeklyDays, len(entries))]
	total := 0
	for _, e := range recent {
		total += e.DurationMinutes
	}
	return float64(total) / float64(len(recent)) / 60
}

// DayMark is one cell of a habit calendar.
type DayMark struct {
	Date string
	Done bool
}

// HabitWeek marks the last WeeklyDays dates ending at today for habit.
func HabitWeek(habit models.Habit, today string) []DayMark {
	dates, err := utils.LastNDates(today, constants.WeeklyDays)
	if err != nil {
		return nil
	}
	marks := make([]DayMark, len(dates))
	for i, d := range dates {
		marks[i] = DayMark{Date: d, Done: habit.CompletedOn(d)}
	}
	return marks
}
