package stats

import (
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/store"
)

// Progress is today's value against its goal.
type Progress struct {
	Value   int     `json:"value"`
	Goal    int     `json:"goal"`
	Percent float64 `json:"percent"`
}

func newProgress(value, goal int) Progress {
	return Progress{Value: value, Goal: goal, Percent: PercentageClamped(float64(value), float64(goal))}
}

type HabitStreak struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Done   bool   `json:"done"`
	Streak int    `json:"streak"`
}

// Summary is everything the dashboard screen shows.
type Summary struct {
	Date          string               `json:"date"`
	Study         Progress             `json:"study"`
	Sleep         Progress             `json:"sleep"`
	Habits        Progress             `json:"habits"`
	HabitStreaks  []HabitStreak        `json:"habitStreaks"`
	StudyWeek     []int                `json:"studyWeek"`
	SleepWeek     []float64            `json:"sleepWeek"`
	AvgSleepHours float64              `json:"avgSleepHours"`
	RecentLinks   []models.YoutubeLink `json:"recentLinks"`
}

// Input is the store state a Summary is computed from.
type Input struct {
	Study  []models.StudyEntry
	Sleep  []models.SleepEntry
	Habits []models.Habit
	Links  []models.YoutubeLink
	Goals  models.Goals
}

func Dashboard(in Input, today string) Summary {
	streaks := make([]HabitStreak, len(in.Habits))
	for i, h := range in.Habits {
		streaks[i] = HabitStreak{
			ID:     h.ID,
			Name:   h.Name,
			Done:   h.CompletedOn(today),
			Streak: StreakLength(h.CompletedDates, today),
		}
	}

	links := in.Links[:min(constants.RecentLinksOnDashboard, len(in.Links))]

	return Summary{
		Date:          today,
		Study:         newProgress(StudyMinutesOn(in.Study, today), in.Goals.StudyMinutes),
		Sleep:         newProgress(SleepMinutesOn(in.Sleep, today), in.Goals.SleepMinutes),
		Habits:        newProgress(HabitsCompletedOn(in.Habits, today), max(1, in.Goals.HabitsPerDay)),
		HabitStreaks:  streaks,
		StudyWeek:     WeeklySeries(StudyByDate(in.Study), today, constants.WeeklyDays),
		SleepWeek:     WeeklySeries(SleepHoursByDate(in.Sleep), today, constants.WeeklyDays),
		AvgSleepHours: AverageSleepHours(in.Sleep),
		RecentLinks:   append([]models.YoutubeLink(nil), links...),
	}
}

// Summarize computes the dashboard for the store's current state and date.
func Summarize(s *store.Store) Summary {
	return Dashboard(Input{
		Study:  s.StudyEntries(),
		Sleep:  s.SleepEntries(),
		Habits: s.Habits(),
		Links:  s.YoutubeLinks(),
		Goals:  s.Goals(),
	}, s.Today())
}
