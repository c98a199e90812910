package models

import "github.com/julianstephens/learnnova/internal/constants"

// Goals holds the daily targets shown on the dashboard
type Goals struct {
	StudyMinutes int `json:"studyMinutes" yaml:"studyMinutes"`
	SleepMinutes int `json:"sleepMinutes" yaml:"sleepMinutes"`
	HabitsPerDay int `json:"habitsPerDay" yaml:"habitsPerDay"`
}

// DefaultGoals returns the goals used before the user sets any.
func DefaultGoals() Goals {
	return Goals{
		StudyMinutes: constants.DefaultStudyGoalMin,
		SleepMinutes: constants.DefaultSleepGoalMin,
		HabitsPerDay: constants.DefaultHabitsPerDay,
	}
}

// Clamp raises every field to its floor.
func (g Goals) Clamp() Goals {
	return Goals{
		StudyMinutes: max(constants.MinStudyGoalMin, g.StudyMinutes),
		SleepMinutes: max(constants.MinSleepGoalMin, g.SleepMinutes),
		HabitsPerDay: max(constants.MinHabitsPerDay, g.HabitsPerDay),
	}
}
