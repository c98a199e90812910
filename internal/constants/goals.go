package constants

const (
	// Default goals applied before the user edits anything
	DefaultStudyGoalMin = 360
	DefaultSleepGoalMin = 480
	DefaultHabitsPerDay = 3

	// Floors enforced on every goals update
	MinStudyGoalMin = 30
	MinSleepGoalMin = 180
	MinHabitsPerDay = 1

	// MaxStreakDays bounds the backwards walk of a streak
	MaxStreakDays = 365

	// WeeklyDays is the default length of a weekly series
	WeeklyDays = 7

	// RecentLinksOnDashboard is how many links the dashboard lists
	RecentLinksOnDashboard = 4

	// PomodoroMinutes is the focus session length; a finished session is
	// recorded as study time
	PomodoroMinutes = 25
)
