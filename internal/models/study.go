package models

// StudyEntry is the total study time recorded for one calendar day.
// Recording again for the same date adds to Minutes.
type StudyEntry struct {
	ID      string `json:"id" yaml:"id"`
	Date    string `json:"date" yaml:"date"` // YYYY-MM-DD format
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// SleepEntry is the sleep recorded for one calendar day.
// Recording again for the same date replaces every field but ID and Date.
type SleepEntry struct {
	ID              string `json:"id" yaml:"id"`
	Date            string `json:"date" yaml:"date"` // YYYY-MM-DD format
	DurationMinutes int    `json:"durationMinutes" yaml:"durationMinutes"`
	Bedtime         string `json:"bedtime,omitempty" yaml:"bedtime,omitempty"`   // HH:MM format
	WakeTime        string `json:"wakeTime,omitempty" yaml:"wakeTime,omitempty"` // HH:MM format
	Note            string `json:"note,omitempty" yaml:"note,omitempty"`
}

// SleepDetails carries the optional fields of a sleep recording.
// An empty Date means today.
type SleepDetails struct {
	Date     string
	Bedtime  string
	WakeTime string
	Note     string
}
