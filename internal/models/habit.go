package models

import "slices"

// Habit represents a recurring practice to track
type Habit struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	CompletedDates []string `json:"completedDates" yaml:"completedDates"` // YYYY-MM-DD, unique, unordered
}

// CompletedOn reports whether the habit was completed on day.
func (h Habit) CompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// Clone returns a copy that shares no memory with h.
func (h Habit) Clone() Habit {
	h.CompletedDates = slices.Clone(h.CompletedDates)
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
	}
	return h
}
