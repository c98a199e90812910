package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/store"
	"github.com/julianstephens/learnnova/internal/utils"
)

// ConflictType represents the type of data integrity problem
type ConflictType string

const (
	ConflictDuplicateDate    ConflictType = "duplicate_date"
	ConflictUnsorted         ConflictType = "unsorted"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictInvalidTime      ConflictType = "invalid_time"
	ConflictNonPositive      ConflictType = "non_positive_value"
	ConflictDuplicateID      ConflictType = "duplicate_id"
	ConflictMissingID        ConflictType = "missing_id"
	ConflictEmptyName        ConflictType = "empty_name"
	ConflictDuplicateName    ConflictType = "duplicate_habit_name"
	ConflictGoalBelowMinimum ConflictType = "goal_below_minimum"
)

// Conflict is a single problem found in stored data
type Conflict struct {
	Type        ConflictType
	Slice       constants.Slice
	Description string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Slice, c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, slice constants.Slice, format string, args ...interface{}) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Slice: slice, Description: fmt.Sprintf(format, args...)})
}

// Validator checks a snapshot against the invariants the store maintains.
// Data written by the store always passes; imported or hand-edited data
// may not.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(snap store.Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	ids := make(map[string]constants.Slice)

	checkID := func(slice constants.Slice, id string) {
		if id == "" {
			result.add(ConflictMissingID, slice, "entry without an id")
			return
		}
		if prev, ok := ids[id]; ok {
			result.add(ConflictDuplicateID, slice, "id %s already used in %s", id, prev)
			return
		}
		ids[id] = slice
	}

	checkDates := func(slice constants.Slice, dates []string) {
		seen := make(map[string]bool, len(dates))
		for i, d := range dates {
			if !utils.ValidateDateFormat(d) {
				result.add(ConflictInvalidDate, slice, "invalid date %q", d)
			}
			if seen[d] {
				result.add(ConflictDuplicateDate, slice, "more than one entry for %s", d)
			}
			seen[d] = true
			if i > 0 && dates[i-1] < d {
				result.add(ConflictUnsorted, slice, "%s listed after older date %s", d, dates[i-1])
			}
		}
	}

	var studyDates []string
	for _, e := range snap.Study {
		checkID(constants.SliceStudy, e.ID)
		if e.Minutes <= 0 {
			result.add(ConflictNonPositive, constants.SliceStudy, "%s has %d minutes", e.Date, e.Minutes)
		}
		studyDates = append(studyDates, e.Date)
	}
	checkDates(constants.SliceStudy, studyDates)

	var sleepDates []string
	for _, e := range snap.Sleep {
		checkID(constants.SliceSleep, e.ID)
		if e.DurationMinutes <= 0 {
			result.add(ConflictNonPositive, constants.SliceSleep, "%s has %d minutes", e.Date, e.DurationMinutes)
		}
		for _, clock := range []string{e.Bedtime, e.WakeTime} {
			if clock != "" && !utils.ValidateTimeFormat(clock) {
				result.add(ConflictInvalidTime, constants.SliceSleep, "%s has invalid time %q", e.Date, clock)
			}
		}
		sleepDates = append(sleepDates, e.Date)
	}
	checkDates(constants.SliceSleep, sleepDates)

	names := make(map[string]int)
	for _, h := range snap.Habits {
		checkID(constants.SliceHabits, h.ID)
		if strings.TrimSpace(h.Name) == "" {
			result.add(ConflictEmptyName, constants.SliceHabits, "habit %s has no name", h.ID)
		} else {
			names[strings.ToLower(h.Name)]++
		}
		for _, d := range h.CompletedDates {
			if !utils.ValidateDateFormat(d) {
				result.add(ConflictInvalidDate, constants.SliceHabits, "habit %q has invalid date %q", h.Name, d)
			}
		}
	}
	for name, n := range names {
		if n > 1 {
			result.add(ConflictDuplicateName, constants.SliceHabits, "%d habits named %q", n, name)
		}
	}

	for _, l := range snap.Lectures {
		checkID(constants.SliceLinks, l.ID)
		if strings.TrimSpace(l.Title) == "" || strings.TrimSpace(l.URL) == "" {
			result.add(ConflictEmptyName, constants.SliceLinks, "link %s is missing a title or URL", l.ID)
		}
	}

	if clamped := snap.Goals.Clamp(); clamped != snap.Goals {
		result.add(ConflictGoalBelowMinimum, constants.SliceGoals, "goals %+v are below the minimum %+v", snap.Goals, clamped)
	}

	return result
}
