package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/julianstephens/learnnova/internal/errors"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/storage"
	"github.com/julianstephens/learnnova/internal/store"
)

func hasConflict(result ValidationResult, t ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

func TestValidate_StoreDataIsClean(t *testing.T) {
	s := store.New(storage.NewMemoryStore())
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.RecordStudy(30, "2024-03-01")
	s.RecordStudy(30, "2024-03-03")
	s.RecordSleep(400, models.SleepDetails{Date: "2024-03-02", Bedtime: "23:00", WakeTime: "05:40"})
	h, _ := s.AddHabit("Read")
	s.ToggleHabitCompletion(h.ID, "2024-03-01")
	s.AddYoutubeLink("Lecture", "https://youtu.be/x")

	result := New().Validate(s.Snapshot())
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got:\n%s", result.FormatReport())
	}
	if result.FormatReport() != "No problems detected." {
		t.Errorf("unexpected clean report %q", result.FormatReport())
	}
}

func TestValidate_DetectsProblems(t *testing.T) {
	snap := store.Snapshot{
		Study: []models.StudyEntry{
			{ID: "a", Date: "2024-03-01", Minutes: 10},
			{ID: "b", Date: "2024-03-05", Minutes: 0},
			{ID: "c", Date: "2024-03-05", Minutes: 5},
		},
		Sleep: []models.SleepEntry{
			{ID: "a", Date: "03/01/2024", DurationMinutes: 400, Bedtime: "25:00"},
		},
		Habits: []models.Habit{
			{ID: "h1", Name: "Read"},
			{ID: "h2", Name: "read", CompletedDates: []string{"yesterday"}},
			{ID: "", Name: " "},
		},
		Lectures: []models.YoutubeLink{{ID: "l1", Title: "", URL: "https://x"}},
		Goals:    models.Goals{StudyMinutes: 10, SleepMinutes: 480, HabitsPerDay: 3},
	}

	result := New().Validate(snap)

	for _, want := range []ConflictType{
		ConflictUnsorted,
		ConflictNonPositive,
		ConflictDuplicateDate,
		ConflictDuplicateID,
		ConflictInvalidDate,
		ConflictInvalidTime,
		ConflictDuplicateName,
		ConflictMissingID,
		ConflictEmptyName,
		ConflictGoalBelowMinimum,
	} {
		if !hasConflict(result, want) {
			t.Errorf("expected %s conflict", want)
		}
	}

	if !strings.HasPrefix(result.FormatReport(), "Problems detected:") {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}

func TestStudyMinutes(t *testing.T) {
	tests := []struct {
		hours, minutes int
		want           int
		wantErr        bool
	}{
		{1, 30, 90, false},
		{0, 45, 45, false},
		{2, 0, 120, false},
		{0, 0, 0, true},
		{-1, 30, 0, true},
	}

	for _, tt := range tests {
		got, err := StudyMinutes(tt.hours, tt.minutes)
		if (err != nil) != tt.wantErr {
			t.Errorf("StudyMinutes(%d, %d) error = %v, wantErr %v", tt.hours, tt.minutes, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.IsInvalid(err) {
			t.Errorf("expected invalid-input error, got %v", err)
		}
		if got != tt.want {
			t.Errorf("StudyMinutes(%d, %d) = %d, want %d", tt.hours, tt.minutes, got, tt.want)
		}
	}
}

func TestSleepMinutes(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		bed      string
		wake     string
		want     int
		wantErrs bool
	}{
		{"duration", 420, "", "", 420, false},
		{"clock pair", 0, "22:30", "06:30", 480, false},
		{"equal clocks", 0, "07:00", "07:00", 0, true},
		{"missing wake", 0, "22:30", "", 0, true},
		{"bad bed", 0, "2230", "06:30", 0, true},
		{"both forms", 400, "22:30", "06:30", 0, true},
		{"zero", 0, "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SleepMinutes(tt.minutes, tt.bed, tt.wake)
			if (err != nil) != tt.wantErrs {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErrs)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateAndClock(t *testing.T) {
	if err := Date(""); err != nil {
		t.Errorf("empty date should mean today: %v", err)
	}
	if err := Date("2024-02-30"); err == nil {
		t.Error("expected invalid calendar date to fail")
	}
	if err := Clock("23:59"); err != nil {
		t.Errorf("valid clock rejected: %v", err)
	}
	if err := Clock("24:00"); err == nil {
		t.Error("expected 24:00 to fail")
	}
}

func TestHabitNameAndLink(t *testing.T) {
	if name, err := HabitName("  Journal "); err != nil || name != "Journal" {
		t.Errorf("HabitName = %q, %v", name, err)
	}
	if _, err := HabitName("   "); err == nil {
		t.Error("expected blank habit name to fail")
	}

	title, u, err := Link(" Calculus ", " https://www.youtube.com/watch?v=abc ")
	if err != nil || title != "Calculus" || u != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("Link = %q %q %v", title, u, err)
	}
	for _, bad := range []string{"", "youtube.com/watch", "ftp://host/x", "https://"} {
		if _, _, err := Link("t", bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestGoals(t *testing.T) {
	current := models.DefaultGoals()

	got, err := Goals(current, 5.5, -1, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := models.Goals{StudyMinutes: 330, SleepMinutes: current.SleepMinutes, HabitsPerDay: 4}
	if got != want {
		t.Errorf("Goals = %+v, want %+v", got, want)
	}

	if m, _ := HoursToMinutes(7.99); m != 479 {
		t.Errorf("HoursToMinutes(7.99) = %d", m)
	}
}
