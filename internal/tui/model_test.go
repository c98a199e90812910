package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/learnnova/internal/storage"
	"github.com/julianstephens/learnnova/internal/store"
	"github.com/julianstephens/learnnova/internal/tui/components/habitlist"
	"github.com/julianstephens/learnnova/internal/tui/components/pomodoro"
)

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	s := store.New(storage.NewMemoryStore(), store.WithClock(clock), store.WithLocation(time.UTC))
	m := NewModel(s)
	t.Cleanup(m.Close)

	if !strings.Contains(m.View(), "Loading") {
		t.Fatalf("expected loading view before hydration, got %q", m.View())
	}

	m = update(t, m, hydrate(s)())
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, s
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHydrationShowsDashboard(t *testing.T) {
	m, _ := newTestModel(t)
	if !m.hydrated {
		t.Fatal("model should be hydrated")
	}
	view := m.View()
	if !strings.Contains(view, "Today, 2025-03-10") {
		t.Errorf("dashboard missing date:\n%s", view)
	}
	if !strings.Contains(view, "6h 00m") {
		t.Errorf("dashboard missing default study goal:\n%s", view)
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	s := store.New(storage.NewMemoryStore())
	m := NewModel(s)
	defer m.Close()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateDashboard {
		t.Errorf("tab should be ignored before hydration, state = %v", m.state)
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)

	for want := StateStudy; want <= StateGoals; want++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != want {
			t.Fatalf("state = %v, want %v", m.state, want)
		}
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateDashboard {
		t.Errorf("tab should wrap to dashboard, got %v", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateGoals {
		t.Errorf("shift+tab should wrap to goals, got %v", m.state)
	}
}

func TestStoreChangesRefreshSummary(t *testing.T) {
	m, s := newTestModel(t)

	s.RecordStudy(30, "")
	m = update(t, m, waitForChange(m.changes)())

	if m.summary.Study.Value != 30 {
		t.Errorf("summary study = %d, want 30", m.summary.Study.Value)
	}
}

func TestPomodoroCompletionRecordsStudy(t *testing.T) {
	m, s := newTestModel(t)

	m = update(t, m, pomodoro.CompletedMsg{Minutes: 25})

	entries := s.StudyEntries()
	if len(entries) != 1 || entries[0].Minutes != 25 || entries[0].Date != "2025-03-10" {
		t.Fatalf("unexpected study entries %+v", entries)
	}
	if !strings.Contains(m.status, "25m") {
		t.Errorf("status = %q", m.status)
	}
}

func TestHabitToggleAndConfirmedDelete(t *testing.T) {
	m, s := newTestModel(t)
	h, _ := s.AddHabit("Read")
	m.state = StateHabits

	m = update(t, m, habitlist.ToggleHabitMsg{ID: h.ID})
	if got, _ := s.Habit(h.ID); !got.CompletedOn("2025-03-10") {
		t.Fatal("habit should be completed today")
	}

	m = update(t, m, habitlist.DeleteHabitMsg{ID: h.ID, Name: h.Name})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want confirm", m.state)
	}
	m = update(t, m, runes("n"))
	if m.state != StateHabits || len(s.Habits()) != 1 {
		t.Fatalf("declining should keep the habit (state %v, habits %d)", m.state, len(s.Habits()))
	}

	m = update(t, m, habitlist.DeleteHabitMsg{ID: h.ID, Name: h.Name})
	m = update(t, m, runes("y"))
	if len(s.Habits()) != 0 {
		t.Error("habit should be deleted")
	}
	if m.state != StateHabits || m.status != "Deleted habit Read" {
		t.Errorf("state %v, status %q", m.state, m.status)
	}
}

func TestApplyForms(t *testing.T) {
	m, s := newTestModel(t)

	m.openForm(formStudy)
	m.studyForm.Hours = "1"
	m.studyForm.Minutes = "30"
	if _, err := m.applyForm(); err != nil {
		t.Fatalf("study form: %v", err)
	}
	if got := s.StudyEntries()[0].Minutes; got != 90 {
		t.Errorf("study minutes = %d, want 90", got)
	}

	m.openForm(formStudy)
	if _, err := m.applyForm(); err == nil {
		t.Error("empty study form should be rejected")
	}

	m.openForm(formSleep)
	m.sleepForm.Bedtime = "23:00"
	m.sleepForm.WakeTime = "06:30"
	m.sleepForm.Note = "  deep  "
	if _, err := m.applyForm(); err != nil {
		t.Fatalf("sleep form: %v", err)
	}
	sleep := s.SleepEntries()[0]
	if sleep.DurationMinutes != 450 || sleep.Note != "deep" {
		t.Errorf("unexpected sleep entry %+v", sleep)
	}

	m.openForm(formLink)
	m.linkForm.Title = "Optics"
	m.linkForm.URL = "notaurl"
	if _, err := m.applyForm(); err == nil {
		t.Error("invalid url should be rejected")
	}
	m.linkForm.URL = "https://youtube.com/watch?v=x"
	if _, err := m.applyForm(); err != nil || len(s.YoutubeLinks()) != 1 {
		t.Errorf("link form: %v, links %d", err, len(s.YoutubeLinks()))
	}
}

func TestGoalsFormPrefillsAndClamps(t *testing.T) {
	m, s := newTestModel(t)

	m.openForm(formGoals)
	if m.goalsForm.StudyHours != "6" || m.goalsForm.SleepHours != "8" || m.goalsForm.Habits != "3" {
		t.Fatalf("unexpected prefill %+v", *m.goalsForm)
	}

	m.goalsForm.StudyHours = "0.25"
	m.goalsForm.SleepHours = "7.5"
	m.goalsForm.Habits = "0"
	if _, err := m.applyForm(); err != nil {
		t.Fatalf("goals form: %v", err)
	}

	g := s.Goals()
	if g.StudyMinutes != 30 || g.SleepMinutes != 450 || g.HabitsPerDay != 1 {
		t.Errorf("goals = %+v", g)
	}
}

func TestQuitUnsubscribes(t *testing.T) {
	m, s := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(Model).quitting {
		t.Error("model should be quitting")
	}

	s.RecordStudy(10, "")
	select {
	case <-m.changes:
		t.Error("listener should be removed after quit")
	default:
	}
}
