package habitlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/stats"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

type Item struct {
	Habit  models.Habit
	Done   bool
	Streak int
	Week   []stats.DayMark
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	var cal strings.Builder
	for _, d := range i.Week {
		if d.Done {
			cal.WriteString("■")
		} else {
			cal.WriteString("·")
		}
	}
	return fmt.Sprintf("%s  streak %d", cal.String(), i.Streak)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// Items builds list rows for habits as of today.
func Items(habits []models.Habit, today string) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{
			Habit:  h,
			Done:   h.CompletedOn(today),
			Streak: stats.StreakLength(h.CompletedDates, today),
			Week:   stats.HabitWeek(h, today),
		}
	}
	return items
}

func New(habits []models.Habit, today string, width, height int) Model {
	l := list.New(Items(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetHabits(habits []models.Habit, today string) {
	m.list.SetItems(Items(habits, today))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID, Name: i.Habit.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
