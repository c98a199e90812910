package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/store"
	"github.com/julianstephens/learnnova/internal/tui/components/habitlist"
	"github.com/julianstephens/learnnova/internal/tui/components/linklist"
	"github.com/julianstephens/learnnova/internal/tui/components/pomodoro"
	"github.com/julianstephens/learnnova/internal/tui/components/weekchart"
	"github.com/julianstephens/learnnova/internal/utils"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateStudy
	StateSleep
	StateHabits
	StateLinks
	StateGoals
	StateForm
	StateConfirmDelete
)

var tabTitles = []string{"Dashboard", "Study", "Sleep", "Habits", "Lectures", "Goals"}

const tabCount = SessionState(len(tabTitles))

// hydratedMsg arrives once every slice has been loaded from storage.
type hydratedMsg struct {
	err error
}

// storeChangedMsg is delivered for every store notification.
type storeChangedMsg struct {
	slice constants.Slice
}

type Model struct {
	store         *store.Store
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model
	studyBar      progress.Model
	sleepBar      progress.Model
	habitBar      progress.Model
	habitList     habitlist.Model
	linkList      linklist.Model
	studyChart    weekchart.Model
	sleepChart    weekchart.Model
	pomodoro      pomodoro.Model
	form          *huh.Form
	activeForm    formKind
	studyForm     *StudyFormModel
	sleepForm     *SleepFormModel
	habitForm     *HabitFormModel
	linkForm      *LinkFormModel
	goalsForm     *GoalsFormModel
	formError     string
	summary       stats.Summary
	hydrated      bool
	loadErr       error
	changes       chan constants.Slice
	unsubscribe   func()
	pendingDelete func() bool
	pendingLabel  string
	status        string
	quitting      bool
	width         int
	height        int
}

func newBar() progress.Model {
	return progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
}

// NewModel builds the dashboard for s. The store is hydrated by Init; until
// then the model renders a loading screen.
func NewModel(s *store.Store) Model {
	changes := make(chan constants.Slice, 1)
	unsubscribe := s.Subscribe(func(changed constants.Slice) {
		select {
		case changes <- changed:
		default:
		}
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		store:       s,
		state:       StateDashboard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		studyBar:    newBar(),
		sleepBar:    newBar(),
		habitBar:    newBar(),
		habitList:   habitlist.New(nil, s.Today(), 0, 0),
		linkList:    linklist.New(nil, 0, 0),
		studyChart:  weekchart.New(func(v float64) string { return utils.FormatMinutes(int(v)) }, 0, 0),
		sleepChart:  weekchart.New(func(v float64) string { return formatHours(v) }, 0, 0),
		pomodoro:    pomodoro.New(),
		changes:     changes,
		unsubscribe: unsubscribe,
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateStudy:
		keys = append(keys, m.keys.Add, m.pomodoro.Keys.Toggle, m.pomodoro.Keys.Cancel)
	case StateSleep:
		keys = append(keys, m.keys.Add)
	case StateGoals:
		keys = append(keys, m.keys.Edit)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateStudy:
		actions = []key.Binding{m.keys.Add, m.pomodoro.Keys.Toggle, m.pomodoro.Keys.Cancel}
	case StateSleep:
		actions = []key.Binding{m.keys.Add}
	case StateHabits:
		hk := habitlist.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Toggle, hk.Delete}
	case StateLinks:
		lk := linklist.DefaultKeyMap()
		actions = []key.Binding{lk.Add, lk.Delete}
	case StateGoals:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, hydrate(m.store), waitForChange(m.changes))
}

func hydrate(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		return hydratedMsg{err: s.Hydrate(context.Background())}
	}
}

func waitForChange(changes <-chan constants.Slice) tea.Cmd {
	return func() tea.Msg {
		return storeChangedMsg{slice: <-changes}
	}
}

// refresh recomputes everything derived from the store.
func (m *Model) refresh() {
	if !m.hydrated {
		return
	}
	m.summary = stats.Summarize(m.store)
	today := m.summary.Date
	goals := m.store.Goals()

	m.habitList.SetHabits(m.store.Habits(), today)
	m.linkList.SetLinks(m.store.YoutubeLinks())

	study := make([]float64, len(m.summary.StudyWeek))
	for i, v := range m.summary.StudyWeek {
		study[i] = float64(v)
	}
	m.studyChart.SetSeries(today, study, float64(goals.StudyMinutes))
	m.sleepChart.SetSeries(today, m.summary.SleepWeek, float64(goals.SleepMinutes)/60)
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	logger.Debug("TUI closed")
}
