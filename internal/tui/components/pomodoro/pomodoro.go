// Package pomodoro is a focus timer. Running a session to the end emits
// CompletedMsg so the caller can record the study time.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/learnnova/internal/constants"
)

// CompletedMsg reports a finished focus session.
type CompletedMsg struct {
	Minutes int
}

type KeyMap struct {
	Toggle key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "start/pause focus"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel focus"),
		),
	}
}

type Model struct {
	Keys    KeyMap
	length  time.Duration
	timer   timer.Model
	started bool
}

func New() Model {
	length := time.Duration(constants.PomodoroMinutes) * time.Minute
	return Model{
		Keys:   DefaultKeyMap(),
		length: length,
		timer:  timer.NewWithInterval(length, time.Second),
	}
}

// Active reports whether a session has been started and not finished or
// cancelled. A paused session is still active.
func (m Model) Active() bool {
	return m.started
}

func (m Model) Running() bool {
	return m.started && m.timer.Running()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Toggle):
			if !m.started {
				m.started = true
				m.timer = timer.NewWithInterval(m.length, time.Second)
				return m, m.timer.Init()
			}
			return m, m.timer.Toggle()
		case key.Matches(msg, m.Keys.Cancel):
			if m.started {
				m.started = false
				return m, m.timer.Stop()
			}
		}
		return m, nil

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() || !m.started {
			return m, nil
		}
		m.started = false
		minutes := int(m.length / time.Minute)
		return m, func() tea.Msg { return CompletedMsg{Minutes: minutes} }
	}

	var cmd tea.Cmd
	m.timer, cmd = m.timer.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case !m.started:
		return fmt.Sprintf("Focus timer: %d min (press p to start)", int(m.length/time.Minute))
	case m.timer.Running():
		return "Focusing… " + m.timer.View() + " left"
	default:
		return "Paused at " + m.timer.View() + " (p to resume, c to cancel)"
	}
}
