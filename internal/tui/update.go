package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/tui/components/habitlist"
	"github.com/julianstephens/learnnova/internal/tui/components/linklist"
	"github.com/julianstephens/learnnova/internal/tui/components/pomodoro"
	"github.com/julianstephens/learnnova/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case hydratedMsg:
		m.hydrated = true
		m.loadErr = msg.err
		if msg.err != nil {
			logger.Error("Failed to load data", "error", msg.err)
		}
		m.refresh()
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case spinner.TickMsg:
		if m.hydrated {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case timer.TickMsg, timer.StartStopMsg, timer.TimeoutMsg:
		var cmd tea.Cmd
		m.pomodoro, cmd = m.pomodoro.Update(msg)
		return m, cmd

	case pomodoro.CompletedMsg:
		if m.store.RecordStudy(msg.Minutes, "") {
			m.status = "Focus session complete: recorded " + utils.FormatMinutes(msg.Minutes)
		}
		return m, nil

	case habitlist.AddHabitMsg:
		m.openForm(formHabit)
		return m, m.form.Init()
	case habitlist.ToggleHabitMsg:
		m.store.ToggleHabitCompletion(msg.ID, "")
		return m, nil
	case habitlist.DeleteHabitMsg:
		id := msg.ID
		m.confirmDelete("habit "+msg.Name, func() bool { return m.store.RemoveHabit(id) })
		return m, nil

	case linklist.AddLinkMsg:
		m.openForm(formLink)
		return m, m.form.Init()
	case linklist.DeleteLinkMsg:
		id := msg.ID
		m.confirmDelete("lecture "+msg.Title, func() bool { return m.store.RemoveYoutubeLink(id) })
		return m, nil
	}

	if m.state == StateForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateActive(msg)
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}
	if !m.hydrated {
		return m, nil
	}

	if m.state == StateConfirmDelete {
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			if m.pendingDelete != nil && m.pendingDelete() {
				m.status = "Deleted " + m.pendingLabel
			}
			fallthrough
		case key.Matches(keyMsg, m.keys.Cancel):
			m.pendingDelete = nil
			m.state = m.previousState
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, nil
	}

	switch m.state {
	case StateStudy:
		if key.Matches(keyMsg, m.keys.Add) {
			m.openForm(formStudy)
			return m, m.form.Init()
		}
	case StateSleep:
		if key.Matches(keyMsg, m.keys.Add) {
			m.openForm(formSleep)
			return m, m.form.Init()
		}
	case StateGoals:
		if key.Matches(keyMsg, m.keys.Edit) || key.Matches(keyMsg, m.keys.Add) {
			m.openForm(formGoals)
			return m, m.form.Init()
		}
	}

	return m.updateActive(msg)
}

// updateActive hands msg to the component shown on the current tab.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateStudy:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.pomodoro, cmd = m.pomodoro.Update(msg)
			return m, cmd
		}
		m.studyChart, cmd = m.studyChart.Update(msg)
	case StateSleep:
		m.sleepChart, cmd = m.sleepChart.Update(msg)
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateLinks:
		m.linkList, cmd = m.linkList.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		status, err := m.applyForm()
		if err != nil {
			// Stay in the form so the user can correct the value
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.status = status
		m.formError = ""
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m *Model) confirmDelete(label string, del func() bool) {
	m.previousState = m.state
	m.pendingLabel = label
	m.pendingDelete = del
	m.state = StateConfirmDelete
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	barWidth := min(40, max(width-30, 10))
	m.studyBar.Width = barWidth
	m.sleepBar.Width = barWidth
	m.habitBar.Width = barWidth

	listHeight := max(height-8, 3)
	m.habitList.SetSize(width-4, listHeight)
	m.linkList.SetSize(width-4, listHeight)
	m.studyChart.SetSize(width-4, 8)
	m.sleepChart.SetSize(width-4, 8)
}
