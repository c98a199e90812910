package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/utils"
)

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.hydrated {
		return m.viewLoading()
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.viewDashboard()
	case StateStudy:
		content = m.viewStudy()
	case StateSleep:
		content = m.viewSleep()
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateLinks:
		content = docStyle.Render(m.linkList.View())
	case StateGoals:
		content = m.viewGoals()
	case StateForm:
		content = docStyle.Render(m.form.View())
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, dangerStyle.Render("  "+m.formError))
		}
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var banner string
	if m.loadErr != nil {
		banner = warningStyle.Render("⚠ Some data could not be loaded: " + m.loadErr.Error())
	} else if m.status != "" {
		banner = goodStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewLoading() string {
	msg := m.spinner.View() + " Loading your data…"
	if m.width == 0 {
		return msg
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func progressLine(label string, bar string, p stats.Progress, format func(int) string) string {
	return fmt.Sprintf("%-8s %s  %s / %s", label, bar, format(p.Value), format(p.Goal))
}

func (m Model) viewDashboard() string {
	s := m.summary
	count := func(n int) string { return fmt.Sprint(n) }

	var b strings.Builder
	b.WriteString(titleStyle.Render("Today, "+s.Date) + "\n\n")
	b.WriteString(progressLine("Study", m.studyBar.ViewAs(s.Study.Percent/100), s.Study, utils.FormatMinutes) + "\n")
	b.WriteString(progressLine("Sleep", m.sleepBar.ViewAs(s.Sleep.Percent/100), s.Sleep, utils.FormatMinutes) + "\n")
	b.WriteString(progressLine("Habits", m.habitBar.ViewAs(s.Habits.Percent/100), s.Habits, count) + "\n\n")

	b.WriteString(mutedStyle.Render(fmt.Sprintf("Average sleep (last 7 nights): %s", formatHours(s.AvgSleepHours))) + "\n\n")

	if len(s.HabitStreaks) > 0 {
		b.WriteString(titleStyle.Render("Streaks") + "\n")
		for _, h := range s.HabitStreaks {
			mark := "○"
			if h.Done {
				mark = goodStyle.Render("✓")
			}
			fmt.Fprintf(&b, "  %s %s %s\n", mark, h.Name, mutedStyle.Render(fmt.Sprintf("%d day(s)", h.Streak)))
		}
		b.WriteString("\n")
	}

	if len(s.RecentLinks) > 0 {
		b.WriteString(titleStyle.Render("Recent lectures") + "\n")
		for _, l := range s.RecentLinks {
			fmt.Fprintf(&b, "  • %s %s\n", l.Title, mutedStyle.Render(l.URL))
		}
	}

	return docStyle.Render(b.String())
}

func (m Model) viewStudy() string {
	s := m.summary
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		progressLine("Today", m.studyBar.ViewAs(s.Study.Percent/100), s.Study, utils.FormatMinutes),
		"",
		m.pomodoro.View(),
		"",
		titleStyle.Render("Last 7 days"),
		m.studyChart.View(),
	))
}

func (m Model) viewSleep() string {
	s := m.summary
	lines := []string{
		progressLine("Last night", m.sleepBar.ViewAs(s.Sleep.Percent/100), s.Sleep, utils.FormatMinutes),
	}
	if entries := m.store.SleepEntries(); len(entries) > 0 {
		e := entries[0]
		detail := e.Date
		if e.Bedtime != "" && e.WakeTime != "" {
			detail += fmt.Sprintf(", %s → %s", e.Bedtime, e.WakeTime)
		}
		if e.Note != "" {
			detail += " · " + e.Note
		}
		lines = append(lines, mutedStyle.Render("Latest: "+detail))
	}
	lines = append(lines,
		mutedStyle.Render("Average (last 7 nights): "+formatHours(s.AvgSleepHours)),
		"",
		titleStyle.Render("Last 7 days"),
		m.sleepChart.View(),
	)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewGoals() string {
	g := m.store.Goals()
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Daily goals"),
		"",
		fmt.Sprintf("Study:  %s", utils.FormatMinutes(g.StudyMinutes)),
		fmt.Sprintf("Sleep:  %s", utils.FormatMinutes(g.SleepMinutes)),
		fmt.Sprintf("Habits: %d per day", g.HabitsPerDay),
		"",
		mutedStyle.Render("Press 'e' to edit."),
	))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s?", m.pendingLabel)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
