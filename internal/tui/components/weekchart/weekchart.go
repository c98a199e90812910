// Package weekchart draws a seven day series as horizontal bars.
package weekchart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/learnnova/internal/utils"
)

const maxBarWidth = 40

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	metStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)
)

type Model struct {
	viewport viewport.Model
	dates    []string
	values   []float64
	goal     float64
	format   func(float64) string
	width    int
	height   int
}

// New returns a chart that labels values with format.
func New(format func(float64) string, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		format:   format,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.dates) == 0 {
		return "No data yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetSeries shows values for the days ending at today, oldest first.
// Bars reaching goal are drawn in the "met" color.
func (m *Model) SetSeries(today string, values []float64, goal float64) {
	dates, err := utils.LastNDates(today, len(values))
	if err != nil {
		dates = nil
	}
	m.dates = dates
	m.values = values
	m.goal = goal
	m.Render()
}

func (m *Model) Render() {
	if len(m.dates) == 0 {
		m.viewport.SetContent("No data yet.")
		return
	}

	scale := m.goal
	for _, v := range m.values {
		scale = math.Max(scale, v)
	}

	width := maxBarWidth
	if m.width > 0 {
		width = min(maxBarWidth, max(m.width-24, 5))
	}

	var b strings.Builder
	for i, date := range m.dates {
		v := m.values[i]
		n := 0
		if scale > 0 {
			n = int(math.Round(v / scale * float64(width)))
		}
		style := barStyle
		if m.goal > 0 && v >= m.goal {
			style = metStyle
		}
		label := date
		if t, err := utils.ParseDate(date); err == nil {
			label = t.Format("Mon Jan 02")
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			dayStyle.Render(label),
			style.Render(strings.Repeat("█", n)),
			valueStyle.Render(m.format(v)),
		)
	}
	m.viewport.SetContent(b.String())
}
