package linklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
)

type AddLinkMsg struct{}

type DeleteLinkMsg struct {
	ID    string
	Title string
}

type Item struct {
	Link models.YoutubeLink
}

func (i Item) Title() string { return i.Link.Title }

func (i Item) Description() string {
	return i.Link.URL + " | " + i.Link.AddedAt.Local().Format(constants.DateFormat)
}

func (i Item) FilterValue() string { return i.Link.Title }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
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

func items(links []models.YoutubeLink) []list.Item {
	out := make([]list.Item, len(links))
	for i, l := range links {
		out[i] = Item{Link: l}
	}
	return out
}

func New(links []models.YoutubeLink, width, height int) Model {
	l := list.New(items(links), list.NewDefaultDelegate(), width, height)
	l.Title = "Lectures"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func (m *Model) SetLinks(links []models.YoutubeLink) {
	m.list.SetItems(items(links))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddLinkMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteLinkMsg{ID: i.Link.ID, Title: i.Link.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No lectures saved.\n  Press 'a' to add a YouTube link."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
