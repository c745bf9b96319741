package subjects

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/boardprep/internal/progress"
)

// OpenSubjectMsg asks the parent model to show a subject's chapters
type OpenSubjectMsg struct {
	ID string
}

type Item struct {
	Stats progress.SubjectStats
}

func (i Item) Title() string {
	if i.Stats.IsWeak {
		return "⚠ " + i.Stats.Name
	}
	return i.Stats.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("%d%% | %d/%d chapters | %s medium",
		i.Stats.Percent, i.Stats.Completed, i.Stats.Total, i.Stats.Medium)
}

func (i Item) FilterValue() string { return i.Stats.Name }

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open chapters"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(stats []progress.SubjectStats, width, height int) Model {
	l := list.New(toItems(stats), list.NewDefaultDelegate(), width, height)
	l.Title = "Syllabus"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{list: l, keys: DefaultKeyMap()}
}

func toItems(stats []progress.SubjectStats) []list.Item {
	items := make([]list.Item, len(stats))
	for i, s := range stats {
		items[i] = Item{Stats: s}
	}
	return items
}

// SetSubjects refreshes the rows and keeps the cursor where it was
func (m *Model) SetSubjects(stats []progress.SubjectStats) {
	idx := m.list.Index()
	m.list.SetItems(toItems(stats))
	if idx < len(stats) {
		m.list.Select(idx)
	}
}

// Selected returns the id of the highlighted subject
func (m Model) Selected() (string, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return "", false
	}
	return i.Stats.ID, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Open) {
		if id, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenSubjectMsg{ID: id} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No subjects loaded."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
