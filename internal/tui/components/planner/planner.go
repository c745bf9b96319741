package planner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/schedule"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	taskStyle = lipgloss.NewStyle().
			Bold(true)

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			PaddingLeft(16)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// Data is everything the planner tab shows
type Data struct {
	Phase      models.Phase
	Started    bool
	Day        int
	TargetDays int
	OpenCount  int
	Slots      []schedule.PlannerSlot
	Papers     []models.MockPaper
}

type Model struct {
	viewport viewport.Model
	data     *Data
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
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
	if m.data == nil {
		return "Nothing planned yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetData(d Data) {
	m.data = &d
	m.Render()
}

func (m *Model) Render() {
	if m.data == nil {
		m.viewport.SetContent("Nothing planned yet.")
		return
	}
	d := m.data

	var b strings.Builder
	if d.Started {
		fmt.Fprintf(&b, "Day %d/%d · %s\n", d.Day, d.TargetDays, d.Phase)
	} else {
		fmt.Fprintf(&b, "Not started · %s\n", d.Phase)
	}
	fmt.Fprintf(&b, "%d chapters still open\n\n", d.OpenCount)

	b.WriteString(headerStyle.Render("Today's tasks"))
	b.WriteString("\n")
	for _, slot := range d.Slots {
		fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(slot.TimeRange()), taskStyle.Render(slot.Task))
		if slot.Tip != "" {
			b.WriteString(tipStyle.Render("💡 " + slot.Tip))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Previous year papers"))
	b.WriteString("\n")
	if d.Phase != models.PhasePaperSolving {
		fmt.Fprintf(&b, "🔒 Unlocks in the last %d days. Keep finishing the syllabus!\n", constants.PaperSolvingDays)
	}
	for _, p := range d.Papers {
		mark := "○"
		if p.Completed {
			mark = "●"
		}
		fmt.Fprintf(&b, "  %s %-28s %s\n", mark, p.Subject, p.Year)
	}
	m.viewport.SetContent(b.String())
}
