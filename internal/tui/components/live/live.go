package live

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/schedule"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	clockStyle = lipgloss.NewStyle().
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("244"))
)

// TickMsg refreshes the clock and the live block
type TickMsg time.Time

// QuoteMsg rotates the motivational quote
type QuoteMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.ClockTickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func quoteTick() tea.Cmd {
	return tea.Tick(constants.QuoteInterval, func(t time.Time) tea.Msg {
		return QuoteMsg(t)
	})
}

type Model struct {
	Time    time.Time
	Started bool
	Quote   string

	blocks []models.ScheduleBlock
	pick   func() string
}

// New builds the live panel. pick chooses the next quote.
func New(now time.Time, blocks []models.ScheduleBlock, pick func() string) Model {
	return Model{
		Time:   now,
		Quote:  pick(),
		blocks: blocks,
		pick:   pick,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), quoteTick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.Time = time.Time(msg)
		return m, tick()
	case QuoteMsg:
		m.Quote = m.pick()
		return m, quoteTick()
	}
	return m, nil
}

// Status is the block the clock currently falls into
func (m Model) Status() schedule.Live {
	return schedule.LiveStatus(m.Started, m.blocks, m.Time)
}

func (m Model) View() string {
	status := m.Status()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		clockStyle.Render(m.Time.Format(constants.TimeFormat)),
		"  ",
		labelStyle.Render(status.Label),
	)
	lines := []string{header, titleStyle.Render(status.Title)}
	if status.Kind == schedule.LiveBlock {
		lines = append(lines, labelStyle.Render(status.Block.TimeRange()))
	}
	if m.Quote != "" {
		lines = append(lines, "", quoteStyle.Render("“"+m.Quote+"”"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
