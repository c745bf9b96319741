package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/boardprep/internal/advice"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/schedule"
	"github.com/julianstephens/boardprep/internal/seed"
	"github.com/julianstephens/boardprep/internal/tracker"
	"github.com/julianstephens/boardprep/internal/tui/components/live"
	"github.com/julianstephens/boardprep/internal/tui/components/planner"
	"github.com/julianstephens/boardprep/internal/tui/components/subjects"
)

// ConfirmationFormModel backs the yes/no form shown before destructive actions
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

type Model struct {
	tracker        *tracker.Tracker
	seed           seed.Config
	advisor        advice.Advisor
	backup         func()
	state          constants.SessionState
	previousState  constants.SessionState
	keys           KeyMap
	help           help.Model
	styles         styles
	theme          string
	live           live.Model
	subjects       subjects.Model
	planner        planner.Model
	form           *huh.Form
	confirmation   *ConfirmationFormModel
	pendingAction  func() tea.Cmd
	chapterSubject string
	chapterCursor  int
	calendarCursor time.Time
	setupCursor    int
	adviceText     string
	adviceLoading  bool
	status         string
	quitting       bool
	width          int
	height         int
}

// NewModel builds the TUI over an open tracker. advisor may be nil, in which
// case the mentor answers with its offline reply.
func NewModel(t *tracker.Tracker, cfg seed.Config, advisor advice.Advisor) Model {
	now := t.Now()
	theme, err := t.Theme()
	if err != nil {
		logger.Warn("Failed to read theme, using default", "error", err)
		theme = constants.ThemeLight
	}

	lm := live.New(now, cfg.Schedule, cfg.RandomQuote)
	lm.Started = t.Document().IsStarted

	m := Model{
		tracker:        t,
		seed:           cfg,
		advisor:        advisor,
		state:          constants.StateDashboard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		styles:         newStyles(theme),
		theme:          theme,
		live:           lm,
		subjects:       subjects.New(nil, 0, 0),
		planner:        planner.New(0, 0),
		calendarCursor: dateOnly(now),
	}
	if t.LoadInfo().Recovered {
		m.status = "Stored progress was unreadable and has been reset"
	}
	m.refresh()
	return m
}

// WithBackup sets the hook run before a confirmed reset erases progress
func (m Model) WithBackup(fn func()) Model {
	m.backup = fn
	return m
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// refresh pushes the tracker's current document into the child components
func (m *Model) refresh() {
	d := m.tracker.Document()
	snap := m.tracker.Snapshot()

	m.live.Started = d.IsStarted
	m.subjects.SetSubjects(snap.Subjects)
	m.planner.SetData(planner.Data{
		Phase:      snap.Phase,
		Started:    d.IsStarted,
		Day:        schedule.DayNumber(d.TargetDays, snap.DaysRemaining),
		TargetDays: d.TargetDays,
		OpenCount:  schedule.IncompleteChapters(d),
		Slots:      schedule.PlannerTasks(m.seed.Schedule, snap.Phase),
		Papers:     m.seed.Papers,
	})
	if m.setupCursor >= len(d.Subjects) {
		m.setupCursor = 0
	}
}

// activeTab maps sub-states onto the tab they belong to
func (m Model) activeTab() constants.SessionState {
	switch m.state {
	case constants.StateChapters:
		return constants.StateSyllabus
	case constants.StateConfirmation:
		return m.previousState
	}
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	return append(keys, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	var navigation []key.Binding
	switch m.state {
	case constants.StateSyllabus, constants.StateChapters, constants.StateSetup:
		navigation = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}
	case constants.StateCalendar:
		navigation = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	case constants.StatePlanner:
		navigation = []key.Binding{m.keys.Up, m.keys.Down}
	}
	return [][]key.Binding{global, navigation, m.actionKeys()}
}

func (m Model) actionKeys() []key.Binding {
	switch m.state {
	case constants.StateDashboard:
		if m.tracker.Document().IsStarted {
			return []key.Binding{m.keys.Advice}
		}
		return []key.Binding{m.keys.Start}
	case constants.StateChapters:
		return []key.Binding{m.keys.NotStarted, m.keys.InProgress, m.keys.Completed, m.keys.Back}
	case constants.StateCalendar:
		return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter}
	case constants.StateSetup:
		return []key.Binding{m.keys.Weak, m.keys.Theme, m.keys.Reset}
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.live.Init()
}
