package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/boardprep/internal/advice"
	"github.com/julianstephens/boardprep/internal/calendar"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
	"github.com/julianstephens/boardprep/internal/tui/components/live"
	"github.com/julianstephens/boardprep/internal/tui/components/subjects"
)

type adviceMsg struct {
	reply string
	err   error
}

type resetDoneMsg struct {
	err error
}

func consultCmd(advisor advice.Advisor, d models.UserData, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultAdviceTimeout)
		defer cancel()
		reply, err := advice.Consult(ctx, advisor, d, now)
		return adviceMsg{reply: reply, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.subjects.SetSize(msg.Width-4, msg.Height-6)
		m.planner.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case live.TickMsg, live.QuoteMsg:
		var cmd tea.Cmd
		m.live, cmd = m.live.Update(msg)
		return m, cmd

	case adviceMsg:
		m.adviceLoading = false
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.adviceText = msg.reply
		}
		return m, nil

	case resetDoneMsg:
		if msg.err != nil {
			m.status = "Reset failed: " + msg.err.Error()
		} else {
			m.adviceText = ""
			m.status = "Progress reset"
		}
		m.refresh()
		return m, nil

	case constants.ConfirmationMsg:
		return m, m.handleConfirmationMessage(msg)

	case subjects.OpenSubjectMsg:
		m.chapterSubject = msg.ID
		m.chapterCursor = 0
		m.state = constants.StateChapters
		return m, nil
	}

	if m.state == constants.StateConfirmation {
		return m, m.handleConfirmationState(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateComponents(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.switchTab(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.switchTab(-1)
		return m, nil
	}

	m.status = ""
	switch m.state {
	case constants.StateDashboard:
		return m.updateDashboard(keyMsg)
	case constants.StateSyllabus:
		return m.updateComponents(msg)
	case constants.StateChapters:
		return m.updateChapters(keyMsg)
	case constants.StateCalendar:
		return m.updateCalendar(keyMsg)
	case constants.StatePlanner:
		return m.updateComponents(msg)
	case constants.StateSetup:
		return m.updateSetup(keyMsg)
	}
	return m, nil
}

func (m *Model) switchTab(delta int) {
	next := (int(m.activeTab()) + delta + constants.TabCount) % constants.TabCount
	m.state = constants.SessionState(next)
}

// updateComponents forwards a message to the component owning the active tab
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateSyllabus:
		m.subjects, cmd = m.subjects.Update(msg)
	case constants.StatePlanner:
		m.planner, cmd = m.planner.Update(msg)
	}
	return m, cmd
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	started := m.tracker.Document().IsStarted
	switch {
	case key.Matches(msg, m.keys.Start):
		if started {
			return m, nil
		}
		if _, err := m.tracker.StartJourney(); err != nil {
			m.status = "Failed to start: " + err.Error()
			return m, nil
		}
		m.status = "Journey started. Good luck!"
		m.refresh()
	case key.Matches(msg, m.keys.Advice):
		if !started {
			m.status = "Start your journey first (press s)"
			return m, nil
		}
		if m.adviceLoading {
			return m, nil
		}
		m.adviceLoading = true
		m.adviceText = ""
		return m, consultCmd(m.advisor, m.tracker.Document(), m.tracker.Now())
	}
	return m, nil
}

func (m Model) currentSubject() (models.Subject, bool) {
	d := m.tracker.Document()
	idx := d.FindSubject(m.chapterSubject)
	if idx < 0 {
		return models.Subject{}, false
	}
	return d.Subjects[idx], true
}

func (m Model) updateChapters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	subject, ok := m.currentSubject()
	if !ok || key.Matches(msg, m.keys.Back) {
		m.state = constants.StateSyllabus
		return m, nil
	}

	var status models.ChapterStatus
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.chapterCursor > 0 {
			m.chapterCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.chapterCursor < len(subject.Chapters)-1 {
			m.chapterCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.NotStarted):
		status = models.ChapterNotStarted
	case key.Matches(msg, m.keys.InProgress):
		status = models.ChapterInProgress
	case key.Matches(msg, m.keys.Completed):
		status = models.ChapterCompleted
	default:
		return m, nil
	}

	chapter := subject.Chapters[m.chapterCursor]
	if _, err := m.tracker.SetChapterStatus(subject.ID, chapter.ID, status); err != nil {
		logger.Error("Failed to update chapter", "subject", subject.ID, "chapter", chapter.ID, "error", err)
		m.status = "Failed to save: " + err.Error()
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, -1)
	case key.Matches(msg, m.keys.Right):
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, 1)
	case key.Matches(msg, m.keys.Up):
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, -7)
	case key.Matches(msg, m.keys.Down):
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, 7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.calendarCursor = calendar.Shift(m.calendarCursor, -1)
	case key.Matches(msg, m.keys.NextMonth):
		m.calendarCursor = calendar.Shift(m.calendarCursor, 1)
	case key.Matches(msg, m.keys.Enter):
		dateKey := progress.DateKey(m.calendarCursor)
		if _, err := m.tracker.CycleDayLog(dateKey); err != nil {
			logger.Error("Failed to update day log", "date", dateKey, "error", err)
			m.status = "Failed to save: " + err.Error()
		}
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.tracker.Document()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.setupCursor > 0 {
			m.setupCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.setupCursor < len(d.Subjects)-1 {
			m.setupCursor++
		}
	case key.Matches(msg, m.keys.Weak):
		if m.setupCursor >= len(d.Subjects) {
			return m, nil
		}
		id := d.Subjects[m.setupCursor].ID
		if _, err := m.tracker.ToggleWeakSubject(id); err != nil {
			logger.Error("Failed to toggle weak subject", "subject", id, "error", err)
			m.status = "Failed to save: " + err.Error()
			return m, nil
		}
		m.refresh()
	case key.Matches(msg, m.keys.Theme):
		theme, err := m.tracker.ToggleTheme()
		if err != nil {
			m.status = "Failed to save theme: " + err.Error()
			return m, nil
		}
		m.theme = theme
		m.styles = newStyles(theme)
	case key.Matches(msg, m.keys.Reset):
		t, backup := m.tracker, m.backup
		reset := func() tea.Cmd {
			return func() tea.Msg {
				if backup != nil {
					backup()
				}
				return resetDoneMsg{err: t.Reset()}
			}
		}
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{Message: "Reset all progress? Chapter statuses and day logs will be erased.", Action: reset}
		}
	}
	return m, nil
}
