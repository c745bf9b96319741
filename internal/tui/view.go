package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/boardprep/internal/calendar"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/labels"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
)

var tabTitles = []string{"Dashboard", "Syllabus", "Calendar", "Planner", "Setup"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateSyllabus:
		content = m.subjects.View()
	case constants.StateChapters:
		content = m.viewChapters()
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StatePlanner:
		content = m.planner.View()
	case constants.StateSetup:
		content = m.viewSetup()
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	parts := []string{m.viewTabs(), docStyle.Render(content)}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.activeTab()
	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, m.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return m.styles.barFill.Render(strings.Repeat("█", filled)) +
		m.styles.barEmpty.Render(strings.Repeat("░", width-filled))
}

func (m Model) card(label, value string) string {
	return m.styles.card.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.muted.Render(label),
		m.styles.cardValue.Render(value),
	))
}

func (m Model) viewDashboard() string {
	d := m.tracker.Document()
	snap := m.tracker.Snapshot()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("SSC Board Prep"),
		"  ",
		m.styles.badge.Render(labels.Phase(snap.Phase)),
	)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Days Left", fmt.Sprintf("%d", snap.DaysRemaining)),
		m.card("Progress", fmt.Sprintf("%d%%", snap.Percent)),
		m.card("Chapters", fmt.Sprintf("%d/%d", snap.Completed, snap.Total)),
		m.card("Self Study", constants.DailySelfStudy),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewStrategicPath(snap.Phase),
		"",
		m.live.View(),
		"",
		m.viewMentor(d.IsStarted),
	)
	right := m.viewSubjectBars(snap)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	parts := []string{header, "", cards, "", body}
	if !d.IsStarted {
		parts = append(parts, "", m.styles.selected.Render(
			fmt.Sprintf("Press s to start your %d day journey", constants.TotalDays)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewStrategicPath(phase models.Phase) string {
	line := func(p models.Phase, text string) string {
		if p == phase {
			return m.styles.selected.Render("▶ " + text)
		}
		return m.styles.muted.Render("  " + text)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Strategic Path"),
		line(models.PhaseSyllabus, fmt.Sprintf("Syllabus Mode  days 1-%d", constants.SyllabusDays)),
		line(models.PhasePaperSolving, fmt.Sprintf("Solving Mode   last %d days", constants.PaperSolvingDays)),
	)
}

func (m Model) viewMentor(started bool) string {
	var body string
	switch {
	case !started:
		body = m.styles.muted.Render("Start your journey to unlock the mentor.")
	case m.adviceLoading:
		body = m.styles.muted.Render("Thinking...")
	case m.adviceText != "":
		body = lipgloss.NewStyle().Width(48).Render(m.adviceText)
	default:
		body = m.styles.muted.Render("Press a for today's advice.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.title.Render("Mentor"), body)
}

func (m Model) viewSubjectBars(snap progress.Snapshot) string {
	lines := []string{m.styles.title.Render("Subjects")}
	for _, s := range snap.Subjects {
		name := s.Name
		if s.IsWeak {
			name = "⚠ " + name
		}
		lines = append(lines, fmt.Sprintf("%-30s %s %3d%%", name, m.bar(s.Percent, 12), s.Percent))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewChapters() string {
	subject, ok := m.currentSubject()
	if !ok {
		return "Subject not found."
	}
	stats := progress.ForSubject(subject)

	lines := []string{
		m.styles.title.Render(subject.Name),
		m.styles.muted.Render(fmt.Sprintf("%s medium · %d/%d done", subject.Medium, stats.Completed, stats.Total)),
		m.bar(stats.Percent, 30),
		"",
	}
	for i, ch := range subject.Chapters {
		row := fmt.Sprintf("%-6s %s", labels.Chapter(ch.Status, subject.Medium), ch.Name)
		if i == m.chapterCursor {
			lines = append(lines, m.styles.selected.Render("> "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewCalendar() string {
	d := m.tracker.Document()
	month := calendar.Build(d, m.calendarCursor, m.tracker.Now())
	cursorKey := progress.DateKey(m.calendarCursor)

	var b strings.Builder
	b.WriteString(m.styles.title.Render(month.Title()))
	b.WriteString("\n\n")
	for _, h := range calendar.WeekdayHeader {
		fmt.Fprintf(&b, "%-5s", " "+h)
	}
	b.WriteString("\n")

	for _, week := range month.Weeks {
		for _, cell := range week {
			if cell.Day == 0 {
				b.WriteString("     ")
				continue
			}
			glyph := labels.DayGlyph(cell.Status)
			text := fmt.Sprintf("%2d%s", cell.Day, m.styles.day[cell.Status].Render(glyph))
			if cell.IsToday {
				text = m.styles.today.Render(fmt.Sprintf("%2d", cell.Day)) + m.styles.day[cell.Status].Render(glyph)
			}
			if cell.Key == cursorKey {
				fmt.Fprintf(&b, "%s%s%s ", m.styles.selected.Render("["), text, m.styles.selected.Render("]"))
			} else {
				fmt.Fprintf(&b, " %s  ", text)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	counts := progress.LogCounts(d)
	var legend []string
	for _, e := range labels.Legend() {
		legend = append(legend, fmt.Sprintf("%s %s (%d)", m.styles.day[e.Status].Render(e.Glyph), e.Text, counts[e.Status]))
	}
	b.WriteString(strings.Join(legend, "   "))
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(cursorKey + " · enter cycles the day"))
	return b.String()
}

func (m Model) viewSetup() string {
	d := m.tracker.Document()

	lines := []string{
		m.styles.title.Render("Weak subjects"),
		m.styles.muted.Render("The mentor focuses on subjects marked weak."),
		"",
	}
	for i, s := range d.Subjects {
		mark := "[ ]"
		if s.IsWeak {
			mark = "[x]"
		}
		row := fmt.Sprintf("%s %s", mark, s.Name)
		if i == m.setupCursor {
			lines = append(lines, m.styles.selected.Render("> "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	lines = append(lines,
		"",
		m.styles.title.Render("Appearance"),
		fmt.Sprintf("Theme: %s (t to toggle)", m.theme),
		"",
		dangerStyle.Render("Danger zone"),
		"R resets all progress after confirmation.",
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConfirmation() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		m.form.View(),
	)
}
