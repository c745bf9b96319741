package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
)

var (
	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// palette holds the colors that change with the theme
type palette struct {
	accent lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	panel  lipgloss.Color
	good   lipgloss.Color
	warn   lipgloss.Color
	bad    lipgloss.Color
}

var palettes = map[string]palette{
	constants.ThemeLight: {
		accent: "57",
		text:   "235",
		muted:  "245",
		panel:  "254",
		good:   "28",
		warn:   "172",
		bad:    "160",
	},
	constants.ThemeDark: {
		accent: "205",
		text:   "252",
		muted:  "240",
		panel:  "236",
		good:   "42",
		warn:   "214",
		bad:    "196",
	},
}

type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	title       lipgloss.Style
	muted       lipgloss.Style
	card        lipgloss.Style
	cardValue   lipgloss.Style
	badge       lipgloss.Style
	selected    lipgloss.Style
	today       lipgloss.Style
	barFill     lipgloss.Style
	barEmpty    lipgloss.Style
	day         map[models.DayStatus]lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[constants.ThemeLight]
	}

	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(p.accent).
			Background(p.panel).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(p.muted),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1).
			Width(18),
		cardValue: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(p.accent).
			Padding(0, 1).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		today: lipgloss.NewStyle().
			Underline(true),
		barFill: lipgloss.NewStyle().
			Foreground(p.good),
		barEmpty: lipgloss.NewStyle().
			Foreground(p.muted),
		day: map[models.DayStatus]lipgloss.Style{
			models.DayCompleted: lipgloss.NewStyle().Foreground(p.good),
			models.DayPartial:   lipgloss.NewStyle().Foreground(p.warn),
			models.DayMissed:    lipgloss.NewStyle().Foreground(p.bad),
			models.DayFuture:    lipgloss.NewStyle().Foreground(p.muted),
		},
	}
}
