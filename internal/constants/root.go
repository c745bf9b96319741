package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName           = "boardprep"
	DefaultConfigPath = "~/.config/boardprep/boardprep.db"
	Version           = "v0.1.0"

	// Keyring users
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "gemini-api-key"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used for calendar navigation (YYYY-MM)
	MonthFormat = "2006-01"

	// Storage keys
	StorageKey        = "ssc_planner_data_v5"
	CorruptStorageKey = StorageKey + ".corrupt"
	ThemeKey          = "theme"
	ThemeDark         = "dark"
	ThemeLight        = "light"

	// MemoryConfig selects the in-process store
	MemoryConfig = ":memory:"
	// KeyringConfig selects PostgreSQL with the connection string held in the OS keyring
	KeyringConfig = "keyring"

	// Preparation window
	TotalDays        = 340
	SyllabusDays     = 320
	PaperSolvingDays = 20
	DailySelfStudy   = "4.5 hrs"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "boardprep-"
	BackupFileSuffix = ".json"

	// Advice constants
	DefaultGeminiModel   = "gemini-3-flash-preview"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	GeminiAPIKeyEnv      = "GEMINI_API_KEY"
	GeminiModelEnv       = "GEMINI_MODEL"
	GeminiBaseURLEnv     = "GEMINI_BASE_URL"
	DefaultAdviceTimeout = 30 * time.Second

	// TUI refresh intervals
	ClockTickInterval = time.Second
	QuoteInterval     = 30 * time.Second

	// Redis
	RedisKeyPrefix = AppName + ":"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateSyllabus
	StateCalendar
	StatePlanner
	StateSetup
	StateConfirmation
	StateChapters
)

// TabCount is the number of navigable tabs in the TUI
const TabCount = int(StateSetup) + 1
