package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/julianstephens/boardprep/internal/advice"
	"github.com/julianstephens/boardprep/internal/backup"
	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/constants"
	apperrors "github.com/julianstephens/boardprep/internal/errors"
	"github.com/julianstephens/boardprep/internal/keyring"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/seed"
	"github.com/julianstephens/boardprep/internal/storage"
	"github.com/julianstephens/boardprep/internal/storage/postgres"
	"github.com/julianstephens/boardprep/internal/storage/redis"
	"github.com/julianstephens/boardprep/internal/storage/sqlite"
	"github.com/julianstephens/boardprep/internal/tracker"
)

type Context struct {
	Store storage.Provider
	Seed  seed.Config
	Clock clock.Clock

	// BackupDir overrides the directory chosen by backup.DirFor
	BackupDir string

	tracker *tracker.Tracker
}

func (c *Context) clock() clock.Clock {
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	return c.Clock
}

// Now reads the context clock, defaulting to wall time
func (c *Context) Now() time.Time {
	return c.clock().Now()
}

// Tracker opens the document on first use and returns the same tracker after
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	t, err := tracker.Open(c.Store, c.clock(), c.Seed.Subjects)
	if err != nil {
		return nil, err
	}
	c.tracker = t
	return t, nil
}

// BackupManager returns a backup manager for the active store
func (c *Context) BackupManager() (*backup.Manager, error) {
	dir := c.BackupDir
	if dir == "" {
		var err error
		dir, err = backup.DirFor(c.Store.GetConfigPath())
		if err != nil {
			return nil, err
		}
	}
	return backup.NewManager(dir, backup.WithClock(c.clock())), nil
}

// PerformAutomaticBackup snapshots the stored document. Failures are logged
// and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	t, err := c.Tracker()
	if err != nil {
		logger.Warn("Automatic backup skipped", "error", err)
		return
	}
	doc, err := t.Encoded()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if _, err := mgr.CreateBackup(doc); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// NewAdvisor builds the Gemini advisor from the environment, falling back to
// the keyring for the key. Without a key it returns a nil Advisor, which
// advice.Consult answers with its failure reply.
func NewAdvisor() (advice.Advisor, error) {
	client, err := advice.NewGeminiClient(advice.ConfigFromEnv(keyring.GetAPIKey))
	if err != nil {
		if errors.Is(err, advice.ErrMissingAPIKey) {
			logger.Debug("Advice disabled", "error", err)
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

// LookupSubject resolves a subject id against the current document
func LookupSubject(d models.UserData, id string) (models.Subject, error) {
	idx := d.FindSubject(id)
	if idx < 0 {
		return models.Subject{}, apperrors.WithHint(
			fmt.Errorf("unknown subject: %s", id),
			"run 'boardprep chapter list' to see subject ids")
	}
	return d.Subjects[idx], nil
}

// LookupChapter resolves a chapter id inside a subject
func LookupChapter(s models.Subject, id string) (models.Chapter, error) {
	idx := s.FindChapter(id)
	if idx < 0 {
		return models.Chapter{}, apperrors.WithHint(
			fmt.Errorf("unknown chapter %s in subject %s", id, s.ID),
			fmt.Sprintf("run 'boardprep chapter list %s' to see chapter ids", s.ID))
	}
	return s.Chapters[idx], nil
}

// StartedAgo renders the journey start relative to now, e.g. "3 days ago"
func StartedAgo(d models.UserData, now time.Time) string {
	if !d.IsStarted || d.JourneyStartedAt == nil {
		return "not started"
	}
	return humanize.RelTime(*d.JourneyStartedAt, now, "ago", "from now")
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is where logs and .env live. File-backed stores use their own
// directory; everything else uses ~/.config/boardprep.
func ConfigDir(config string) (string, error) {
	if config != "" && config != constants.MemoryConfig && config != constants.KeyringConfig &&
		!postgres.IsConnString(config) && !redis.IsURL(config) {
		path, err := ExpandPath(config)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	}
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}

// LoadEnv reads .env from the config directory and then the working
// directory. Variables already set are never overridden.
func LoadEnv(configDir string) {
	for _, path := range []string{filepath.Join(configDir, ".env"), ".env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to load env file", "path", path, "error", err)
		}
	}
}

// OpenStore picks a provider from the --config value
func OpenStore(config string) (storage.Provider, error) {
	switch {
	case config == constants.MemoryConfig:
		return storage.NewMemoryStore(), nil
	case config == constants.KeyringConfig:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, apperrors.WithHint(err, "store one with 'boardprep keyring set <connection-string>'")
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(config):
		if ok, err := postgres.ValidateConnString(config); !ok {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(err,
					"use .pgpass, PGPASSWORD, or store the full string with 'boardprep keyring set' and pass --config keyring")
			}
			return nil, err
		}
		return postgres.New(config), nil
	case redis.IsURL(config):
		return redis.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// Bar renders percent as a fixed-width text progress bar
func Bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Confirm asks a yes/no question on the terminal. Tests replace it.
var Confirm = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	return ok, err
}
