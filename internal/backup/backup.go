package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/persistence"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager writes, lists, rotates and restores document snapshots
type Manager struct {
	backupDir string
	clock     clock.Clock
}

type Option func(*Manager)

// WithClock overrides the clock used to name snapshots
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

func NewManager(backupDir string, opts ...Option) *Manager {
	m := &Manager{backupDir: backupDir, clock: clock.Real()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DirFor picks the backup directory for a store. File-backed stores keep
// snapshots next to their data file; remote and in-memory stores use the
// default config directory.
func DirFor(configPath string) (string, error) {
	if configPath != "" && configPath != constants.MemoryConfig && !strings.Contains(configPath, "://") &&
		filepath.IsAbs(configPath) {
		return filepath.Join(filepath.Dir(configPath), constants.BackupDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName, constants.BackupDirName), nil
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup validates doc and writes it to a new snapshot file
func (m *Manager) CreateBackup(doc []byte) (string, error) {
	return m.createBackup(doc, false)
}

func (m *Manager) createBackup(doc []byte, skipRotation bool) (string, error) {
	if _, _, err := persistence.Decode(doc); err != nil {
		return "", fmt.Errorf("refusing to back up an invalid document: %w", err)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, doc, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextPath names a snapshot by minute, falling back to seconds and then a
// counter when that name is taken.
func (m *Manager) nextPath() (string, error) {
	now := m.clock.Now()
	candidate := m.pathFor(now.Format(minuteLayout))
	if !exists(candidate) {
		return candidate, nil
	}

	stamp := now.Format(secondLayout)
	candidate = m.pathFor(stamp)
	for counter := 1; exists(candidate); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		candidate = m.pathFor(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return candidate, nil
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// parseStamp extracts the timestamp from a snapshot file name, ignoring a
// trailing collision counter.
func parseStamp(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseStamp(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup validates the snapshot at backupPath, snapshots current (when
// non-empty) so the restore can be undone, and returns the snapshot bytes for
// the caller to install.
func (m *Manager) RestoreBackup(backupPath string, current []byte) ([]byte, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup file does not exist: %s", backupPath)
		}
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	if _, _, err := persistence.Decode(data); err != nil {
		return nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if len(current) > 0 {
		saved, err := m.createBackup(current, true)
		if err != nil {
			return nil, fmt.Errorf("failed to back up current document before restore: %w", err)
		}
		logger.Info("Saved current document before restore", "path", saved)
	}
	return data, nil
}
