package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
	"github.com/julianstephens/boardprep/internal/storage"
)

// LoadInfo describes how Load obtained the document it returned
type LoadInfo struct {
	// Fresh is set when no document was stored and defaults were built
	Fresh bool
	// Recovered is set when the stored bytes could not be decoded and were
	// moved aside under CorruptStorageKey.
	Recovered bool
	// Migrations lists the upgrade steps applied to an older document
	Migrations []string
}

// Adapter bridges the in-memory document and a key-value Provider
type Adapter struct {
	store storage.Provider
}

func New(store storage.Provider) *Adapter {
	return &Adapter{store: store}
}

// Store returns the underlying provider
func (a *Adapter) Store() storage.Provider {
	return a.store
}

// Decode parses a stored document, upgrading older shapes first
func Decode(data []byte) (models.UserData, []string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.UserData{}, nil, fmt.Errorf("failed to parse stored document: %w", err)
	}
	if raw == nil {
		return models.UserData{}, nil, fmt.Errorf("stored document is null")
	}

	applied := migrateDocument(raw)

	upgraded, err := json.Marshal(raw)
	if err != nil {
		return models.UserData{}, nil, fmt.Errorf("failed to re-encode document: %w", err)
	}
	var d models.UserData
	if err := json.Unmarshal(upgraded, &d); err != nil {
		return models.UserData{}, nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if d.Logs == nil {
		d.Logs = map[string]models.DayLog{}
	}
	return d, applied, nil
}

// Encode serializes the whole document
func Encode(d models.UserData) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Load reads the document. An absent document yields first-run defaults built
// from subjects. Undecodable bytes are moved aside, logged, and replaced by
// first-run defaults. Only storage failures are returned as errors.
func (a *Adapter) Load(now time.Time, subjects []models.Subject) (models.UserData, LoadInfo, error) {
	data, found, err := a.store.Read(constants.StorageKey)
	if err != nil {
		return models.UserData{}, LoadInfo{}, fmt.Errorf("failed to read document: %w", err)
	}
	if !found {
		return progress.NewDocument(now, subjects), LoadInfo{Fresh: true}, nil
	}

	d, applied, err := Decode(data)
	if err == nil {
		if len(applied) > 0 {
			logger.Info("Upgraded stored document", "steps", applied)
		}
		return d, LoadInfo{Migrations: applied}, nil
	}

	logger.Warn("Stored document is corrupt, starting over", "error", err, "bytes", len(data), "preservedAs", constants.CorruptStorageKey)
	if werr := a.store.Write(constants.CorruptStorageKey, data); werr != nil {
		return models.UserData{}, LoadInfo{}, fmt.Errorf("failed to preserve corrupt document: %w", werr)
	}
	fresh := progress.NewDocument(now, subjects)
	if serr := a.Save(fresh); serr != nil {
		return models.UserData{}, LoadInfo{}, serr
	}
	return fresh, LoadInfo{Fresh: true, Recovered: true}, nil
}

// Save overwrites the stored document with d
func (a *Adapter) Save(d models.UserData) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := a.store.Write(constants.StorageKey, data); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Raw returns the stored document bytes without decoding them
func (a *Adapter) Raw() ([]byte, bool, error) {
	return a.store.Read(constants.StorageKey)
}

// WriteRaw validates data as a document and stores it unchanged
func (a *Adapter) WriteRaw(data []byte) error {
	if _, _, err := Decode(data); err != nil {
		return err
	}
	return a.store.Write(constants.StorageKey, data)
}

// Theme returns the stored theme. Anything other than "dark" reads as light.
func (a *Adapter) Theme() (string, error) {
	data, found, err := a.store.Read(constants.ThemeKey)
	if err != nil {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	if found && string(data) == constants.ThemeDark {
		return constants.ThemeDark, nil
	}
	return constants.ThemeLight, nil
}

func (a *Adapter) SetTheme(theme string) error {
	if theme != constants.ThemeDark && theme != constants.ThemeLight {
		return fmt.Errorf("invalid theme %q, expected %s or %s", theme, constants.ThemeDark, constants.ThemeLight)
	}
	if err := a.store.Write(constants.ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
