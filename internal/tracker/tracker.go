package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/persistence"
	"github.com/julianstephens/boardprep/internal/progress"
	"github.com/julianstephens/boardprep/internal/storage"
)

// Tracker owns the current document. Every change goes through Dispatch,
// which applies an intent and writes the result through to storage before
// publishing it.
type Tracker struct {
	mu       sync.Mutex
	adapter  *persistence.Adapter
	clock    clock.Clock
	subjects []models.Subject
	doc      models.UserData
	info     persistence.LoadInfo
}

// Open loads the stored document, falling back to a first-run document built
// from subjects.
func Open(store storage.Provider, clk clock.Clock, subjects []models.Subject) (*Tracker, error) {
	if clk == nil {
		clk = clock.Real()
	}
	adapter := persistence.New(store)
	doc, info, err := adapter.Load(clk.Now(), subjects)
	if err != nil {
		return nil, err
	}
	if info.Recovered {
		logger.Warn("Recovered from a corrupt document", "store", store.GetConfigPath())
	}
	return &Tracker{
		adapter:  adapter,
		clock:    clk,
		subjects: subjects,
		doc:      doc,
		info:     info,
	}, nil
}

// LoadInfo reports how the document was obtained when the tracker opened
func (t *Tracker) LoadInfo() persistence.LoadInfo {
	return t.info
}

// Adapter exposes the persistence layer for raw document access
func (t *Tracker) Adapter() *persistence.Adapter {
	return t.adapter
}

// Now returns the tracker's clock reading
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Document returns a deep copy of the current document
func (t *Tracker) Document() models.UserData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doc.Clone()
}

// Snapshot derives every view value from the current document
func (t *Tracker) Snapshot() progress.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress.Derive(t.doc, t.clock.Now())
}

// Dispatch applies intent and, when it changed the document, saves the
// result. A failed save leaves the previous document in place.
func (t *Tracker) Dispatch(intent progress.Intent) (bool, error) {
	_, changed, err := t.dispatch(intent)
	return changed, err
}

// dispatch is Dispatch returning the document as it stood when the lock was
// released.
func (t *Tracker) dispatch(intent progress.Intent) (models.UserData, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, changed := intent.Apply(t.doc, t.clock.Now())
	if !changed {
		logger.Debug("Intent made no change", "intent", intent.Name(), "detail", fmt.Sprintf("%+v", intent))
		return t.doc, false, nil
	}
	if err := t.adapter.Save(next); err != nil {
		return t.doc, false, fmt.Errorf("%s: %w", intent.Name(), err)
	}
	t.doc = next
	logger.Debug("Applied intent", "intent", intent.Name())
	return next, true, nil
}

func (t *Tracker) StartJourney() (bool, error) {
	return t.Dispatch(progress.StartJourney{})
}

func (t *Tracker) SetChapterStatus(subjectID, chapterID string, status models.ChapterStatus) (bool, error) {
	return t.Dispatch(progress.SetChapterStatus{SubjectID: subjectID, ChapterID: chapterID, Status: status})
}

func (t *Tracker) ToggleWeakSubject(subjectID string) (bool, error) {
	return t.Dispatch(progress.ToggleWeakSubject{SubjectID: subjectID})
}

// CycleDayLog advances the log entry for dateKey and returns its new status
func (t *Tracker) CycleDayLog(dateKey string) (models.DayStatus, error) {
	if _, err := progress.ParseDateKey(dateKey); err != nil {
		return "", err
	}
	doc, _, err := t.dispatch(progress.CycleDayLogStatus{Date: dateKey})
	if err != nil {
		return "", err
	}
	return doc.Logs[dateKey].Status, nil
}

// Reset replaces the document with a first-run document. Callers must have
// obtained confirmation already.
func (t *Tracker) Reset() error {
	_, err := t.Dispatch(progress.ResetProgress{Subjects: t.subjects})
	return err
}

// Replace installs an externally supplied document, such as a restored
// backup, and saves it.
func (t *Tracker) Replace(data []byte) error {
	doc, _, err := persistence.Decode(data)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.adapter.Save(doc); err != nil {
		return err
	}
	t.doc = doc
	return nil
}

// Encoded returns the current document serialized as it is stored
func (t *Tracker) Encoded() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return persistence.Encode(t.doc)
}

func (t *Tracker) Theme() (string, error) {
	return t.adapter.Theme()
}

func (t *Tracker) SetTheme(theme string) error {
	return t.adapter.SetTheme(theme)
}

// ToggleTheme flips between dark and light and returns the new theme
func (t *Tracker) ToggleTheme() (string, error) {
	current, err := t.adapter.Theme()
	if err != nil {
		return "", err
	}
	next := constants.ThemeDark
	if current == constants.ThemeDark {
		next = constants.ThemeLight
	}
	if err := t.adapter.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
