package tracker

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/persistence"
	"github.com/julianstephens/boardprep/internal/storage"
)

var start = time.Date(2025, 5, 1, 7, 0, 0, 0, time.UTC)

func subjects() []models.Subject {
	return []models.Subject{
		{ID: "sci", Name: "Science 1", Medium: models.MediumEnglish, Chapters: []models.Chapter{
			{ID: "g", Name: "Gravitation"}, {ID: "p", Name: "Periodic Table"},
		}},
		{ID: "geo", Name: "भूगोल", Medium: models.MediumMarathi, Chapters: []models.Chapter{
			{ID: "f", Name: "क्षेत्रभेट"},
		}},
	}
}

func setupTracker(t *testing.T) (*Tracker, *storage.MemoryStore, *clock.FakeClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	clk := clock.Fake(start)
	tr, err := Open(store, clk, subjects())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return tr, store, clk
}

func storedDoc(t *testing.T, store storage.Provider) models.UserData {
	t.Helper()
	data, found, err := store.Read(constants.StorageKey)
	if err != nil || !found {
		t.Fatalf("no stored document: %v", err)
	}
	d, _, err := persistence.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestOpenFresh(t *testing.T) {
	tr, _, _ := setupTracker(t)
	if !tr.LoadInfo().Fresh {
		t.Error("expected a fresh document")
	}
	snap := tr.Snapshot()
	if snap.DaysPassed != 0 || snap.DaysRemaining != 340 || snap.Total != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestWriteThroughOnEveryChange(t *testing.T) {
	tr, store, clk := setupTracker(t)

	if changed, err := tr.StartJourney(); err != nil || !changed {
		t.Fatalf("StartJourney = %v, %v", changed, err)
	}
	if d := storedDoc(t, store); !d.IsStarted || !d.JourneyStartedAt.Equal(start) {
		t.Errorf("stored document not started: %+v", d)
	}

	clk.Advance(3 * 24 * time.Hour)
	if changed, _ := tr.StartJourney(); changed {
		t.Error("second StartJourney should be a no-op")
	}
	if d := storedDoc(t, store); !d.JourneyStartedAt.Equal(start) {
		t.Error("journeyStartedAt moved")
	}

	if _, err := tr.SetChapterStatus("sci", "p", models.ChapterCompleted); err != nil {
		t.Fatal(err)
	}
	if d := storedDoc(t, store); d.Subjects[0].Chapters[1].Status != models.ChapterCompleted {
		t.Error("chapter status not persisted")
	}

	if _, err := tr.ToggleWeakSubject("geo"); err != nil {
		t.Fatal(err)
	}
	if d := storedDoc(t, store); !d.Subjects[1].IsWeak {
		t.Error("weak flag not persisted")
	}

	status, err := tr.CycleDayLog("2025-05-03")
	if err != nil || status != models.DayCompleted {
		t.Fatalf("CycleDayLog = %q, %v", status, err)
	}
	if d := storedDoc(t, store); d.Logs["2025-05-03"].Status != models.DayCompleted {
		t.Error("day log not persisted")
	}

	snap := tr.Snapshot()
	if snap.DaysPassed != 3 || snap.DaysRemaining != 337 || snap.Completed != 1 || snap.Percent != 33 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestReopenSeesSavedState(t *testing.T) {
	tr, store, clk := setupTracker(t)
	if _, err := tr.StartJourney(); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.SetChapterStatus("geo", "f", models.ChapterInProgress); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(store, clk, subjects())
	if err != nil {
		t.Fatal(err)
	}
	if reopened.LoadInfo().Fresh {
		t.Error("reopened tracker should load the stored document")
	}
	d := reopened.Document()
	if !d.IsStarted || d.Subjects[1].Chapters[0].Status != models.ChapterInProgress {
		t.Errorf("reopened document = %+v", d)
	}
}

func TestCycleDayLogRejectsBadDates(t *testing.T) {
	tr, store, _ := setupTracker(t)
	if _, err := tr.CycleDayLog("05/03/2025"); err == nil {
		t.Error("expected invalid date error")
	}
	if _, found, _ := store.Read(constants.StorageKey); found {
		t.Error("nothing should have been saved")
	}
}

func TestUnknownIDsAreSilent(t *testing.T) {
	tr, store, _ := setupTracker(t)
	changed, err := tr.SetChapterStatus("nope", "x", models.ChapterCompleted)
	if err != nil || changed {
		t.Errorf("unknown id = %v, %v", changed, err)
	}
	if _, found, _ := store.Read(constants.StorageKey); found {
		t.Error("no-op should not save")
	}
}

func TestReset(t *testing.T) {
	tr, store, clk := setupTracker(t)
	_, _ = tr.StartJourney()
	_, _ = tr.SetChapterStatus("sci", "g", models.ChapterCompleted)
	_, _ = tr.ToggleWeakSubject("sci")
	_, _ = tr.CycleDayLog("2025-05-01")

	clk.Advance(time.Hour)
	if err := tr.Reset(); err != nil {
		t.Fatal(err)
	}
	d := storedDoc(t, store)
	if d.IsStarted || d.JourneyStartedAt != nil || len(d.Logs) != 0 {
		t.Errorf("reset document = %+v", d)
	}
	if d.Subjects[0].IsWeak || d.Subjects[0].Chapters[0].Status != models.ChapterNotStarted {
		t.Error("reset kept subject progress")
	}
	if !d.StartDate.Equal(start.Add(time.Hour)) {
		t.Errorf("StartDate = %v", d.StartDate)
	}
}

type flakyStore struct {
	*storage.MemoryStore
	fail bool
}

func (f *flakyStore) Write(key string, value []byte) error {
	if f.fail {
		return errors.New("write refused")
	}
	return f.MemoryStore.Write(key, value)
}

func TestFailedSaveKeepsPreviousDocument(t *testing.T) {
	mem := storage.NewMemoryStore()
	_ = mem.Init()
	store := &flakyStore{MemoryStore: mem}
	tr, err := Open(store, clock.Fake(start), subjects())
	if err != nil {
		t.Fatal(err)
	}

	store.fail = true
	if _, err := tr.StartJourney(); err == nil {
		t.Fatal("expected save error")
	}
	if tr.Document().IsStarted {
		t.Error("in-memory document advanced despite failed save")
	}

	store.fail = false
	if changed, err := tr.StartJourney(); err != nil || !changed {
		t.Errorf("retry = %v, %v", changed, err)
	}
}

func TestReplace(t *testing.T) {
	tr, store, _ := setupTracker(t)

	if err := tr.Replace([]byte("{broken")); err == nil {
		t.Error("Replace should reject invalid data")
	}

	legacy := []byte(`{"startDate":"2025-01-01T00:00:00Z","subjects":[],"targetDays":340}`)
	if err := tr.Replace(legacy); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if d := tr.Document(); len(d.Subjects) != 0 || d.Logs == nil {
		t.Errorf("document = %+v", d)
	}
	if d := storedDoc(t, store); len(d.Subjects) != 0 {
		t.Error("replacement not saved")
	}
}

func TestThemeToggle(t *testing.T) {
	tr, _, _ := setupTracker(t)

	theme, err := tr.ToggleTheme()
	if err != nil || theme != constants.ThemeDark {
		t.Fatalf("ToggleTheme = %q, %v", theme, err)
	}
	theme, _ = tr.ToggleTheme()
	if theme != constants.ThemeLight {
		t.Errorf("second toggle = %q", theme)
	}
	if err := tr.SetTheme("sepia"); err == nil {
		t.Error("SetTheme should reject unknown themes")
	}
}

func TestConcurrentDispatch(t *testing.T) {
	tr, store, _ := setupTracker(t)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			if _, err := tr.CycleDayLog(fmt.Sprintf("2025-05-%02d", day)); err != nil {
				t.Errorf("CycleDayLog: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(tr.Document().Logs); got != 20 {
		t.Errorf("in-memory logs = %d, want 20", got)
	}
	if got := len(storedDoc(t, store).Logs); got != 20 {
		t.Errorf("stored logs = %d, want 20", got)
	}
}

func TestConcurrentCycleSameDay(t *testing.T) {
	tr, _, _ := setupTracker(t)

	const key = "2025-05-03"
	results := make(chan models.DayStatus, 4)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := tr.CycleDayLog(key)
			if err != nil {
				t.Errorf("CycleDayLog: %v", err)
				return
			}
			results <- status
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[models.DayStatus]int)
	for s := range results {
		seen[s]++
	}
	for _, want := range []models.DayStatus{models.DayCompleted, models.DayPartial, models.DayMissed, models.DayFuture} {
		if seen[want] != 1 {
			t.Errorf("status %s returned %d times, want once (all: %v)", want, seen[want], seen)
		}
	}
	if got := tr.Document().Logs[key].Status; got != models.DayFuture {
		t.Errorf("final status = %s, want future", got)
	}
}
