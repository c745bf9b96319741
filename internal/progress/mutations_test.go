package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/boardprep/internal/models"
)

func sampleSubjects() []models.Subject {
	return []models.Subject{
		{ID: "math", Name: "Mathematics", Medium: models.MediumEnglish, Chapters: chapters(6, 0)},
		{ID: "hist", Name: "इतिहास", Medium: models.MediumMarathi, Chapters: chapters(3, 0)},
	}
}

func TestNewDocument(t *testing.T) {
	subjects := sampleSubjects()
	subjects[0].IsWeak = true
	subjects[0].Chapters[0].Status = models.ChapterCompleted

	doc := NewDocument(base, subjects)
	if doc.IsStarted || doc.JourneyStartedAt != nil {
		t.Error("new document should not be started")
	}
	if !doc.StartDate.Equal(base) {
		t.Errorf("StartDate = %v, want %v", doc.StartDate, base)
	}
	if doc.TargetDays != 340 {
		t.Errorf("TargetDays = %d, want 340", doc.TargetDays)
	}
	if doc.Logs == nil || len(doc.Logs) != 0 {
		t.Errorf("Logs = %v, want empty map", doc.Logs)
	}
	if doc.Subjects[0].IsWeak || doc.Subjects[0].Chapters[0].Status != models.ChapterNotStarted {
		t.Error("new document should reset seed flags and statuses")
	}
	if subjects[0].Chapters[0].Status != models.ChapterCompleted {
		t.Error("NewDocument modified its input")
	}
}

func TestStartJourneyIdempotent(t *testing.T) {
	doc := NewDocument(base, sampleSubjects())
	first := base.Add(2 * time.Hour)

	doc, changed := StartJourney{}.Apply(doc, first)
	if !changed || !doc.IsStarted {
		t.Fatal("first StartJourney should start the journey")
	}
	if !doc.JourneyStartedAt.Equal(first) {
		t.Fatalf("JourneyStartedAt = %v, want %v", doc.JourneyStartedAt, first)
	}

	again, changed := StartJourney{}.Apply(doc, first.Add(48*time.Hour))
	if changed {
		t.Error("second StartJourney reported a change")
	}
	if !again.JourneyStartedAt.Equal(first) {
		t.Errorf("JourneyStartedAt moved to %v", again.JourneyStartedAt)
	}
}

func TestStartJourneyDoesNotAliasInput(t *testing.T) {
	doc := NewDocument(base, sampleSubjects())
	next, _ := StartJourney{}.Apply(doc, base)
	if doc.IsStarted || doc.JourneyStartedAt != nil {
		t.Error("StartJourney modified the previous document")
	}
	if !next.IsStarted {
		t.Error("next document not started")
	}
}

func TestSetChapterStatusRoundTrip(t *testing.T) {
	doc := NewDocument(base, sampleSubjects())

	doc, changed := SetChapterStatus{SubjectID: "math", ChapterID: "c", Status: models.ChapterCompleted}.Apply(doc, base)
	if !changed {
		t.Fatal("expected change")
	}
	if got := doc.Subjects[0].Chapters[2].Status; got != models.ChapterCompleted {
		t.Errorf("status = %q, want Completed", got)
	}
	for i, ch := range doc.Subjects[0].Chapters {
		if i != 2 && ch.Status != models.ChapterNotStarted {
			t.Errorf("chapter %s changed to %q", ch.ID, ch.Status)
		}
	}
	for _, ch := range doc.Subjects[1].Chapters {
		if ch.Status != models.ChapterNotStarted {
			t.Errorf("other subject chapter %s changed", ch.ID)
		}
	}

	doc, changed = SetChapterStatus{SubjectID: "math", ChapterID: "c", Status: models.ChapterNotStarted}.Apply(doc, base)
	if !changed {
		t.Fatal("expected change back")
	}
	if got := doc.Subjects[0].Chapters[2].Status; got != models.ChapterNotStarted {
		t.Errorf("status = %q, want NotStarted", got)
	}
}

func TestSetChapterStatusSharesUntouchedSubjects(t *testing.T) {
	prev := NewDocument(base, sampleSubjects())
	next, _ := SetChapterStatus{SubjectID: "math", ChapterID: "a", Status: models.ChapterInProgress}.Apply(prev, base)

	if prev.Subjects[0].Chapters[0].Status != models.ChapterNotStarted {
		t.Error("previous document was mutated")
	}
	if &next.Subjects[1].Chapters[0] != &prev.Subjects[1].Chapters[0] {
		t.Error("untouched subject should share its chapter slice")
	}
	if &next.Subjects[0].Chapters[0] == &prev.Subjects[0].Chapters[0] {
		t.Error("touched subject must not share its chapter slice")
	}
}

func TestUnknownIdentifiersAreNoOps(t *testing.T) {
	doc := NewDocument(base, sampleSubjects())

	tests := []struct {
		name   string
		intent Intent
	}{
		{"unknown subject", SetChapterStatus{SubjectID: "nope", ChapterID: "a", Status: models.ChapterCompleted}},
		{"unknown chapter", SetChapterStatus{SubjectID: "math", ChapterID: "zz", Status: models.ChapterCompleted}},
		{"same status", SetChapterStatus{SubjectID: "math", ChapterID: "a", Status: models.ChapterNotStarted}},
		{"unknown weak subject", ToggleWeakSubject{SubjectID: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := tt.intent.Apply(doc, base)
			if changed {
				t.Error("expected no change")
			}
			if next.Subjects[0].Chapters[0].Status != models.ChapterNotStarted || next.Subjects[0].IsWeak {
				t.Error("document changed")
			}
		})
	}
}

func TestToggleWeakSubject(t *testing.T) {
	prev := NewDocument(base, sampleSubjects())

	next, changed := ToggleWeakSubject{SubjectID: "hist"}.Apply(prev, base)
	if !changed || !next.Subjects[1].IsWeak {
		t.Fatal("expected hist to become weak")
	}
	if prev.Subjects[1].IsWeak {
		t.Error("previous document was mutated")
	}

	next, _ = ToggleWeakSubject{SubjectID: "hist"}.Apply(next, base)
	if next.Subjects[1].IsWeak {
		t.Error("second toggle should clear the flag")
	}
}

func TestCycleDayLogClosure(t *testing.T) {
	doc := NewDocument(base, sampleSubjects())
	key := "2025-06-03"
	want := []models.DayStatus{
		models.DayCompleted,
		models.DayPartial,
		models.DayMissed,
		models.DayFuture,
		models.DayCompleted,
	}

	for i, w := range want {
		prev := doc
		var changed bool
		doc, changed = CycleDayLogStatus{Date: key}.Apply(doc, base)
		if !changed {
			t.Fatalf("step %d: expected change", i+1)
		}
		entry, ok := doc.Logs[key]
		if !ok {
			t.Fatalf("step %d: entry missing", i+1)
		}
		if entry.Status != w {
			t.Errorf("step %d: status = %q, want %q", i+1, entry.Status, w)
		}
		if entry.Date != key {
			t.Errorf("step %d: date = %q, want %q", i+1, entry.Date, key)
		}
		if i == 0 {
			if _, ok := prev.Logs[key]; ok {
				t.Error("previous document gained an entry")
			}
		}
	}
	if len(doc.Logs) != 1 {
		t.Errorf("expected one log entry, got %d", len(doc.Logs))
	}
}

func TestCycleDayLogKeepsNotes(t *testing.T) {
	doc := NewDocument(base, sampleSubjects())
	doc.Logs["2025-06-03"] = models.DayLog{Date: "2025-06-03", Status: models.DayCompleted, Notes: "mock test"}

	doc, _ = CycleDayLogStatus{Date: "2025-06-03"}.Apply(doc, base)
	if got := doc.Logs["2025-06-03"]; got.Notes != "mock test" || got.Status != models.DayPartial {
		t.Errorf("entry = %+v", got)
	}
}

func TestResetProgress(t *testing.T) {
	seedSubjects := sampleSubjects()
	doc := NewDocument(base, seedSubjects)

	intents := []Intent{
		StartJourney{},
		SetChapterStatus{SubjectID: "math", ChapterID: "a", Status: models.ChapterCompleted},
		SetChapterStatus{SubjectID: "hist", ChapterID: "b", Status: models.ChapterInProgress},
		ToggleWeakSubject{SubjectID: "math"},
		CycleDayLogStatus{Date: "2025-06-01"},
		CycleDayLogStatus{Date: "2025-06-02"},
		CycleDayLogStatus{Date: "2025-06-02"},
	}
	for _, in := range intents {
		doc, _ = in.Apply(doc, base)
	}
	if len(doc.Logs) != 2 || !doc.IsStarted {
		t.Fatal("setup did not apply")
	}

	later := base.Add(10 * day)
	reset, changed := ResetProgress{Subjects: seedSubjects}.Apply(doc, later)
	if !changed {
		t.Fatal("reset reported no change")
	}
	if reset.IsStarted || reset.JourneyStartedAt != nil {
		t.Error("reset document is still started")
	}
	if len(reset.Logs) != 0 {
		t.Errorf("reset logs = %v", reset.Logs)
	}
	for _, s := range reset.Subjects {
		if s.IsWeak {
			t.Errorf("subject %s still weak", s.ID)
		}
		for _, ch := range s.Chapters {
			if ch.Status != models.ChapterNotStarted {
				t.Errorf("chapter %s/%s = %q", s.ID, ch.ID, ch.Status)
			}
		}
	}
	if !reset.StartDate.Equal(later) {
		t.Errorf("StartDate = %v, want %v", reset.StartDate, later)
	}

	fresh := NewDocument(later, seedSubjects)
	if len(fresh.Subjects) != len(reset.Subjects) || fresh.TargetDays != reset.TargetDays {
		t.Error("reset document differs from a fresh document")
	}
}

func TestIntentNames(t *testing.T) {
	seen := map[string]bool{}
	for _, in := range []Intent{StartJourney{}, SetChapterStatus{}, ToggleWeakSubject{}, CycleDayLogStatus{}, ResetProgress{}} {
		if in.Name() == "" || seen[in.Name()] {
			t.Errorf("intent %T has empty or duplicate name %q", in, in.Name())
		}
		seen[in.Name()] = true
	}
}
