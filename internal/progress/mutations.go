package progress

import (
	"time"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
)

// Intent is a single state transition. Apply never modifies d; it returns the
// next document and whether anything changed. Unchanged subjects and chapters
// are shared between the two documents, so neither may be mutated in place.
type Intent interface {
	Name() string
	Apply(d models.UserData, now time.Time) (models.UserData, bool)
}

// NewDocument builds the first-run document around the given seed subjects
func NewDocument(now time.Time, subjects []models.Subject) models.UserData {
	seeded := make([]models.Subject, len(subjects))
	for i, s := range subjects {
		seeded[i] = s.Clone()
		seeded[i].IsWeak = false
		for j := range seeded[i].Chapters {
			seeded[i].Chapters[j].Status = models.ChapterNotStarted
		}
	}
	return models.UserData{
		StartDate:  now,
		IsStarted:  false,
		Subjects:   seeded,
		TargetDays: constants.TotalDays,
		Logs:       map[string]models.DayLog{},
	}
}

// StartJourney flips isStarted and stamps journeyStartedAt exactly once
type StartJourney struct{}

func (StartJourney) Name() string { return "start-journey" }

func (StartJourney) Apply(d models.UserData, now time.Time) (models.UserData, bool) {
	if d.IsStarted {
		return d, false
	}
	started := now
	next := d
	next.IsStarted = true
	next.JourneyStartedAt = &started
	return next, true
}

// SetChapterStatus replaces the status of one chapter
type SetChapterStatus struct {
	SubjectID string
	ChapterID string
	Status    models.ChapterStatus
}

func (SetChapterStatus) Name() string { return "set-chapter-status" }

func (i SetChapterStatus) Apply(d models.UserData, _ time.Time) (models.UserData, bool) {
	si := d.FindSubject(i.SubjectID)
	if si < 0 {
		return d, false
	}
	ci := d.Subjects[si].FindChapter(i.ChapterID)
	if ci < 0 {
		return d, false
	}
	if d.Subjects[si].Chapters[ci].Status == i.Status {
		return d, false
	}

	subject := d.Subjects[si].Clone()
	subject.Chapters[ci].Status = i.Status

	next := d
	next.Subjects = replaceSubject(d.Subjects, si, subject)
	return next, true
}

// ToggleWeakSubject flips the weak flag on one subject
type ToggleWeakSubject struct {
	SubjectID string
}

func (ToggleWeakSubject) Name() string { return "toggle-weak-subject" }

func (i ToggleWeakSubject) Apply(d models.UserData, _ time.Time) (models.UserData, bool) {
	si := d.FindSubject(i.SubjectID)
	if si < 0 {
		return d, false
	}

	subject := d.Subjects[si]
	subject.IsWeak = !subject.IsWeak

	next := d
	next.Subjects = replaceSubject(d.Subjects, si, subject)
	return next, true
}

// CycleDayLogStatus advances the log entry for Date one step through the
// calendar cycle, creating it if needed.
type CycleDayLogStatus struct {
	Date string
}

func (CycleDayLogStatus) Name() string { return "cycle-day-log" }

func (i CycleDayLogStatus) Apply(d models.UserData, _ time.Time) (models.UserData, bool) {
	current, present := d.Logs[i.Date]

	logs := make(map[string]models.DayLog, len(d.Logs)+1)
	for k, v := range d.Logs {
		logs[k] = v
	}
	entry := models.DayLog{
		Date:   i.Date,
		Status: NextDayStatus(current.Status, present),
		Notes:  current.Notes,
	}
	logs[i.Date] = entry

	next := d
	next.Logs = logs
	return next, true
}

// ResetProgress discards everything and returns a first-run document. The
// confirmation prompt belongs to the caller.
type ResetProgress struct {
	Subjects []models.Subject
}

func (ResetProgress) Name() string { return "reset-progress" }

func (i ResetProgress) Apply(_ models.UserData, now time.Time) (models.UserData, bool) {
	return NewDocument(now, i.Subjects), true
}

func replaceSubject(subjects []models.Subject, idx int, s models.Subject) []models.Subject {
	out := make([]models.Subject, len(subjects))
	copy(out, subjects)
	out[idx] = s
	return out
}
