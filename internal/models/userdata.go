package models

import "time"

// DayStatus is the attendance marker of one calendar day
type DayStatus string

const (
	DayCompleted DayStatus = "completed"
	DayPartial   DayStatus = "partial"
	DayMissed    DayStatus = "missed"
	DayFuture    DayStatus = "future"
)

func (s DayStatus) IsValid() bool {
	switch s {
	case DayCompleted, DayPartial, DayMissed, DayFuture:
		return true
	}
	return false
}

// DayLog records what happened on a single date
type DayLog struct {
	Date   string    `json:"date"` // YYYY-MM-DD format
	Status DayStatus `json:"status"`
	Notes  string    `json:"notes,omitempty"`
}

// Phase is the preparation mode, derived from the days remaining
type Phase string

const (
	PhaseSyllabus     Phase = "Syllabus Completion"
	PhasePaperSolving Phase = "Paper Solving"
)

// UserData is the persisted root document
type UserData struct {
	StartDate        time.Time         `json:"startDate"`
	JourneyStartedAt *time.Time        `json:"journeyStartedAt,omitempty"`
	IsStarted        bool              `json:"isStarted"`
	Subjects         []Subject         `json:"subjects"`
	TargetDays       int               `json:"targetDays"`
	Logs             map[string]DayLog `json:"logs"`
}

// Clone returns a deep copy of the document
func (d UserData) Clone() UserData {
	out := d
	if d.JourneyStartedAt != nil {
		t := *d.JourneyStartedAt
		out.JourneyStartedAt = &t
	}
	out.Subjects = make([]Subject, len(d.Subjects))
	for i, s := range d.Subjects {
		out.Subjects[i] = s.Clone()
	}
	out.Logs = make(map[string]DayLog, len(d.Logs))
	for k, v := range d.Logs {
		out.Logs[k] = v
	}
	return out
}

// FindSubject returns the index of the subject with the given id, or -1
func (d UserData) FindSubject(id string) int {
	for i, s := range d.Subjects {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// WeakSubjects returns the names of all subjects flagged as weak, in order
func (d UserData) WeakSubjects() []string {
	var names []string
	for _, s := range d.Subjects {
		if s.IsWeak {
			names = append(names, s.Name)
		}
	}
	return names
}
