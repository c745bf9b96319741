package progress

import (
	"time"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
)

const day = 24 * time.Hour

// SubjectStats summarises chapter completion for one subject
type SubjectStats struct {
	ID         string
	Name       string
	Medium     models.Medium
	IsWeak     bool
	Completed  int
	InProgress int
	Total      int
	Percent    int
}

// Snapshot holds every value derived from a document at a point in time
type Snapshot struct {
	DaysPassed    int
	DaysRemaining int
	Phase         models.Phase
	Subjects      []SubjectStats
	Completed     int
	Total         int
	Percent       int
	WeakSubjects  []string
}

// DaysPassed returns the number of whole 24h periods since the journey
// started. It is 0 before the journey starts and never negative.
func DaysPassed(d models.UserData, now time.Time) int {
	if !d.IsStarted || d.JourneyStartedAt == nil {
		return 0
	}
	elapsed := now.Sub(*d.JourneyStartedAt)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / day)
}

// DaysRemaining returns targetDays minus DaysPassed, floored at 0
func DaysRemaining(d models.UserData, now time.Time) int {
	remaining := d.TargetDays - DaysPassed(d, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PhaseFor maps a remaining-days count to a preparation phase
func PhaseFor(daysRemaining int) models.Phase {
	if daysRemaining <= constants.PaperSolvingDays {
		return models.PhasePaperSolving
	}
	return models.PhaseSyllabus
}

// CurrentPhase is PhaseFor(DaysRemaining(d, now))
func CurrentPhase(d models.UserData, now time.Time) models.Phase {
	return PhaseFor(DaysRemaining(d, now))
}

// Percent computes round(100*part/total) with halves rounded up. A zero
// total yields 0.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// ForSubject computes completion statistics for a single subject
func ForSubject(s models.Subject) SubjectStats {
	stats := SubjectStats{
		ID:     s.ID,
		Name:   s.Name,
		Medium: s.Medium,
		IsWeak: s.IsWeak,
		Total:  len(s.Chapters),
	}
	for _, ch := range s.Chapters {
		switch ch.Status {
		case models.ChapterCompleted:
			stats.Completed++
		case models.ChapterInProgress:
			stats.InProgress++
		}
	}
	stats.Percent = Percent(stats.Completed, stats.Total)
	return stats
}

// Overall returns completed and total chapter counts across all subjects and
// the resulting percentage.
func Overall(d models.UserData) (completed, total, percent int) {
	for _, s := range d.Subjects {
		stats := ForSubject(s)
		completed += stats.Completed
		total += stats.Total
	}
	return completed, total, Percent(completed, total)
}

// Derive computes a full Snapshot of d at now
func Derive(d models.UserData, now time.Time) Snapshot {
	snap := Snapshot{
		DaysPassed:    DaysPassed(d, now),
		DaysRemaining: DaysRemaining(d, now),
		Subjects:      make([]SubjectStats, 0, len(d.Subjects)),
		WeakSubjects:  d.WeakSubjects(),
	}
	snap.Phase = PhaseFor(snap.DaysRemaining)
	for _, s := range d.Subjects {
		snap.Subjects = append(snap.Subjects, ForSubject(s))
	}
	snap.Completed, snap.Total, snap.Percent = Overall(d)
	return snap
}
