package schedule

import (
	"time"

	"github.com/julianstephens/boardprep/internal/models"
)

// LiveKind classifies what the live clock panel shows
type LiveKind int

const (
	LivePaused LiveKind = iota
	LiveWaiting
	LiveBlock
	LiveRest
)

// Live is the current-activity readout next to the clock
type Live struct {
	Kind  LiveKind
	Label string
	Title string
	Block models.ScheduleBlock
}

// FractionalHour returns t's local time of day in hours (09:30 == 9.5)
func FractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// CurrentBlock returns the block containing now, if any
func CurrentBlock(blocks []models.ScheduleBlock, now time.Time) (models.ScheduleBlock, bool) {
	h := FractionalHour(now)
	for _, b := range blocks {
		if b.Contains(h) {
			return b, true
		}
	}
	return models.ScheduleBlock{}, false
}

// LiveStatus describes what the student should be doing at now
func LiveStatus(started bool, blocks []models.ScheduleBlock, now time.Time) Live {
	if !started {
		marchFirst := time.Date(now.Year(), time.March, 1, 0, 0, 0, 0, now.Location())
		if now.Before(marchFirst) {
			return Live{Kind: LivePaused, Label: "Status", Title: "Preparation Paused ⏸️"}
		}
		return Live{Kind: LiveWaiting, Label: "Status", Title: "Waiting for Start 🚀"}
	}
	if b, ok := CurrentBlock(blocks, now); ok {
		icon := "⏰"
		if b.Type == models.BlockStudy {
			icon = "📚"
		}
		return Live{Kind: LiveBlock, Label: "Current Block", Title: b.Task + " " + icon, Block: b}
	}
	return Live{Kind: LiveRest, Label: "Rest Time", Title: "Recharge Your Brain 🔋"}
}

// PlannerSlot is one row of the phase-dependent study plan
type PlannerSlot struct {
	models.ScheduleBlock
	Tip string
}

type slotTasks struct {
	syllabus, solving, tip string
}

// plannerOverrides swaps the self-study tasks by phase, keyed by block start
var plannerOverrides = map[float64]slotTasks{
	9.5: {
		syllabus: "Self Study: Math/Science Concepts",
		solving:  "Paper Solving (Timed)",
		tip:      "Focus on problem-solving during your peak brain hours.",
	},
	17: {
		syllabus: "Self Study: History/Geography",
		solving:  "Paper Analysis",
	},
	18: {
		syllabus: "Coaching Class",
		solving:  "Coaching Class",
	},
	20.5: {
		syllabus: "English Grammar & Writing Skills",
		solving:  "PYQ Flashcard Review",
		tip:      "Practice one letter or summary today. Use 5 new vocabulary words.",
	},
}

// PlannerTasks lays the phase's study tasks over the fixed timetable
func PlannerTasks(blocks []models.ScheduleBlock, phase models.Phase) []PlannerSlot {
	slots := make([]PlannerSlot, 0, len(blocks))
	for _, b := range blocks {
		slot := PlannerSlot{ScheduleBlock: b}
		if o, ok := plannerOverrides[b.Start]; ok {
			slot.Task = o.syllabus
			if phase == models.PhasePaperSolving {
				slot.Task = o.solving
			}
			slot.Tip = o.tip
		}
		slots = append(slots, slot)
	}
	return slots
}

// DayNumber is the 1-based journey day: the start day is day 1 and the count
// stops at targetDays once the countdown has run out.
func DayNumber(targetDays, daysRemaining int) int {
	n := targetDays - daysRemaining + 1
	if n > targetDays {
		return targetDays
	}
	return n
}

// IncompleteChapters counts chapters not yet Completed
func IncompleteChapters(d models.UserData) int {
	n := 0
	for _, s := range d.Subjects {
		for _, ch := range s.Chapters {
			if ch.Status != models.ChapterCompleted {
				n++
			}
		}
	}
	return n
}

// SelfStudyHours sums the study blocks of the timetable
func SelfStudyHours(blocks []models.ScheduleBlock) float64 {
	total := 0.0
	for _, b := range blocks {
		if b.Type == models.BlockStudy {
			total += b.End - b.Start
		}
	}
	return total
}
