package labels

import "github.com/julianstephens/boardprep/internal/models"

type statusKey struct {
	status  models.ChapterStatus
	marathi bool
}

var chapterLabels = map[statusKey]string{
	{models.ChapterCompleted, true}:   "पूर्ण",
	{models.ChapterInProgress, true}:  "सुरू",
	{models.ChapterNotStarted, true}:  "बाकी",
	{models.ChapterCompleted, false}:  "Done",
	{models.ChapterInProgress, false}: "Live",
	{models.ChapterNotStarted, false}: "Wait",
}

// Chapter returns the short checklist label for a chapter status, written in
// the subject's medium. Only Marathi has its own wording.
func Chapter(status models.ChapterStatus, medium models.Medium) string {
	if l, ok := chapterLabels[statusKey{status, medium == models.MediumMarathi}]; ok {
		return l
	}
	return string(status)
}

var dayGlyphs = map[models.DayStatus]string{
	models.DayCompleted: "●",
	models.DayPartial:   "◐",
	models.DayMissed:    "✕",
	models.DayFuture:    "·",
}

// DayGlyph returns the calendar cell marker for a day status. Days without a
// log entry render as future.
func DayGlyph(status models.DayStatus) string {
	if g, ok := dayGlyphs[status]; ok {
		return g
	}
	return dayGlyphs[models.DayFuture]
}

// LegendEntry is one item of the calendar legend
type LegendEntry struct {
	Status models.DayStatus
	Glyph  string
	Text   string
}

// Legend lists the calendar markers in display order
func Legend() []LegendEntry {
	return []LegendEntry{
		{models.DayCompleted, dayGlyphs[models.DayCompleted], "Completed"},
		{models.DayPartial, dayGlyphs[models.DayPartial], "Partial"},
		{models.DayMissed, dayGlyphs[models.DayMissed], "Missed"},
		{models.DayFuture, dayGlyphs[models.DayFuture], "Planned"},
	}
}

// Phase returns the short badge text for a phase
func Phase(p models.Phase) string {
	if p == models.PhasePaperSolving {
		return "Solving Mode"
	}
	return "Syllabus Mode"
}
