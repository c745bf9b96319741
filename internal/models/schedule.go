package models

import "fmt"

// BlockType describes how a schedule block is spent
type BlockType string

const (
	BlockBusy  BlockType = "busy"
	BlockStudy BlockType = "study"
	BlockRest  BlockType = "rest"
)

// BlockCategory describes who owns a schedule block
type BlockCategory string

const (
	CategoryCoaching BlockCategory = "coaching"
	CategorySchool   BlockCategory = "school"
	CategorySelf     BlockCategory = "self"
	CategoryRest     BlockCategory = "rest"
)

// ScheduleBlock is one entry of the fixed daily timetable. Start and End are
// fractional hours on a 24h clock (9.5 == 09:30).
type ScheduleBlock struct {
	Start    float64       `json:"start" yaml:"start"`
	End      float64       `json:"end" yaml:"end"`
	Task     string        `json:"task" yaml:"task"`
	Type     BlockType     `json:"type" yaml:"type"`
	Category BlockCategory `json:"category" yaml:"category"`
}

// Contains reports whether the fractional hour h falls inside the block
func (b ScheduleBlock) Contains(h float64) bool {
	return h >= b.Start && h < b.End
}

// TimeRange formats the block as "HH:MM - HH:MM"
func (b ScheduleBlock) TimeRange() string {
	return fmt.Sprintf("%s - %s", formatHour(b.Start), formatHour(b.End))
}

func formatHour(h float64) string {
	total := int(h*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// MockPaper is a previous-year question paper available for practice
type MockPaper struct {
	ID        int    `json:"id" yaml:"id"`
	Subject   string `json:"subject" yaml:"subject"`
	Year      string `json:"year" yaml:"year"`
	Completed bool   `json:"completed" yaml:"completed"`
}
