package calendar

import (
	"time"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
)

// WeekdayHeader labels the grid columns, Sunday first
var WeekdayHeader = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Cell is one day of a month grid. Padding cells before the first of the
// month have a zero Day.
type Cell struct {
	Day     int
	Key     string
	Status  models.DayStatus
	Logged  bool
	IsToday bool
}

// Month is a Sunday-first grid of weeks
type Month struct {
	Year  int
	Month time.Month
	Weeks [][7]Cell
}

// Title renders e.g. "March 2025"
func (m Month) Title() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Build lays out the month containing ref, with statuses taken from d
func Build(d models.UserData, ref, today time.Time) Month {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	daysIn := first.AddDate(0, 1, -1).Day()
	todayKey := progress.DateKey(today)

	m := Month{Year: first.Year(), Month: first.Month()}
	var week [7]Cell
	col := int(first.Weekday())
	for day := 1; day <= daysIn; day++ {
		date := first.AddDate(0, 0, day-1)
		key := progress.DateKey(date)
		status, logged := progress.DayStatusFor(d, key)
		week[col] = Cell{Day: day, Key: key, Status: status, Logged: logged, IsToday: key == todayKey}
		col++
		if col == 7 {
			m.Weeks = append(m.Weeks, week)
			week = [7]Cell{}
			col = 0
		}
	}
	if col > 0 {
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

// Shift moves ref by n months, pinned to the first of the month
func Shift(ref time.Time, n int) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(0, n, 0)
}

// ParseMonth parses YYYY-MM in loc
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.MonthFormat, s, loc)
}
