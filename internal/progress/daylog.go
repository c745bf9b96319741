package progress

import (
	"fmt"
	"time"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
)

// dayTransitions is the calendar cycle. An absent entry behaves like Future.
var dayTransitions = map[models.DayStatus]models.DayStatus{
	models.DayFuture:    models.DayCompleted,
	models.DayCompleted: models.DayPartial,
	models.DayPartial:   models.DayMissed,
	models.DayMissed:    models.DayFuture,
}

// NextDayStatus returns the status following current. Absent entries and
// unknown values restart the cycle at Completed.
func NextDayStatus(current models.DayStatus, present bool) models.DayStatus {
	if !present {
		return models.DayCompleted
	}
	if next, ok := dayTransitions[current]; ok {
		return next
	}
	return models.DayCompleted
}

// DateKey formats t as a YYYY-MM-DD log key in t's own location
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey validates a YYYY-MM-DD key and returns the date at local midnight
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}

// DayStatusFor returns the effective status of a date and whether an entry exists
func DayStatusFor(d models.UserData, key string) (models.DayStatus, bool) {
	entry, ok := d.Logs[key]
	if !ok {
		return models.DayFuture, false
	}
	return entry.Status, true
}

// LogCounts tallies explicit log entries by status
func LogCounts(d models.UserData) map[models.DayStatus]int {
	counts := make(map[models.DayStatus]int)
	for _, entry := range d.Logs {
		counts[entry.Status]++
	}
	return counts
}
