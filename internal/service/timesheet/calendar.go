package timesheet

import (
	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
)

// BuildMonth returns one DayRecord per calendar day of period, ascending.
// Days missing from normalized are synthesized empty; entries outside the
// period are ignored.
func BuildMonth(period timesheet.Period, normalized map[civil.Date]timesheet.DayRecord) ([]timesheet.DayRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	n := period.DaysIn()
	days := make([]timesheet.DayRecord, 0, n)
	for d := period.First(); !d.After(period.Last()); d = d.AddDays(1) {
		day, ok := normalized[d]
		if !ok {
			day = timesheet.DayRecord{Date: d, Weekday: Weekday(d)}
		}
		days = append(days, day)
	}

	return days, nil
}
