package timesheet

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
)

// PartitionWeeks groups consecutive days into week blocks. A block starts at
// the first row, on the first day of a month, and whenever the ISO week
// changes. Blocks are numbered from 1 per call and the last block closes on
// the last row.
func PartitionWeeks(days []timesheet.DayRecord) []timesheet.WeekRange {
	if len(days) == 0 {
		return nil
	}

	var weeks []timesheet.WeekRange
	var lastYear, lastWeek int
	for i, d := range days {
		year, week := d.Date.In(time.UTC).ISOWeek()
		if i == 0 || d.Date.Day == 1 || year != lastYear || week != lastWeek {
			if len(weeks) > 0 {
				weeks[len(weeks)-1].EndRow = i - 1
			}
			weeks = append(weeks, timesheet.WeekRange{
				Number:   len(weeks) + 1,
				StartRow: i,
			})
		}
		lastYear, lastWeek = year, week
	}
	weeks[len(weeks)-1].EndRow = len(days) - 1

	return weeks
}
