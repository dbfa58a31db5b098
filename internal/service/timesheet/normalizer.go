package timesheet

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
)

// GroupByEmployee splits a mixed event list by employee, keeping input order
// inside each group.
func GroupByEmployee(events []attendance.Event) map[string][]attendance.Event {
	grouped := make(map[string][]attendance.Event)
	for _, ev := range events {
		grouped[ev.EmployeeID] = append(grouped[ev.EmployeeID], ev)
	}
	return grouped
}

// Normalize reduces one employee's events to a single authoritative entry
// and exit per calendar date of RecordedAt: the earliest entry and the latest
// exit. On equal timestamps the event seen first wins. Dates without events
// are absent from the result. Input events are copied, never aliased.
func Normalize(events []attendance.Event) map[civil.Date]timesheet.DayRecord {
	days := make(map[civil.Date]timesheet.DayRecord)

	for i := range events {
		ev := events[i]
		date := ev.RecordedAt.Date

		day, ok := days[date]
		if !ok {
			day = timesheet.DayRecord{Date: date, Weekday: Weekday(date)}
		}

		switch ev.Kind {
		case attendance.KindEntry:
			if day.Entry == nil || ev.RecordedAt.Before(day.Entry.RecordedAt) {
				day.Entry = &ev
			}
		case attendance.KindExit:
			if day.Exit == nil || ev.RecordedAt.After(day.Exit.RecordedAt) {
				day.Exit = &ev
			}
		default:
			continue
		}

		days[date] = day
	}

	return days
}

// Weekday returns the day of the week of a civil date.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
