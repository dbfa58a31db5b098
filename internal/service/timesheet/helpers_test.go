package timesheet

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

func at(year int, month time.Month, day, hour, minute int) civil.DateTime {
	return civil.DateTime{
		Date: civil.Date{Year: year, Month: month, Day: day},
		Time: civil.Time{Hour: hour, Minute: minute},
	}
}

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func ptr[T any](v T) *T {
	return &v
}

func punch(id string, kind attendance.Kind, ts civil.DateTime) attendance.Event {
	return attendance.Event{
		ID:         id,
		EmployeeID: "emp-1",
		Kind:       kind,
		RecordedAt: ts,
	}
}
