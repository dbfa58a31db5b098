package timesheet

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
)

const (
	// PremiumCapMinutes bounds each premium bucket on non-Saturday days.
	PremiumCapMinutes = 360

	premium50From  = 18 * time.Hour
	premium100Till = 6 * time.Hour
)

// CalculateOvertime splits the interval between entry and exit into
// regular, 50% and 100% premium minutes. weekday is the weekday of the row
// the interval belongs to.
//
// Saturday pays every worked minute at 100% with no cap. Any other day walks
// the interval one calendar day at a time, counting overlap with
// [18:00, 24:00) as 50% and [00:00, 06:00) as 100%, then caps each bucket.
// Missing punches and exits not strictly after the entry yield zero.
func CalculateOvertime(entry, exit *civil.DateTime, weekday time.Weekday) timesheet.OvertimeResult {
	if entry == nil || exit == nil || !exit.After(*entry) {
		return timesheet.OvertimeResult{}
	}

	start := entry.In(time.UTC)
	end := exit.In(time.UTC)
	worked := wholeMinutes(end.Sub(start))

	if weekday == time.Saturday {
		return timesheet.OvertimeResult{
			WorkedMinutes:     worked,
			Premium100Minutes: worked,
		}
	}

	var p50, p100 int
	for cur := start; cur.Before(end); {
		dayStart := time.Date(cur.Year(), cur.Month(), cur.Day(), 0, 0, 0, 0, time.UTC)
		nextDay := dayStart.AddDate(0, 0, 1)
		segEnd := minTime(end, nextDay)

		p50 += overlapMinutes(cur, segEnd, dayStart.Add(premium50From), nextDay)
		p100 += overlapMinutes(cur, segEnd, dayStart, dayStart.Add(premium100Till))

		cur = nextDay
	}

	return timesheet.OvertimeResult{
		WorkedMinutes:     worked,
		RegularMinutes:    max(worked-p50-p100, 0),
		Premium50Minutes:  min(p50, PremiumCapMinutes),
		Premium100Minutes: min(p100, PremiumCapMinutes),
	}
}

// overlapMinutes returns the whole minutes shared by [s1, e1) and [s2, e2).
func overlapMinutes(s1, e1, s2, e2 time.Time) int {
	start := maxTime(s1, s2)
	end := minTime(e1, e2)
	if !start.Before(end) {
		return 0
	}
	return wholeMinutes(end.Sub(start))
}

func wholeMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// FormatMinutes renders minutes as zero-padded HH:MM; non-positive values
// render as "00:00". Hours may exceed 24.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
