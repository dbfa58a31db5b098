package timesheet

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOvertime(t *testing.T) {
	tests := []struct {
		name    string
		entry   *civil.DateTime
		exit    *civil.DateTime
		weekday time.Weekday
		want    timesheet.OvertimeResult
	}{
		{
			name:    "missing entry",
			exit:    ptr(at(2024, 3, 4, 17, 0)),
			weekday: time.Monday,
		},
		{
			name:    "missing exit",
			entry:   ptr(at(2024, 3, 4, 8, 0)),
			weekday: time.Monday,
		},
		{
			name:    "zero duration",
			entry:   ptr(at(2024, 3, 4, 8, 0)),
			exit:    ptr(at(2024, 3, 4, 8, 0)),
			weekday: time.Monday,
		},
		{
			name:    "exit before entry",
			entry:   ptr(at(2024, 3, 4, 17, 0)),
			exit:    ptr(at(2024, 3, 4, 8, 0)),
			weekday: time.Monday,
		},
		{
			name:    "zero duration on saturday",
			entry:   ptr(at(2024, 3, 9, 8, 0)),
			exit:    ptr(at(2024, 3, 9, 8, 0)),
			weekday: time.Saturday,
		},
		{
			name:    "day shift without premium",
			entry:   ptr(at(2024, 3, 4, 8, 0)),
			exit:    ptr(at(2024, 3, 4, 17, 0)),
			weekday: time.Monday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 540, RegularMinutes: 540},
		},
		{
			name:    "evening overlap",
			entry:   ptr(at(2024, 3, 4, 8, 0)),
			exit:    ptr(at(2024, 3, 4, 20, 30)),
			weekday: time.Monday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 750, RegularMinutes: 600, Premium50Minutes: 150},
		},
		{
			name:    "saturday pays everything at 100 without cap",
			entry:   ptr(at(2024, 3, 9, 8, 0)),
			exit:    ptr(at(2024, 3, 9, 20, 0)),
			weekday: time.Saturday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 720, Premium100Minutes: 720},
		},
		{
			name:    "midnight crossing",
			entry:   ptr(at(2024, 3, 8, 22, 0)),
			exit:    ptr(at(2024, 3, 9, 3, 0)),
			weekday: time.Friday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 300, Premium50Minutes: 120, Premium100Minutes: 180},
		},
		{
			name:    "premium 50 capped after summing across days",
			entry:   ptr(at(2024, 3, 5, 18, 0)),
			exit:    ptr(at(2024, 3, 6, 22, 0)),
			weekday: time.Tuesday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 1680, RegularMinutes: 720, Premium50Minutes: 360, Premium100Minutes: 360},
		},
		{
			name:    "sunday uses the general rule",
			entry:   ptr(at(2024, 3, 10, 5, 0)),
			exit:    ptr(at(2024, 3, 10, 19, 0)),
			weekday: time.Sunday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 840, RegularMinutes: 720, Premium50Minutes: 60, Premium100Minutes: 60},
		},
		{
			name:    "shift longer than a day",
			entry:   ptr(at(2024, 3, 4, 0, 0)),
			exit:    ptr(at(2024, 3, 6, 0, 0)),
			weekday: time.Monday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 2880, RegularMinutes: 1440, Premium50Minutes: 360, Premium100Minutes: 360},
		},
		{
			name:    "seconds are truncated",
			entry:   ptr(civil.DateTime{Date: date(2024, 3, 4), Time: civil.Time{Hour: 17, Minute: 59, Second: 30}}),
			exit:    ptr(civil.DateTime{Date: date(2024, 3, 4), Time: civil.Time{Hour: 18, Minute: 1, Second: 10}}),
			weekday: time.Monday,
			want:    timesheet.OvertimeResult{WorkedMinutes: 1, Premium50Minutes: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOvertime(tt.entry, tt.exit, tt.weekday)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateOvertime_Invariants(t *testing.T) {
	start := at(2024, 3, 4, 0, 0)
	for offset := 0; offset < 48*60; offset += 37 {
		for length := 1; length < 30*60; length += 53 {
			entry := addMinutes(start, offset)
			exit := addMinutes(entry, length)
			for wd := time.Sunday; wd <= time.Saturday; wd++ {
				got := CalculateOvertime(&entry, &exit, wd)

				assert.Equal(t, length, got.WorkedMinutes)
				assert.GreaterOrEqual(t, got.RegularMinutes, 0)
				assert.GreaterOrEqual(t, got.Premium50Minutes, 0)
				assert.GreaterOrEqual(t, got.Premium100Minutes, 0)
				if wd == time.Saturday {
					assert.Equal(t, length, got.Premium100Minutes)
					assert.Zero(t, got.Premium50Minutes)
				} else {
					assert.LessOrEqual(t, got.Premium50Minutes, PremiumCapMinutes)
					assert.LessOrEqual(t, got.Premium100Minutes, PremiumCapMinutes)
				}
			}
		}
	}
}

func addMinutes(dt civil.DateTime, m int) civil.DateTime {
	return civil.DateTimeOf(dt.In(time.UTC).Add(time.Duration(m) * time.Minute))
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{
		-5:   "00:00",
		0:    "00:00",
		7:    "00:07",
		59:   "00:59",
		61:   "01:01",
		600:  "10:00",
		1500: "25:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMinutes(in), in)
	}
}
