package timesheet

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a strict "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	if !validator.IsValidMonth(s) {
		return Period{}, fmt.Errorf("%w: got %q", ErrInvalidPeriod, s)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: got %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// NewPeriod builds a Period from numeric parts.
func NewPeriod(year int, month time.Month) (Period, error) {
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.Year < 1 || p.Year > 9999 || p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("%w: year %d month %d", ErrInvalidPeriod, p.Year, int(p.Month))
	}
	return nil
}

func (p Period) First() civil.Date {
	return civil.Date{Year: p.Year, Month: p.Month, Day: 1}
}

func (p Period) Last() civil.Date {
	return civil.Date{Year: p.Year, Month: p.Month, Day: p.DaysIn()}
}

// DaysIn returns the number of calendar days in the month, leap years included.
func (p Period) DaysIn() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p Period) Contains(d civil.Date) bool {
	return d.Year == p.Year && d.Month == p.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
