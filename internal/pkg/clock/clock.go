package clock

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock turns instants into the organization's wall-clock time. It is the
// only place where a time zone is applied; everything downstream works on
// civil values.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Clock {
	return NewWithNow(loc, time.Now)
}

// NewWithNow is used by tests to freeze time.
func NewWithNow(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Now() civil.DateTime {
	return c.Local(c.now())
}

func (c *Clock) Today() civil.Date {
	return c.Now().Date
}

// Local converts an instant to organization-local civil time.
func (c *Clock) Local(t time.Time) civil.DateTime {
	return civil.DateTimeOf(t.In(c.loc))
}

func (c *Clock) Location() *time.Location {
	return c.loc
}
