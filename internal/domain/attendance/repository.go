package attendance

import (
	"context"

	"cloud.google.com/go/civil"
)

// AttendanceRepository defines data access methods for punch events.
type AttendanceRepository interface {
	// Create inserts a new event and returns it with timestamps filled in
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves a single event
	GetByID(ctx context.Context, id string) (Event, error)

	// Update rewrites recorded_at and observation of an existing event
	Update(ctx context.Context, event Event) error

	// ListByRange returns every event whose civil date falls in [from, to],
	// ordered by employee, recorded_at and id. A nil employeeID means all employees.
	ListByRange(ctx context.Context, from, to civil.Date, employeeID *string) ([]Event, error)

	// List retrieves events with filters and pagination (admin view)
	List(ctx context.Context, filter AttendanceFilter) ([]Event, int64, error)

	// DeleteRange removes every event whose civil date falls in [from, to]
	DeleteRange(ctx context.Context, from, to civil.Date) (int64, error)

	// DeleteBefore removes every event recorded before the given date
	DeleteBefore(ctx context.Context, before civil.Date) (int64, error)
}

// Transactor runs fn inside a database transaction carried by ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
