package attendance

import (
	"context"
)

// AttendanceService defines business logic for punch events
type AttendanceService interface {
	// RecordPunch stores an entry or exit stamped with the organization clock
	RecordPunch(ctx context.Context, req RecordPunchRequest) (EventResponse, error)

	// ListMine returns the caller's events for one month
	ListMine(ctx context.Context, filter MyAttendanceFilter) ([]EventResponse, error)

	// List retrieves events with filters and pagination (admin)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateObservation sets or clears the observation of one event (admin)
	UpdateObservation(ctx context.Context, req UpdateObservationRequest) (EventResponse, error)

	// CorrectDay rewrites the entry/exit of one employee day, synthesizing a missing exit (admin)
	CorrectDay(ctx context.Context, req CorrectDayRequest) (DayResponse, error)

	// DeleteRange purges events between two dates inclusive (admin)
	DeleteRange(ctx context.Context, req DeleteRangeRequest) (DeleteRangeResponse, error)
}
