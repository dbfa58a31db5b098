package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidKind        = errors.New("type must be one of: entry, exit")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEntryNotFound      = errors.New("no entry punch found for that day")
	ErrNothingToCorrect   = errors.New("correction must change entry time, exit time or observation")
	ErrInvalidDateRange   = errors.New("start_date cannot be after end_date")
)
