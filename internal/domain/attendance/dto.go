package attendance

import (
	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
	maxObservation   = 1000
)

// ========================================
// PUNCH DTOs
// ========================================

type RecordPunchRequest struct {
	EmployeeID  string   `json:"-"`
	Type        string   `json:"type"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	PhotoPath   *string  `json:"photo_path,omitempty"`
	Observation *string  `json:"observation,omitempty"`

	kind Kind
}

// Kind is only meaningful after a successful Validate.
func (r *RecordPunchRequest) Kind() Kind {
	return r.kind
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	kind, err := ParseKind(r.Type)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: entry, exit",
		})
	}
	r.kind = kind

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Observation != nil && len(*r.Observation) > maxObservation {
		errs = append(errs, validator.ValidationError{
			Field:   "observation",
			Message: "observation must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"user_id"`
	EmployeeName *string  `json:"user_name,omitempty"`
	Type         Kind     `json:"type"`
	RecordedAt   string   `json:"recorded_at"`
	Date         string   `json:"date"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PhotoPath    *string  `json:"photo_path,omitempty"`
	Observation  *string  `json:"observation,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64           `json:"total_count"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
	TotalPages  int             `json:"total_pages"`
	Showing     string          `json:"showing"`
	Attendances []EventResponse `json:"attendances"`
}

// ========================================
// FILTERS
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"user_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Month      *string `json:"month,omitempty"`      // YYYY-MM

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	var start, end civil.Date
	var hasStart, hasEnd bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if hasStart && hasEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if f.Month != nil && *f.Month != "" && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyAttendanceFilter struct {
	EmployeeID string `json:"-"`
	Month      string `json:"month"` // YYYY-MM
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// ADMIN CORRECTIONS
// ========================================

type UpdateObservationRequest struct {
	ID          string  `json:"-"`
	Observation *string `json:"observation"`
}

func (r *UpdateObservationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Observation != nil && len(*r.Observation) > maxObservation {
		errs = append(errs, validator.ValidationError{
			Field:   "observation",
			Message: "observation must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CorrectDayRequest rewrites the authoritative entry and exit of one
// employee's day. Times are either "HH:MM[:SS]" on Date or a full local
// date-time, which must fall on Date as well.
type CorrectDayRequest struct {
	EmployeeID  string  `json:"user_id"`
	Date        string  `json:"date"`                 // YYYY-MM-DD
	EntryTime   *string `json:"entry_time,omitempty"` // HH:MM[:SS] or YYYY-MM-DD HH:MM:SS
	ExitTime    *string `json:"exit_time,omitempty"`  // HH:MM[:SS] or YYYY-MM-DD HH:MM:SS
	Observation *string `json:"observation,omitempty"`

	day   civil.Date
	entry *civil.DateTime
	exit  *civil.DateTime
}

func (r *CorrectDayRequest) Day() civil.Date        { return r.day }
func (r *CorrectDayRequest) Entry() *civil.DateTime { return r.entry }
func (r *CorrectDayRequest) Exit() *civil.DateTime  { return r.exit }

func (r *CorrectDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	day, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	r.day = day

	r.entry = nil
	if r.EntryTime != nil && *r.EntryTime != "" {
		dt, err := parseCorrectionTime(day, ok, "entry_time", *r.EntryTime)
		if err != nil {
			errs = append(errs, *err)
		} else {
			r.entry = &dt
		}
	}

	r.exit = nil
	if r.ExitTime != nil && *r.ExitTime != "" {
		dt, err := parseCorrectionTime(day, ok, "exit_time", *r.ExitTime)
		if err != nil {
			errs = append(errs, *err)
		} else {
			r.exit = &dt
		}
	}

	if r.Observation != nil && len(*r.Observation) > maxObservation {
		errs = append(errs, validator.ValidationError{
			Field:   "observation",
			Message: "observation must not exceed 1000 characters",
		})
	}

	if len(errs) == 0 && r.entry == nil && r.exit == nil && r.Observation == nil {
		return ErrNothingToCorrect
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// parseCorrectionTime places a correction time on day. Punches are grouped by
// the date they were recorded on, so a full date-time must fall on day too.
func parseCorrectionTime(day civil.Date, dayValid bool, field, s string) (civil.DateTime, *validator.ValidationError) {
	if t, ok := validator.ParseClockTime(s); ok {
		return civil.DateTime{Date: day, Time: t}, nil
	}
	dt, ok := validator.ParseLocalDateTime(s)
	if !ok {
		return civil.DateTime{}, &validator.ValidationError{
			Field:   field,
			Message: field + " must be HH:MM, HH:MM:SS or YYYY-MM-DD HH:MM:SS",
		}
	}
	if dayValid && dt.Date != day {
		return civil.DateTime{}, &validator.ValidationError{
			Field:   field,
			Message: field + " must fall on date " + day.String(),
		}
	}
	return dt, nil
}

type DayResponse struct {
	EmployeeID        string         `json:"user_id"`
	Date              string         `json:"date"`
	Entry             *EventResponse `json:"entry,omitempty"`
	Exit              *EventResponse `json:"exit,omitempty"`
	WorkedMinutes     int            `json:"worked_minutes"`
	Premium50Minutes  int            `json:"premium_50_minutes"`
	Premium100Minutes int            `json:"premium_100_minutes"`
	Anomaly           bool           `json:"anomaly"`
}

type DeleteRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start civil.Date
	end   civil.Date
}

func (r *DeleteRangeRequest) Start() civil.Date { return r.start }
func (r *DeleteRangeRequest) End() civil.Date   { return r.end }

func (r *DeleteRangeRequest) Validate() error {
	var errs validator.ValidationErrors
	var okStart, okEnd bool

	if r.start, okStart = validator.IsValidDate(r.StartDate); !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if r.end, okEnd = validator.IsValidDate(r.EndDate); !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && r.start.After(r.end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeleteRangeResponse struct {
	DeletedRecords int64 `json:"deleted_records"`
}
