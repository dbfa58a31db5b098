package timesheet

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type ReportRequest struct {
	Month      string  `json:"month"`
	EmployeeID *string `json:"user_id,omitempty"`

	period Period
}

// Period is only meaningful after a successful Validate.
func (r *ReportRequest) Period() Period {
	return r.period
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	p, err := ParsePeriod(r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	r.period = p

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		r.EmployeeID = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Workbook is a rendered export ready to be streamed.
type Workbook struct {
	Filename    string
	ContentType string
	Content     []byte
}
