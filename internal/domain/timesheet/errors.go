package timesheet

import "errors"

var (
	ErrInvalidPeriod = errors.New("month must be in YYYY-MM format")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidLocale = errors.New("locale must be one of: es, en")
	ErrNoEmployees   = errors.New("no active employees to report")
)
