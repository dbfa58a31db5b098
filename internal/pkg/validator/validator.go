package validator

import (
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (civil.Date, bool) {
	if len(dateStr) != len("2006-01-02") {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(dateStr)
	if err != nil || !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// IsValidMonth checks a "YYYY-MM" string.
func IsValidMonth(month string) bool {
	if !monthRegex.MatchString(month) {
		return false
	}
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// ParseClockTime accepts "HH:MM" or "HH:MM:SS".
func ParseClockTime(s string) (civil.Time, bool) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case len("15:04"):
		s += ":00"
	case len("15:04:05"):
	default:
		return civil.Time{}, false
	}
	t, err := civil.ParseTime(s)
	if err != nil || !t.IsValid() {
		return civil.Time{}, false
	}
	return t, true
}

// ParseLocalDateTime accepts "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DDTHH:MM:SS".
func ParseLocalDateTime(s string) (civil.DateTime, bool) {
	s = strings.Replace(strings.TrimSpace(s), " ", "T", 1)
	dt, err := civil.ParseDateTime(s)
	if err != nil || !dt.IsValid() {
		return civil.DateTime{}, false
	}
	return dt, true
}

// IsValidLatitude reports whether v is within [-90, 90].
func IsValidLatitude(v float64) bool {
	return v >= -90 && v <= 90
}

// IsValidLongitude reports whether v is within [-180, 180].
func IsValidLongitude(v float64) bool {
	return v >= -180 && v <= 180
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
