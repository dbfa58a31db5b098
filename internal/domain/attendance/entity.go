package attendance

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Kind tells whether a punch opens or closes a working day.
type Kind string

const (
	KindEntry Kind = "entry"
	KindExit  Kind = "exit"
)

// ParseKind normalizes the spellings accepted at ingestion (English and
// Spanish) into a Kind. Nothing past ingestion compares raw strings.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "entrada", "in":
		return KindEntry, nil
	case "exit", "salida", "out":
		return KindExit, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) IsValid() bool {
	return k == KindEntry || k == KindExit
}

// Event is a single punch. RecordedAt is organization-local wall-clock time;
// it is converted exactly once, when the punch is ingested.
type Event struct {
	ID          string
	EmployeeID  string
	Kind        Kind
	RecordedAt  civil.DateTime
	Latitude    *float64
	Longitude   *float64
	PhotoPath   *string
	Observation *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

// HasObservation reports whether the event carries a non-blank observation.
func (e *Event) HasObservation() bool {
	return e != nil && e.Observation != nil && strings.TrimSpace(*e.Observation) != ""
}
