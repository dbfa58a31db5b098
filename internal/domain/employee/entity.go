package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the directory entry the timesheet needs: a display name and
// the weekly hours written into the contract, when known.
type Employee struct {
	ID               string
	FullName         string
	Role             Role
	ContractedHours  *decimal.Decimal
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
