package employee

import "context"

type EmployeeService interface {
	// ListEmployees returns the active directory for the export selector
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
}
