package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (s stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s stubEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return s.employees, s.err
}

func TestListEmployees(t *testing.T) {
	hours := decimal.RequireFromString("37.5")
	svc := NewEmployeeService(stubEmployeeRepo{employees: []employee.Employee{
		{ID: "1", FullName: "Ana", Role: employee.RoleEmployee, ContractedHours: &hours},
		{ID: "2", FullName: "Luis", Role: employee.RoleAdmin},
	}})

	got, err := svc.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].ContractedHours)
	assert.Equal(t, "37.5", *got[0].ContractedHours)
	assert.Nil(t, got[1].ContractedHours)
	assert.Equal(t, employee.RoleAdmin, got[1].Role)
}

func TestListEmployees_Error(t *testing.T) {
	svc := NewEmployeeService(stubEmployeeRepo{err: errors.New("db down")})

	_, err := svc.ListEmployees(context.Background())
	assert.ErrorContains(t, err, "failed to list employees")
}
