package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetAllEmployees lists active employees, filtered by name when a search term is set
	GetAllEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	GetEmployeeByID(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee checks age against date of birth and rejects future hiring dates
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployeeWithPhoto applies field changes and a new photo together; nothing is stored if either fails
	UpdateEmployeeWithPhoto(ctx context.Context, id string, req UpdateEmployeeRequest, photoPath string) (EmployeeResponse, error)

	// DeleteEmployee removes the photo file, then soft deletes the employee
	DeleteEmployee(ctx context.Context, id string) error

	RestoreEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// UpdateEmployeePhoto points the employee at a new photo, deleting the previous file
	UpdateEmployeePhoto(ctx context.Context, id string, photoPath string) (EmployeeResponse, error)

	RemoveEmployeePhoto(ctx context.Context, id string) (EmployeeResponse, error)

	GetEmployeesByDesignation(ctx context.Context, designation string) ([]EmployeeResponse, error)
	GetEmployeesBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]EmployeeResponse, error)
	GetEmployeesByHiringDateRange(ctx context.Context, from, to string) ([]EmployeeResponse, error)
	GetEmployeeCountByDesignation(ctx context.Context) ([]DesignationCount, error)
}
