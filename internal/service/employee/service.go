package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
	"github.com/shopspring/decimal"
)

// maxAgeDrift is how far a stated age may differ from the one derived from date of birth.
const maxAgeDrift = 1

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
	transactor   database.Transactor
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, fileService file.FileService, transactor database.Transactor) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		fileService:  fileService,
		transactor:   transactor,
	}
}

// GetAllEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAllEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	page, limit := pagination.Normalize(filter.Page, filter.Limit)

	var (
		employees []employee.Employee
		total     int64
		err       error
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		employees, total, err = s.employeeRepo.SearchByName(ctx, search, page, limit)
	} else {
		employees, total, err = s.employeeRepo.FindAllActive(ctx, page, limit)
	}
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return employee.ListEmployeeResponse{
		Data:       employee.NewEmployeeResponses(employees),
		Pagination: pagination.New(page, limit, total),
	}, nil
}

// GetEmployeeByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindActiveByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(*emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	dob, err := validator.ParseDate(req.DateOfBirth)
	if err != nil {
		return employee.EmployeeResponse{}, employee.ErrInvalidDateFormat
	}
	hiringDate, err := validator.ParseDate(req.HiringDate)
	if err != nil {
		return employee.EmployeeResponse{}, employee.ErrInvalidDateFormat
	}

	if err := checkAge(req.Age, dob); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := checkHiringDate(hiringDate); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:        strings.TrimSpace(req.Name),
		Age:         req.Age,
		Designation: strings.TrimSpace(req.Designation),
		HiringDate:  hiringDate,
		DateOfBirth: dob,
		Salary:      req.Salary,
		PhotoPath:   req.PhotoPath,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID)
	return employee.NewEmployeeResponse(*created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	existing, err := s.employeeRepo.FindActiveByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	changes, err := prepareChanges(existing, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, id, changes)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(*updated), nil
}

// UpdateEmployeeWithPhoto implements employee.EmployeeService. The previous
// photo file is deleted before anything is written; the field changes and the
// new photo path are then stored in one transaction.
func (s *EmployeeServiceImpl) UpdateEmployeeWithPhoto(ctx context.Context, id string, req employee.UpdateEmployeeRequest, photoPath string) (employee.EmployeeResponse, error) {
	existing, err := s.employeeRepo.FindActiveByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	changes, err := prepareChanges(existing, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if existing.HasPhoto() && *existing.PhotoPath != photoPath {
		if err := s.deletePhotoFile(ctx, *existing.PhotoPath); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	var updated *employee.Employee
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.Update(ctx, id, changes); err != nil {
			return err
		}
		updated, err = s.employeeRepo.UpdatePhotoPath(ctx, id, &photoPath)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(*updated), nil
}

// prepareChanges validates a partial update against the stored record.
func prepareChanges(existing *employee.Employee, req employee.UpdateEmployeeRequest) (employee.Changes, error) {
	changes, err := req.ToChanges()
	if err != nil {
		return employee.Changes{}, err
	}
	if changes.IsEmpty() {
		return employee.Changes{}, employee.ErrNoFieldsToUpdate
	}

	// Age and date of birth are checked together; a missing side comes from the stored record.
	if changes.Age != nil || changes.DateOfBirth != nil {
		age, dob := existing.Age, existing.DateOfBirth
		if changes.Age != nil {
			age = *changes.Age
		}
		if changes.DateOfBirth != nil {
			dob = *changes.DateOfBirth
		}
		if err := checkAge(age, dob); err != nil {
			return employee.Changes{}, err
		}
	}
	if changes.HiringDate != nil {
		if err := checkHiringDate(*changes.HiringDate); err != nil {
			return employee.Changes{}, err
		}
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		changes.Name = &name
	}
	if changes.Designation != nil {
		designation := strings.TrimSpace(*changes.Designation)
		changes.Designation = &designation
	}

	return changes, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	if emp.HasPhoto() {
		if err := s.deletePhotoFile(ctx, *emp.PhotoPath); err != nil {
			return err
		}
	}

	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	slog.Info("Employee soft deleted", "employee_id", id)
	return nil
}

// RestoreEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RestoreEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	restored, err := s.employeeRepo.Restore(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(*restored), nil
}

// UpdateEmployeePhoto implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployeePhoto(ctx context.Context, id string, photoPath string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindActiveByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if emp.HasPhoto() && *emp.PhotoPath != photoPath {
		if err := s.deletePhotoFile(ctx, *emp.PhotoPath); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.UpdatePhotoPath(ctx, id, &photoPath)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(*updated), nil
}

// RemoveEmployeePhoto implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RemoveEmployeePhoto(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindActiveByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !emp.HasPhoto() {
		return employee.EmployeeResponse{}, employee.ErrPhotoNotFound
	}

	if err := s.deletePhotoFile(ctx, *emp.PhotoPath); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.UpdatePhotoPath(ctx, id, nil)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(*updated), nil
}

// GetEmployeesByDesignation implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeesByDesignation(ctx context.Context, designation string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindByDesignation(ctx, strings.TrimSpace(designation))
	if err != nil {
		return nil, err
	}
	return employee.NewEmployeeResponses(employees), nil
}

// GetEmployeesBySalaryRange implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeesBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]employee.EmployeeResponse, error) {
	if min.GreaterThan(max) {
		return nil, employee.ErrInvalidSalaryRange
	}

	employees, err := s.employeeRepo.FindBySalaryRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	return employee.NewEmployeeResponses(employees), nil
}

// GetEmployeesByHiringDateRange implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeesByHiringDateRange(ctx context.Context, from, to string) ([]employee.EmployeeResponse, error) {
	fromDate, err := validator.ParseDate(from)
	if err != nil {
		return nil, employee.ErrInvalidDateFormat
	}
	toDate, err := validator.ParseDate(to)
	if err != nil {
		return nil, employee.ErrInvalidDateFormat
	}
	if fromDate.After(toDate) {
		return nil, employee.ErrInvalidDateRange
	}

	employees, err := s.employeeRepo.FindByHiringDateRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return employee.NewEmployeeResponses(employees), nil
}

// GetEmployeeCountByDesignation implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeCountByDesignation(ctx context.Context) ([]employee.DesignationCount, error) {
	return s.employeeRepo.CountByDesignation(ctx)
}

// deletePhotoFile removes a stored photo if it is still there. Any storage
// failure aborts the calling operation.
func (s *EmployeeServiceImpl) deletePhotoFile(ctx context.Context, path string) error {
	exists, err := s.fileService.Exists(ctx, path)
	if err != nil {
		slog.Error("Photo lookup failed", "path", path, "error", err)
		return employee.ErrPhotoDeleteFailed
	}
	if !exists {
		return nil
	}
	if err := s.fileService.DeleteFile(ctx, path); err != nil {
		slog.Error("Photo delete failed", "path", path, "error", err)
		return employee.ErrPhotoDeleteFailed
	}
	return nil
}

func checkAge(age int, dob time.Time) error {
	calculated := employee.AgeAt(dob, validator.Today())
	if abs(calculated-age) > maxAgeDrift {
		return employee.ErrAgeMismatch.WithDetails(map[string]string{
			"age":            fmt.Sprint(age),
			"calculated_age": fmt.Sprint(calculated),
		})
	}
	return nil
}

func checkHiringDate(hiringDate time.Time) error {
	if hiringDate.After(validator.Today()) {
		return employee.ErrFutureHiringDate
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
