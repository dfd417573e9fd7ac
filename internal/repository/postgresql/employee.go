package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
)

const employeeColumns = `id, name, age, designation, hiring_date, date_of_birth, salary, photo_path,
	created_at, updated_at, deleted_at`

type employeeRepositoryImpl struct {
	db        *database.DB
	employees table[employee.Employee]
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{
		db:        db,
		employees: newTable[employee.Employee](db, "employees", employeeColumns),
	}
}

// FindAllActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) FindAllActive(ctx context.Context, page, limit int) ([]employee.Employee, int64, error) {
	return e.employees.page(ctx, "deleted_at IS NULL", "created_at DESC", nil, limit, pagination.Offset(page, limit))
}

// SearchByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SearchByName(ctx context.Context, term string, page, limit int) ([]employee.Employee, int64, error) {
	where := "deleted_at IS NULL AND name ILIKE $1"
	args := []interface{}{"%" + escapeLike(term) + "%"}
	return e.employees.page(ctx, where, "created_at DESC", args, limit, pagination.Offset(page, limit))
}

// FindActiveByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) FindActiveByID(ctx context.Context, id string) (*employee.Employee, error) {
	emp, err := e.employees.findOne(ctx, "id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		if isNoRows(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (*employee.Employee, error) {
	query := `
		INSERT INTO employees (name, age, designation, hiring_date, date_of_birth, salary, photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := e.employees.returning(ctx, query,
		newEmployee.Name, newEmployee.Age, newEmployee.Designation,
		newEmployee.HiringDate, newEmployee.DateOfBirth, newEmployee.Salary, newEmployee.PhotoPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, changes employee.Changes) (*employee.Employee, error) {
	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if changes.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *changes.Name)
		argIdx++
	}
	if changes.Age != nil {
		updates = append(updates, fmt.Sprintf("age = $%d", argIdx))
		args = append(args, *changes.Age)
		argIdx++
	}
	if changes.Designation != nil {
		updates = append(updates, fmt.Sprintf("designation = $%d", argIdx))
		args = append(args, *changes.Designation)
		argIdx++
	}
	if changes.HiringDate != nil {
		updates = append(updates, fmt.Sprintf("hiring_date = $%d", argIdx))
		args = append(args, *changes.HiringDate)
		argIdx++
	}
	if changes.DateOfBirth != nil {
		updates = append(updates, fmt.Sprintf("date_of_birth = $%d", argIdx))
		args = append(args, *changes.DateOfBirth)
		argIdx++
	}
	if changes.Salary != nil {
		updates = append(updates, fmt.Sprintf("salary = $%d", argIdx))
		args = append(args, *changes.Salary)
		argIdx++
	}

	if len(updates) == 0 {
		return e.FindActiveByID(ctx, id)
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(updates, ", "), argIdx, employeeColumns)

	updated, err := e.employees.returning(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	return updated, nil
}

// UpdatePhotoPath implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePhotoPath(ctx context.Context, id string, photoPath *string) (*employee.Employee, error) {
	query := `
		UPDATE employees
		SET photo_path = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + employeeColumns

	updated, err := e.employees.returning(ctx, query, photoPath, id)
	if err != nil {
		if isNoRows(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update photo for employee with id %s: %w", id, err)
	}
	return updated, nil
}

// SoftDelete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Restore implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Restore(ctx context.Context, id string) (*employee.Employee, error) {
	query := `
		UPDATE employees
		SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL
		RETURNING ` + employeeColumns

	restored, err := e.employees.returning(ctx, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, employee.ErrDeletedEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to restore employee with id %s: %w", id, err)
	}
	return restored, nil
}

// HardDelete implements employee.EmployeeRepository. Attendance rows go with it.
func (e *employeeRepositoryImpl) HardDelete(ctx context.Context, id string) error {
	n, err := e.employees.deleteWhere(ctx, "id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to purge employee with id %s: %w", id, err)
	}
	if n == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByDesignation implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) FindByDesignation(ctx context.Context, designation string) ([]employee.Employee, error) {
	employees, err := e.employees.findMany(ctx,
		"WHERE designation = $1 AND deleted_at IS NULL ORDER BY created_at DESC", designation)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by designation: %w", err)
	}
	return employees, nil
}

// FindBySalaryRange implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) FindBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]employee.Employee, error) {
	employees, err := e.employees.findMany(ctx,
		"WHERE salary BETWEEN $1 AND $2 AND deleted_at IS NULL ORDER BY salary DESC", min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by salary range: %w", err)
	}
	return employees, nil
}

// FindByHiringDateRange implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) FindByHiringDateRange(ctx context.Context, from, to time.Time) ([]employee.Employee, error) {
	employees, err := e.employees.findMany(ctx,
		"WHERE hiring_date BETWEEN $1 AND $2 AND deleted_at IS NULL ORDER BY hiring_date DESC", from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by hiring date range: %w", err)
	}
	return employees, nil
}

// CountByDesignation implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountByDesignation(ctx context.Context) ([]employee.DesignationCount, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `
		SELECT designation, COUNT(*) AS count
		FROM employees
		WHERE deleted_at IS NULL
		GROUP BY designation
		ORDER BY count DESC, designation ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees by designation: %w", err)
	}
	defer rows.Close()

	counts := []employee.DesignationCount{}
	for rows.Next() {
		var c employee.DesignationCount
		if err := rows.Scan(&c.Designation, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// escapeLike escapes LIKE wildcards so a search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
