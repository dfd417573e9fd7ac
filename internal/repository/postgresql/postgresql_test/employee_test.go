package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func createTestEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, name, designation string, salary int64) *employee.Employee {
	t.Helper()

	created, err := repo.Create(ctx, employee.Employee{
		Name:        name,
		Age:         30,
		Designation: designation,
		HiringDate:  date(2022, time.March, 1),
		DateOfBirth: date(1995, time.June, 15),
		Salary:      decimal.NewFromInt(salary),
	})
	require.NoError(t, err)
	return created
}

func TestEmployeeRepository_CreateAndFind(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := createTestEmployee(t, ctx, repo, "Alice", "Engineer", 5000)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive())
	assert.True(t, decimal.NewFromInt(5000).Equal(created.Salary))

	found, err := repo.FindActiveByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, date(2022, time.March, 1), found.HiringDate.UTC())

	_, err = repo.FindActiveByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_PaginationAndSearch(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	for i := 0; i < 12; i++ {
		createTestEmployee(t, ctx, repo, fmt.Sprintf("Worker %02d", i), "Operator", 3000)
	}
	createTestEmployee(t, ctx, repo, "Budi_Santoso", "Manager", 9000)

	items, total, err := repo.FindAllActive(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)
	assert.Len(t, items, 5)

	items, total, err = repo.SearchByName(ctx, "budi", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Budi_Santoso", items[0].Name)

	// underscore is matched literally, not as a wildcard
	_, total, err = repo.SearchByName(ctx, "r_0", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestEmployeeRepository_UpdateAndPhoto(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := createTestEmployee(t, ctx, repo, "Carol", "Analyst", 4000)

	name := "Caroline"
	salary := decimal.RequireFromString("4500.50")
	updated, err := repo.Update(ctx, created.ID, employee.Changes{Name: &name, Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, "Caroline", updated.Name)
	assert.True(t, salary.Equal(updated.Salary))
	assert.Equal(t, "Analyst", updated.Designation)

	photo := "employees/carol.jpg"
	updated, err = repo.UpdatePhotoPath(ctx, created.ID, &photo)
	require.NoError(t, err)
	require.NotNil(t, updated.PhotoPath)
	assert.Equal(t, photo, *updated.PhotoPath)

	updated, err = repo.UpdatePhotoPath(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.PhotoPath)

	_, err = repo.Update(ctx, uuid.NewString(), employee.Changes{Name: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_SoftDeleteAndRestore(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := createTestEmployee(t, ctx, repo, "Dave", "Engineer", 5000)

	require.NoError(t, repo.SoftDelete(ctx, created.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, created.ID), employee.ErrEmployeeNotFound)

	_, err := repo.FindActiveByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	byDesignation, err := repo.FindByDesignation(ctx, "Engineer")
	require.NoError(t, err)
	assert.Empty(t, byDesignation)

	restored, err := repo.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive())

	_, err = repo.Restore(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrDeletedEmployeeNotFound)

	require.NoError(t, repo.HardDelete(ctx, created.ID))
	assert.ErrorIs(t, repo.HardDelete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_Queries(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	createTestEmployee(t, ctx, repo, "Eve", "Engineer", 7000)
	createTestEmployee(t, ctx, repo, "Frank", "Engineer", 5000)
	createTestEmployee(t, ctx, repo, "Grace", "Designer", 3000)

	bySalary, err := repo.FindBySalaryRange(ctx, decimal.NewFromInt(4000), decimal.NewFromInt(7000))
	require.NoError(t, err)
	require.Len(t, bySalary, 2)
	assert.Equal(t, "Eve", bySalary[0].Name)

	byHiring, err := repo.FindByHiringDateRange(ctx, date(2022, time.January, 1), date(2022, time.December, 31))
	require.NoError(t, err)
	assert.Len(t, byHiring, 3)

	counts, err := repo.CountByDesignation(ctx)
	require.NoError(t, err)
	assert.Equal(t, []employee.DesignationCount{
		{Designation: "Engineer", Count: 2},
		{Designation: "Designer", Count: 1},
	}, counts)
}
