package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	FindAllActive(ctx context.Context, page, limit int) ([]Employee, int64, error)
	SearchByName(ctx context.Context, term string, page, limit int) ([]Employee, int64, error)
	FindActiveByID(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, newEmployee Employee) (*Employee, error)
	Update(ctx context.Context, id string, changes Changes) (*Employee, error)
	UpdatePhotoPath(ctx context.Context, id string, photoPath *string) (*Employee, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*Employee, error)
	HardDelete(ctx context.Context, id string) error
	FindByDesignation(ctx context.Context, designation string) ([]Employee, error)
	FindBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]Employee, error)
	FindByHiringDateRange(ctx context.Context, from, to time.Time) ([]Employee, error)
	CountByDesignation(ctx context.Context) ([]DesignationCount, error)
}
