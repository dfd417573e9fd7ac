package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CreateOrUpdateAttendance records a check-in, overwriting any existing one for the same employee and date
	CreateOrUpdateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// BulkCreateOrUpdate upserts all records in one transaction
	BulkCreateOrUpdate(ctx context.Context, req BulkAttendanceRequest) ([]AttendanceResponse, error)

	UpdateAttendance(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error
	GetAttendanceByID(ctx context.Context, id string) (AttendanceResponse, error)

	GetAttendanceByEmployeeID(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetAttendanceByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
	GetAttendanceByDateRange(ctx context.Context, startDate, endDate string) ([]AttendanceResponse, error)
	Search(ctx context.Context, req AttendanceFilterRequest) (ListAttendanceResponse, error)

	// GetMonthlyReport summarises days present and late arrivals per employee for a YYYY-MM month
	GetMonthlyReport(ctx context.Context, month string, employeeID *string) ([]MonthlyReport, error)

	// GetEmployeeStatistics counts late and on-time days, optionally within [startDate, endDate]
	GetEmployeeStatistics(ctx context.Context, employeeID string, startDate, endDate *string) (Statistics, error)

	CheckAttendanceExists(ctx context.Context, employeeID string, date string) (bool, error)
	GetLateArrivalsCount(ctx context.Context, employeeID string, startDate, endDate string) (LateCountResponse, error)
}
