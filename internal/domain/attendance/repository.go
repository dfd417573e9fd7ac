package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert inserts the record or, when one exists for the same employee and date,
	// overwrites its check-in time.
	Upsert(ctx context.Context, employeeID string, date time.Time, checkInTime string) (*Attendance, error)

	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	UpdateCheckInTime(ctx context.Context, id string, checkInTime string) (*Attendance, error)
	Delete(ctx context.Context, id string) error

	FindByEmployeeID(ctx context.Context, employeeID string) ([]Attendance, error)
	FindByDate(ctx context.Context, date time.Time) ([]AttendanceWithEmployee, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
	Search(ctx context.Context, filter Filter) ([]AttendanceWithEmployee, int64, error)

	MonthlyReport(ctx context.Context, start, end time.Time, lateThreshold string, employeeID *string) ([]MonthlyReport, error)

	// Statistics counts rows for the employee, optionally bounded to [start, end].
	Statistics(ctx context.Context, employeeID string, start, end *time.Time, lateThreshold string) (total int64, late int64, err error)

	CountLateArrivals(ctx context.Context, employeeID string, start, end time.Time, lateThreshold string) (int64, error)
}
