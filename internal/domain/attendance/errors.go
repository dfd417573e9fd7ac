package attendance

import "github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	ErrAttendanceNotFound  = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrEmployeeNotFound    = apperror.New(apperror.KindNotFound, "employee not found")
	ErrFutureDate          = apperror.New(apperror.KindBadRequest, "attendance date cannot be in the future")
	ErrInvalidTimeFormat   = apperror.New(apperror.KindBadRequest, "invalid check-in time format, use HH:MM:SS")
	ErrInvalidDateFormat   = apperror.New(apperror.KindBadRequest, "invalid date format, use YYYY-MM-DD")
	ErrInvalidMonthFormat  = apperror.New(apperror.KindBadRequest, "invalid month format, use YYYY-MM")
	ErrInvalidDateRange    = apperror.New(apperror.KindBadRequest, "start date must be before or equal to end date")
	ErrIncompleteDateRange = apperror.New(apperror.KindBadRequest, "both start date and end date are required")
	ErrUpdateFailed        = apperror.New(apperror.KindInternal, "failed to update attendance record")
	ErrEmptyBulkRequest    = apperror.New(apperror.KindBadRequest, "at least one attendance record is required")
)
