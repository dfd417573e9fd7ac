package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	transactor     database.Transactor
	// lateThreshold is the latest on-time check-in, HH:MM:SS.
	lateThreshold string
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	transactor database.Transactor,
	lateThreshold string,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		transactor:     transactor,
		lateThreshold:  lateThreshold,
	}
}

// CreateOrUpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateOrUpdateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	record, err := s.upsert(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(*record), nil
}

// BulkCreateOrUpdate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkCreateOrUpdate(ctx context.Context, req attendance.BulkAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if len(req.Records) == 0 {
		return nil, attendance.ErrEmptyBulkRequest
	}

	responses := make([]attendance.AttendanceResponse, 0, len(req.Records))
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, rec := range req.Records {
			record, err := s.upsert(ctx, rec)
			if err != nil {
				return bulkRecordError(i, err)
			}
			responses = append(responses, attendance.NewAttendanceResponse(*record))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bulk attendance saved", "count", len(responses))
	return responses, nil
}

// bulkRecordError reports a failed batch entry as a bad request naming its index.
func bulkRecordError(index int, err error) error {
	message := "failed to save attendance"
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else {
		slog.Error("Bulk attendance record failed", "index", index, "error", err)
	}
	return apperror.BadRequest("record %d: %s", index, message).WithDetails(map[string]string{
		"index": strconv.Itoa(index),
	})
}

func (s *AttendanceServiceImpl) upsert(ctx context.Context, req attendance.CreateAttendanceRequest) (*attendance.Attendance, error) {
	if err := s.ensureActiveEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	date, err := validator.ParseDate(req.Date)
	if err != nil {
		return nil, attendance.ErrInvalidDateFormat
	}
	if date.After(validator.Today()) {
		return nil, attendance.ErrFutureDate
	}
	if !validator.IsValidTime(req.CheckInTime) {
		return nil, attendance.ErrInvalidTimeFormat
	}

	record, err := s.attendanceRepo.Upsert(ctx, req.EmployeeID, date, req.CheckInTime)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	existing, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckInTime == nil {
		return attendance.NewAttendanceResponse(*existing), nil
	}
	if !validator.IsValidTime(*req.CheckInTime) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeFormat
	}

	updated, err := s.attendanceRepo.UpdateCheckInTime(ctx, id, *req.CheckInTime)
	if err != nil {
		// the row vanished between the lookup and the update
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrUpdateFailed
		}
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(*updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Attendance deleted", "attendance_id", id)
	return nil
}

// GetAttendanceByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(*record), nil
}

// GetAttendanceByEmployeeID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByEmployeeID(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if err := s.ensureActiveEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetAttendanceByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return nil, attendance.ErrInvalidDateFormat
	}

	records, err := s.attendanceRepo.FindByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceWithEmployeeResponses(records), nil
}

// GetAttendanceByDateRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByDateRange(ctx context.Context, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(records), nil
}

// Search implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Search(ctx context.Context, req attendance.AttendanceFilterRequest) (attendance.ListAttendanceResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return attendance.ListAttendanceResponse{}, attendance.ErrInvalidDateRange
	}

	records, total, err := s.attendanceRepo.Search(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to search attendance: %w", err)
	}

	return attendance.ListAttendanceResponse{
		Data:       attendance.NewAttendanceWithEmployeeResponses(records),
		Pagination: pagination.New(filter.Page, filter.Limit, total),
	}, nil
}

// GetMonthlyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlyReport(ctx context.Context, month string, employeeID *string) ([]attendance.MonthlyReport, error) {
	start, ok := validator.IsValidMonth(month)
	if !ok {
		return nil, attendance.ErrInvalidMonthFormat
	}
	end := start.AddDate(0, 1, -1)

	if employeeID != nil {
		if err := s.ensureActiveEmployee(ctx, *employeeID); err != nil {
			return nil, err
		}
	}

	return s.attendanceRepo.MonthlyReport(ctx, start, end, s.lateThreshold, employeeID)
}

// GetEmployeeStatistics implements attendance.AttendanceService. The range is
// applied only when both ends are given.
func (s *AttendanceServiceImpl) GetEmployeeStatistics(ctx context.Context, employeeID string, startDate, endDate *string) (attendance.Statistics, error) {
	if err := s.ensureActiveEmployee(ctx, employeeID); err != nil {
		return attendance.Statistics{}, err
	}

	var start, end *time.Time
	if startDate != nil && endDate != nil {
		from, to, err := parseRange(*startDate, *endDate)
		if err != nil {
			return attendance.Statistics{}, err
		}
		start, end = &from, &to
	}

	total, late, err := s.attendanceRepo.Statistics(ctx, employeeID, start, end, s.lateThreshold)
	if err != nil {
		return attendance.Statistics{}, err
	}
	return newStatistics(total, late), nil
}

func newStatistics(total, late int64) attendance.Statistics {
	stats := attendance.Statistics{
		TotalDays:  total,
		LateDays:   late,
		OnTimeDays: total - late,
	}
	if total > 0 {
		stats.LatePercentage = math.Round(float64(late)/float64(total)*100*100) / 100
	}
	return stats
}

// CheckAttendanceExists implements attendance.AttendanceService. An unknown or
// soft-deleted employee has no records, so it reports false rather than an error.
func (s *AttendanceServiceImpl) CheckAttendanceExists(ctx context.Context, employeeID string, date string) (bool, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return false, attendance.ErrInvalidDateFormat
	}

	_, err := s.attendanceRepo.FindByEmployeeAndDate(ctx, employeeID, d)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetLateArrivalsCount implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetLateArrivalsCount(ctx context.Context, employeeID string, startDate, endDate string) (attendance.LateCountResponse, error) {
	if err := s.ensureActiveEmployee(ctx, employeeID); err != nil {
		return attendance.LateCountResponse{}, err
	}
	if startDate == "" || endDate == "" {
		return attendance.LateCountResponse{}, attendance.ErrIncompleteDateRange
	}
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return attendance.LateCountResponse{}, err
	}

	count, err := s.attendanceRepo.CountLateArrivals(ctx, employeeID, start, end, s.lateThreshold)
	if err != nil {
		return attendance.LateCountResponse{}, err
	}

	return attendance.LateCountResponse{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		LateCount:  count,
	}, nil
}

func (s *AttendanceServiceImpl) ensureActiveEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.employeeRepo.FindActiveByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, ok := validator.IsValidDate(startDate)
	if !ok {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateFormat
	}
	end, ok := validator.IsValidDate(endDate)
	if !ok {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateRange
	}
	return start, end, nil
}
