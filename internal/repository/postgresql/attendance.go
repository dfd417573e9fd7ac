package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
)

// check_in_time is read as text so it round-trips as HH:MM:SS.
const attendanceColumns = `id, employee_id, date, check_in_time::text AS check_in_time, created_at, updated_at`

const attendanceJoinColumns = `a.id, a.employee_id, a.date, a.check_in_time::text AS check_in_time,
	a.created_at, a.updated_at, e.name AS employee_name`

const attendanceJoinFrom = `attendance a JOIN employees e ON e.id = a.employee_id AND e.deleted_at IS NULL`

type attendanceRepositoryImpl struct {
	db     *database.DB
	rows   table[attendance.Attendance]
	joined table[attendance.AttendanceWithEmployee]
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{
		db:   db,
		rows: newTable[attendance.Attendance](db, "attendance", attendanceColumns),
		joined: newTable[attendance.AttendanceWithEmployee](db, "attendance", "").
			join(attendanceJoinFrom, attendanceJoinColumns),
	}
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, employeeID string, date time.Time, checkInTime string) (*attendance.Attendance, error) {
	query := `
		INSERT INTO attendance (employee_id, date, check_in_time)
		VALUES ($1, $2, $3::time)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET check_in_time = EXCLUDED.check_in_time, updated_at = NOW()
		RETURNING ` + attendanceColumns

	record, err := r.rows.returning(ctx, query, employeeID, date, checkInTime)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return record, nil
}

// FindByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	record, err := r.rows.findOne(ctx, "id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance with id %s: %w", id, err)
	}
	return record, nil
}

// FindByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	record, err := r.rows.findOne(ctx, "employee_id = $1 AND date = $2", employeeID, date)
	if err != nil {
		if isNoRows(err) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s: %w", employeeID, err)
	}
	return record, nil
}

// UpdateCheckInTime implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateCheckInTime(ctx context.Context, id string, checkInTime string) (*attendance.Attendance, error) {
	query := `
		UPDATE attendance
		SET check_in_time = $1::time, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + attendanceColumns

	record, err := r.rows.returning(ctx, query, checkInTime, id)
	if err != nil {
		if isNoRows(err) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to update attendance with id %s: %w", id, err)
	}
	return record, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	n, err := r.rows.deleteWhere(ctx, "id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance with id %s: %w", id, err)
	}
	if n == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// FindByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByEmployeeID(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	records, err := r.rows.findMany(ctx, "WHERE employee_id = $1 ORDER BY date DESC", employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for employee %s: %w", employeeID, err)
	}
	return records, nil
}

// FindByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceWithEmployee, error) {
	records, err := r.joined.findMany(ctx, "WHERE a.date = $1 ORDER BY a.check_in_time ASC, e.name ASC", date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return records, nil
}

// FindByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	records, err := r.rows.findMany(ctx, `
		WHERE date BETWEEN $1 AND $2
			AND employee_id IN (SELECT id FROM employees WHERE deleted_at IS NULL)
		ORDER BY date ASC, employee_id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date range: %w", err)
	}
	return records, nil
}

// Search implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Search(ctx context.Context, filter attendance.Filter) ([]attendance.AttendanceWithEmployee, int64, error) {
	where := []string{}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil {
		where = append(where, fmt.Sprintf("a.date = $%d", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	page, limit := pagination.Normalize(filter.Page, filter.Limit)

	return r.joined.page(ctx, strings.Join(where, " AND "), "a.date DESC, a.employee_id ASC",
		args, limit, pagination.Offset(page, limit))
}

// MonthlyReport implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MonthlyReport(ctx context.Context, start, end time.Time, lateThreshold string, employeeID *string) ([]attendance.MonthlyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.employee_id, e.name AS employee_name,
			COUNT(DISTINCT a.date) AS days_present,
			COALESCE(SUM(CASE WHEN a.check_in_time > $3::time THEN 1 ELSE 0 END), 0) AS times_late
		FROM ` + attendanceJoinFrom + `
		WHERE a.date BETWEEN $1 AND $2`
	args := []interface{}{start, end, lateThreshold}

	if employeeID != nil {
		query += " AND a.employee_id = $4"
		args = append(args, *employeeID)
	}
	query += `
		GROUP BY a.employee_id, e.name
		ORDER BY e.name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly report: %w", err)
	}
	defer rows.Close()

	reports := []attendance.MonthlyReport{}
	for rows.Next() {
		var report attendance.MonthlyReport
		if err := rows.Scan(&report.EmployeeID, &report.Name, &report.DaysPresent, &report.TimesLate); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// Statistics implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Statistics(ctx context.Context, employeeID string, start, end *time.Time, lateThreshold string) (int64, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN check_in_time > $2::time THEN 1 ELSE 0 END), 0) AS late
		FROM attendance
		WHERE employee_id = $1`
	args := []interface{}{employeeID, lateThreshold}

	if start != nil && end != nil {
		query += " AND date BETWEEN $3 AND $4"
		args = append(args, *start, *end)
	}

	var total, late int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total, &late); err != nil {
		return 0, 0, fmt.Errorf("failed to compute attendance statistics: %w", err)
	}
	return total, late, nil
}

// CountLateArrivals implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountLateArrivals(ctx context.Context, employeeID string, start, end time.Time, lateThreshold string) (int64, error) {
	n, err := r.rows.count(ctx, "employee_id = $1 AND date BETWEEN $2 AND $3 AND check_in_time > $4::time",
		employeeID, start, end, lateThreshold)
	if err != nil {
		return 0, fmt.Errorf("failed to count late arrivals: %w", err)
	}
	return n, nil
}
