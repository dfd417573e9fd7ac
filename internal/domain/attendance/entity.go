package attendance

import (
	"time"
)

type Attendance struct {
	ID          string    `db:"id"`
	EmployeeID  string    `db:"employee_id"`
	Date        time.Time `db:"date"`
	CheckInTime string    `db:"check_in_time"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// AttendanceWithEmployee is an attendance row joined to its (active) employee.
type AttendanceWithEmployee struct {
	Attendance
	EmployeeName string `db:"employee_name"`
}

// IsLate reports whether the check-in is strictly after threshold. Both are HH:MM:SS.
func (a Attendance) IsLate(threshold string) bool {
	return a.CheckInTime > threshold
}

type MonthlyReport struct {
	EmployeeID  string `db:"employee_id" json:"employee_id"`
	Name        string `db:"employee_name" json:"name"`
	DaysPresent int64  `db:"days_present" json:"days_present"`
	TimesLate   int64  `db:"times_late" json:"times_late"`
}

type Statistics struct {
	TotalDays      int64   `json:"total_days"`
	LateDays       int64   `json:"late_days"`
	OnTimeDays     int64   `json:"on_time_days"`
	LatePercentage float64 `json:"late_percentage"`
}

// Filter selects attendance rows; zero values are ignored.
type Filter struct {
	EmployeeID string
	Date       *time.Time
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}
