package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Age         int             `db:"age"`
	Designation string          `db:"designation"`
	HiringDate  time.Time       `db:"hiring_date"`
	DateOfBirth time.Time       `db:"date_of_birth"`
	Salary      decimal.Decimal `db:"salary"`
	PhotoPath   *string         `db:"photo_path"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at"`
}

// IsActive reports whether the employee has not been soft deleted.
func (e Employee) IsActive() bool {
	return e.DeletedAt == nil
}

func (e Employee) HasPhoto() bool {
	return e.PhotoPath != nil && *e.PhotoPath != ""
}

// Changes is a partial update; nil fields are left untouched.
type Changes struct {
	Name        *string
	Age         *int
	Designation *string
	HiringDate  *time.Time
	DateOfBirth *time.Time
	Salary      *decimal.Decimal
}

func (c Changes) IsEmpty() bool {
	return c.Name == nil && c.Age == nil && c.Designation == nil &&
		c.HiringDate == nil && c.DateOfBirth == nil && c.Salary == nil
}

type DesignationCount struct {
	Designation string `db:"designation" json:"designation"`
	Count       int64  `db:"count" json:"count"`
}

// AgeAt returns the whole number of 365.25-day years between dob and now.
func AgeAt(dob, now time.Time) int {
	const year = 365.25 * 24 * float64(time.Hour)
	return int(float64(now.Sub(dob)) / year)
}
