package employee

import (
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name        string          `json:"name" validate:"required,notblank,min=2,max=255"`
	Age         int             `json:"age" validate:"required,gte=18,lte=100"`
	Designation string          `json:"designation" validate:"required,notblank,min=2,max=255"`
	HiringDate  string          `json:"hiring_date" validate:"required,date"`
	DateOfBirth string          `json:"date_of_birth" validate:"required,date"`
	Salary      decimal.Decimal `json:"salary"`
	PhotoPath   *string         `json:"photo_path,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, validateDateOfBirth(&r.DateOfBirth)...)
	errs = append(errs, validateSalary("salary", &r.Salary)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,notblank,min=2,max=255"`
	Age         *int             `json:"age,omitempty" validate:"omitempty,gte=18,lte=100"`
	Designation *string          `json:"designation,omitempty" validate:"omitempty,notblank,min=2,max=255"`
	HiringDate  *string          `json:"hiring_date,omitempty" validate:"omitempty,date"`
	DateOfBirth *string          `json:"date_of_birth,omitempty" validate:"omitempty,date"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, validateDateOfBirth(r.DateOfBirth)...)
	errs = append(errs, validateSalary("salary", r.Salary)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.Name == nil && r.Age == nil && r.Designation == nil &&
		r.HiringDate == nil && r.DateOfBirth == nil && r.Salary == nil
}

// ToChanges parses the request into a partial update.
func (r *UpdateEmployeeRequest) ToChanges() (Changes, error) {
	changes := Changes{
		Name:        r.Name,
		Age:         r.Age,
		Designation: r.Designation,
		Salary:      r.Salary,
	}
	if r.HiringDate != nil {
		d, err := validator.ParseDate(*r.HiringDate)
		if err != nil {
			return Changes{}, ErrInvalidDateFormat
		}
		changes.HiringDate = &d
	}
	if r.DateOfBirth != nil {
		d, err := validator.ParseDate(*r.DateOfBirth)
		if err != nil {
			return Changes{}, ErrInvalidDateFormat
		}
		changes.DateOfBirth = &d
	}
	return changes, nil
}

type EmployeeFilter struct {
	Page   int    `json:"page" validate:"gte=1"`
	Limit  int    `json:"limit" validate:"gte=1,lte=100"`
	Search string `json:"search" validate:"max=255"`
}

func (f *EmployeeFilter) Validate() error {
	if errs := validator.Struct(f); len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryRangeRequest struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func (r *SalaryRangeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Min.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "min", Message: "must not be negative"})
	}
	if r.Max.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HiringDateRangeRequest struct {
	From string `json:"from" validate:"required,date"`
	To   string `json:"to" validate:"required,date"`
}

func (r *HiringDateRangeRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Age         int             `json:"age"`
	Designation string          `json:"designation"`
	HiringDate  string          `json:"hiring_date"`
	DateOfBirth string          `json:"date_of_birth"`
	Salary      decimal.Decimal `json:"salary"`
	PhotoPath   *string         `json:"photo_path"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Age:         e.Age,
		Designation: e.Designation,
		HiringDate:  e.HiringDate.Format(validator.DateLayout),
		DateOfBirth: e.DateOfBirth.Format(validator.DateLayout),
		Salary:      e.Salary,
		PhotoPath:   e.PhotoPath,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func NewEmployeeResponses(employees []Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, NewEmployeeResponse(e))
	}
	return responses
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse    `json:"data"`
	Pagination pagination.Pagination `json:"pagination"`
}

func validateDateOfBirth(dob *string) validator.ValidationErrors {
	if dob == nil {
		return nil
	}
	d, err := validator.ParseDate(*dob)
	if err != nil {
		// format failures are reported by the struct tags
		return nil
	}
	if !d.Before(validator.Today()) {
		return validator.ValidationErrors{{Field: "date_of_birth", Message: "must be in the past"}}
	}
	return nil
}

func validateSalary(field string, salary *decimal.Decimal) validator.ValidationErrors {
	if salary == nil {
		return nil
	}
	if !salary.IsPositive() {
		return validator.ValidationErrors{{Field: field, Message: "must be a positive number"}}
	}
	if !salary.Equal(salary.Round(2)) {
		return validator.ValidationErrors{{Field: field, Message: "must have at most 2 decimal places"}}
	}
	return nil
}
