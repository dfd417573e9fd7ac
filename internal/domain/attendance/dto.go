package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required,uuid"`
	Date        string `json:"date" validate:"required,date"`
	CheckInTime string `json:"check_in_time" validate:"required"`
}

func (r *CreateAttendanceRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	CheckInTime *string `json:"check_in_time" validate:"required"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAttendanceRequest struct {
	Records []CreateAttendanceRequest `json:"records" validate:"required,min=1,max=500,dive"`
}

func (r *BulkAttendanceRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilterRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
	Date       string `json:"date" validate:"omitempty,date"`
	From       string `json:"from" validate:"omitempty,date"`
	To         string `json:"to" validate:"omitempty,date"`
	Page       int    `json:"page" validate:"gte=1"`
	Limit      int    `json:"limit" validate:"gte=1,lte=100"`
}

func (r *AttendanceFilterRequest) Validate() error {
	errs := validator.Struct(r)
	if r.From != "" && r.To != "" && r.From > r.To {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be on or after from"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToFilter converts the request into a repository filter.
func (r *AttendanceFilterRequest) ToFilter() (Filter, error) {
	filter := Filter{EmployeeID: r.EmployeeID}
	filter.Page, filter.Limit = pagination.Normalize(r.Page, r.Limit)

	for _, f := range []struct {
		raw string
		dst **time.Time
	}{
		{r.Date, &filter.Date},
		{r.From, &filter.From},
		{r.To, &filter.To},
	} {
		if f.raw == "" {
			continue
		}
		d, ok := validator.IsValidDate(f.raw)
		if !ok {
			return Filter{}, ErrInvalidDateFormat
		}
		*f.dst = &d
	}
	return filter, nil
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	CheckInTime  string    `json:"check_in_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date.Format(validator.DateLayout),
		CheckInTime: a.CheckInTime,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, NewAttendanceResponse(a))
	}
	return responses
}

func NewAttendanceWithEmployeeResponses(records []AttendanceWithEmployee) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		resp := NewAttendanceResponse(a.Attendance)
		resp.EmployeeName = a.EmployeeName
		responses = append(responses, resp)
	}
	return responses
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse  `json:"data"`
	Pagination pagination.Pagination `json:"pagination"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type LateCountResponse struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LateCount  int64  `json:"late_count"`
}
