package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	BulkUpsert(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
	GetByDateRange(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
	LateCount(w http.ResponseWriter, r *http.Request)
	Exists(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	req := attendance.AttendanceFilterRequest{
		EmployeeID: q.Get("employee_id"),
		Date:       q.Get("date"),
		From:       q.Get("from"),
		To:         q.Get("to"),
		Page:       page,
		Limit:      limit,
	}

	// Validate filter
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Search(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, "Attendance records retrieved successfully", result.Data, response.NewMeta(result.Pagination))
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendanceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record retrieved successfully", result)
}

// Upsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CreateOrUpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", result)
}

// BulkUpsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.BulkCreateOrUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance records saved successfully", result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.UpdateAttendance(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// GetByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendanceByEmployeeID(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance records retrieved successfully", result)
}

// GetByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendanceByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance records retrieved successfully", result)
}

// GetByDateRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := requiredRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetAttendanceByDateRange(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance records retrieved successfully", result)
}

// MonthlyReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.ValidationError(w, map[string]string{"month": "month is required"})
		return
	}

	var employeeID *string
	if id := r.URL.Query().Get("employee_id"); id != "" {
		if !validator.IsValidUUID(id) {
			response.ValidationError(w, map[string]string{"employee_id": "employee_id must be a valid UUID"})
			return
		}
		employeeID = &id
	}

	result, err := h.attendanceService.GetMonthlyReport(r.Context(), month, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly report generated successfully", result)
}

// Statistics implements AttendanceHandler.
func (h *attendanceHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	var startDate, endDate *string
	if v := r.URL.Query().Get("startDate"); v != "" {
		startDate = &v
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		endDate = &v
	}

	result, err := h.attendanceService.GetEmployeeStatistics(r.Context(), chi.URLParam(r, "employeeId"), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance statistics retrieved successfully", result)
}

// LateCount implements AttendanceHandler.
func (h *attendanceHandlerImpl) LateCount(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := requiredRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetLateArrivalsCount(r.Context(), chi.URLParam(r, "employeeId"), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late arrivals counted successfully", result)
}

// Exists implements AttendanceHandler.
func (h *attendanceHandlerImpl) Exists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.attendanceService.CheckAttendanceExists(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ExistsResponse{Exists: exists})
}

func requiredRange(r *http.Request) (string, string, error) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	var errs validator.ValidationErrors
	if startDate == "" {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate is required"})
	}
	if endDate == "" {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate is required"})
	}
	if len(errs) > 0 {
		return "", "", errs
	}
	return startDate, endDate, nil
}
