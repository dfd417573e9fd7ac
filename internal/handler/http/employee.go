package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const photoField = "photo"

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	RestoreEmployee(w http.ResponseWriter, r *http.Request)
	RemovePhoto(w http.ResponseWriter, r *http.Request)
	GetByDesignation(w http.ResponseWriter, r *http.Request)
	GetBySalaryRange(w http.ResponseWriter, r *http.Request)
	GetByHiringDateRange(w http.ResponseWriter, r *http.Request)
	CountByDesignation(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	fileService     file.FileService
	maxUploadSize   int64
}

func NewEmployeeHandler(employeeService employee.EmployeeService, fileService file.FileService, maxUploadSize int64) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		fileService:     fileService,
		maxUploadSize:   maxUploadSize,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := employee.EmployeeFilter{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.GetAllEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, "Employees retrieved successfully", result.Data, response.NewMeta(result.Pagination))
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetEmployeeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee retrieved successfully", result)
}

// CreateEmployee implements EmployeeHandler. Accepts JSON, or multipart form
// fields with an optional photo.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	var photo multipart.File
	var photoHeader *multipart.FileHeader

	if isMultipart(r) {
		form, err := h.parseForm(w, r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if err := form.toCreateRequest(&req); err != nil {
			response.HandleError(w, err)
			return
		}
		photo, photoHeader = form.photo, form.photoHeader
		if photo != nil {
			defer photo.Close()
		}
	} else {
		// Regular JSON request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		req.PhotoPath = nil
	}

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var uploaded string
	if photo != nil {
		path, err := h.fileService.UploadEmployeePhoto(r.Context(), photo, photoHeader.Filename)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		uploaded = path
		req.PhotoPath = &uploaded
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		h.discardUpload(r.Context(), uploaded)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler. Supplied fields are updated; an
// attached photo replaces the current one.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req employee.UpdateEmployeeRequest
	var photo multipart.File
	var photoHeader *multipart.FileHeader

	if isMultipart(r) {
		form, err := h.parseForm(w, r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if err := form.toUpdateRequest(&req); err != nil {
			response.HandleError(w, err)
			return
		}
		photo, photoHeader = form.photo, form.photoHeader
		if photo != nil {
			defer photo.Close()
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if req.IsEmpty() && photo == nil {
		response.HandleError(w, employee.ErrNoFieldsToUpdate)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var uploaded string
	if photo != nil {
		path, err := h.fileService.UploadEmployeePhoto(r.Context(), photo, photoHeader.Filename)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		uploaded = path
	}

	var (
		result employee.EmployeeResponse
		err    error
	)
	switch {
	case uploaded != "" && !req.IsEmpty():
		result, err = h.employeeService.UpdateEmployeeWithPhoto(r.Context(), id, req, uploaded)
	case uploaded != "":
		result, err = h.employeeService.UpdateEmployeePhoto(r.Context(), id, uploaded)
	default:
		result, err = h.employeeService.UpdateEmployee(r.Context(), id, req)
	}
	if err != nil {
		h.discardUpload(r.Context(), uploaded)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// RestoreEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) RestoreEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.RestoreEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee restored successfully", result)
}

// RemovePhoto implements EmployeeHandler
func (h *employeeHandlerImpl) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.RemoveEmployeePhoto(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee photo removed successfully", result)
}

// GetByDesignation implements EmployeeHandler
func (h *employeeHandlerImpl) GetByDesignation(w http.ResponseWriter, r *http.Request) {
	designation, err := url.PathUnescape(chi.URLParam(r, "designation"))
	if err != nil || strings.TrimSpace(designation) == "" {
		response.BadRequest(w, "Designation is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployeesByDesignation(r.Context(), designation)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employees retrieved successfully", result)
}

// GetBySalaryRange implements EmployeeHandler
func (h *employeeHandlerImpl) GetBySalaryRange(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	var req employee.SalaryRangeRequest

	for _, p := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{"min", &req.Min},
		{"max", &req.Max},
	} {
		raw := r.URL.Query().Get(p.key)
		if raw == "" {
			errs = append(errs, validator.ValidationError{Field: p.key, Message: p.key + " is required"})
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: p.key, Message: p.key + " must be a number"})
			continue
		}
		*p.dst = d
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.GetEmployeesBySalaryRange(r.Context(), req.Min, req.Max)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employees retrieved successfully", result)
}

// GetByHiringDateRange implements EmployeeHandler
func (h *employeeHandlerImpl) GetByHiringDateRange(w http.ResponseWriter, r *http.Request) {
	req := employee.HiringDateRangeRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.GetEmployeesByHiringDateRange(r.Context(), req.From, req.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employees retrieved successfully", result)
}

// CountByDesignation implements EmployeeHandler
func (h *employeeHandlerImpl) CountByDesignation(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetEmployeeCountByDesignation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee count by designation retrieved successfully", result)
}

// discardUpload removes a photo stored for a request that then failed.
func (h *employeeHandlerImpl) discardUpload(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := h.fileService.DeleteFile(ctx, path); err != nil {
		slog.Error("Failed to remove orphaned photo", "path", path, "error", err)
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

type employeeForm struct {
	values      url.Values
	photo       multipart.File
	photoHeader *multipart.FileHeader
}

func (h *employeeHandlerImpl) parseForm(w http.ResponseWriter, r *http.Request) (*employeeForm, error) {
	// leave room for the text fields next to the photo
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, file.ErrFileTooLarge
		}
		slog.Error("Failed to parse multipart form", "error", err)
		return nil, validator.ValidationErrors{{Field: photoField, Message: "failed to parse form data"}}
	}

	form := &employeeForm{values: url.Values(r.MultipartForm.Value)}

	f, header, err := r.FormFile(photoField)
	switch {
	case err == nil:
		if header.Size > h.maxUploadSize {
			f.Close()
			return nil, file.ErrFileTooLarge
		}
		form.photo, form.photoHeader = f, header
	case errors.Is(err, http.ErrMissingFile):
	default:
		return nil, validator.ValidationErrors{{Field: photoField, Message: "invalid file upload"}}
	}
	return form, nil
}

func (f *employeeForm) str(key string) *string {
	if _, ok := f.values[key]; !ok {
		return nil
	}
	v := f.values.Get(key)
	return &v
}

func (f *employeeForm) toUpdateRequest(req *employee.UpdateEmployeeRequest) error {
	var errs validator.ValidationErrors

	req.Name = f.str("name")
	req.Designation = f.str("designation")
	req.HiringDate = f.str("hiring_date")
	req.DateOfBirth = f.str("date_of_birth")

	if raw := f.str("age"); raw != nil {
		age, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "age", Message: "age must be a whole number"})
		} else {
			req.Age = &age
		}
	}
	if raw := f.str("salary"); raw != nil {
		salary, err := decimal.NewFromString(strings.TrimSpace(*raw))
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be a number"})
		} else {
			req.Salary = &salary
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *employeeForm) toCreateRequest(req *employee.CreateEmployeeRequest) error {
	var partial employee.UpdateEmployeeRequest
	if err := f.toUpdateRequest(&partial); err != nil {
		return err
	}
	if partial.Name != nil {
		req.Name = *partial.Name
	}
	if partial.Age != nil {
		req.Age = *partial.Age
	}
	if partial.Designation != nil {
		req.Designation = *partial.Designation
	}
	if partial.HiringDate != nil {
		req.HiringDate = *partial.HiringDate
	}
	if partial.DateOfBirth != nil {
		req.DateOfBirth = *partial.DateOfBirth
	}
	if partial.Salary != nil {
		req.Salary = *partial.Salary
	}
	return nil
}

// pageParams reads page and limit, defaulting to the first page of 10.
func pageParams(r *http.Request) (int, int, error) {
	var errs validator.ValidationErrors
	values := map[string]int{"page": 1, "limit": 10}

	for _, key := range []string{"page", "limit"} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: key, Message: key + " must be a whole number"})
			continue
		}
		values[key] = n
	}
	if len(errs) > 0 {
		return 0, 0, errs
	}
	return values["page"], values["limit"], nil
}
