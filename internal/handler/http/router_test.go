package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	handlerTestExp    = "1h"
)

type stubAuthService struct {
	auth.AuthService
	profileID string
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{User: user.Profile{ID: uuid.NewString(), Email: req.Email, Name: req.Name}, Token: "token"}, nil
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

func (s *stubAuthService) GetProfile(ctx context.Context, userID string) (user.Profile, error) {
	s.profileID = userID
	return user.Profile{ID: userID, Email: "hr@example.com", Name: "HR Admin"}, nil
}

type stubEmployeeService struct {
	employee.EmployeeService
	createErr      error
	photoErr       error
	filter         employee.EmployeeFilter
	fieldsUpdated  bool
	photoPathSaved string
}

func (s *stubEmployeeService) GetAllEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	s.filter = filter
	return employee.ListEmployeeResponse{
		Data:       []employee.EmployeeResponse{{ID: uuid.NewString(), Name: "Alice"}},
		Pagination: pagination.New(filter.Page, filter.Limit, 21),
	}, nil
}

func (s *stubEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if s.createErr != nil {
		return employee.EmployeeResponse{}, s.createErr
	}
	return employee.EmployeeResponse{ID: uuid.NewString(), Name: req.Name, PhotoPath: req.PhotoPath}, nil
}

func (s *stubEmployeeService) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	s.fieldsUpdated = true
	return employee.EmployeeResponse{ID: id}, nil
}

func (s *stubEmployeeService) UpdateEmployeePhoto(ctx context.Context, id string, photoPath string) (employee.EmployeeResponse, error) {
	if s.photoErr != nil {
		return employee.EmployeeResponse{}, s.photoErr
	}
	s.photoPathSaved = photoPath
	return employee.EmployeeResponse{ID: id, PhotoPath: &photoPath}, nil
}

func (s *stubEmployeeService) UpdateEmployeeWithPhoto(ctx context.Context, id string, req employee.UpdateEmployeeRequest, photoPath string) (employee.EmployeeResponse, error) {
	if s.photoErr != nil {
		return employee.EmployeeResponse{}, s.photoErr
	}
	s.fieldsUpdated = true
	s.photoPathSaved = photoPath
	return employee.EmployeeResponse{ID: id, Name: *req.Name, PhotoPath: &photoPath}, nil
}

type stubAttendanceService struct {
	attendance.AttendanceService
}

func (s *stubAttendanceService) CheckAttendanceExists(ctx context.Context, employeeID string, date string) (bool, error) {
	return date == "2026-02-02", nil
}

func (s *stubAttendanceService) GetLateArrivalsCount(ctx context.Context, employeeID string, startDate, endDate string) (attendance.LateCountResponse, error) {
	return attendance.LateCountResponse{EmployeeID: employeeID, StartDate: startDate, EndDate: endDate, LateCount: 3}, nil
}

type stubFileService struct {
	files   map[string][]byte
	deleted []string
}

func (s *stubFileService) UploadEmployeePhoto(ctx context.Context, file io.Reader, filename string) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	path := "employees/" + filename
	s.files[path] = content
	return path, nil
}

func (s *stubFileService) DeleteFile(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	delete(s.files, path)
	return nil
}

func (s *stubFileService) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *stubFileService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	content, ok := s.files[path]
	if !ok {
		return nil, storage.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

type testServer struct {
	handler    http.Handler
	jwtService jwt.Service
	auth       *stubAuthService
	employees  *stubEmployeeService
	files      *stubFileService
}

func newTestServer() *testServer {
	ts := &testServer{
		jwtService: jwt.NewJWTService(handlerTestSecret, handlerTestExp),
		auth:       &stubAuthService{},
		employees:  &stubEmployeeService{},
		files:      &stubFileService{files: map[string][]byte{}},
	}
	ts.handler = NewRouter(ts.jwtService, Handlers{
		Auth:       NewAuthHandler(ts.auth),
		Employee:   NewEmployeeHandler(ts.employees, ts.files, 1<<20),
		Attendance: NewAttendanceHandler(&stubAttendanceService{}),
		Upload:     NewUploadHandler(ts.files),
	}, RouterOptions{
		Env:            "test",
		CORSOrigins:    []string{"*"},
		UploadsBaseURL: "/uploads",
	})
	return ts
}

func (ts *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := ts.jwtService.GenerateToken(jwt.Claims{ID: userID, Email: "hr@example.com", Name: "HR Admin"})
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) authed(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.NewString()))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestRouter_Health(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/employees", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token is required", decode(t, rec).Error.Message)

	req := httptest.NewRequest(http.MethodGet, "/api/attendance", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = ts.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.ErrInvalidToken.Message, decode(t, rec).Error.Message)

	other := jwt.NewJWTService("another-secret", handlerTestExp)
	token, _, err := other.GenerateToken(jwt.Claims{ID: uuid.NewString()})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, ts.do(req).Code)
}

func TestAuthHandler_RegisterLoginMe(t *testing.T) {
	ts := newTestServer()

	body := `{"email":"HR@Example.com","password":"Password123","name":"HR Admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := ts.do(req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"bad","password":"short","name":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec = ts.do(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "email")
	assert.Contains(t, resp.Error.Details, "password")
	assert.Contains(t, resp.Error.Details, "name")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"hr@example.com","password":"Wrong1234"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = ts.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userID := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, userID))
	rec = ts.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, ts.auth.profileID)
}

func TestEmployeeHandler_List(t *testing.T) {
	ts := newTestServer()

	rec := ts.authed(t, http.MethodGet, "/api/employees?page=2&limit=5&search=%20ali%20", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, response.Meta{Page: 2, Limit: 5, Total: 21, TotalPages: 5}, *resp.Meta)
	assert.Equal(t, "ali", ts.employees.filter.Search)

	rec = ts.authed(t, http.MethodGet, "/api/employees?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "page")
}

func TestEmployeeHandler_RejectsMalformedID(t *testing.T) {
	ts := newTestServer()

	rec := ts.authed(t, http.MethodGet, "/api/employees/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "id")
}

func TestEmployeeHandler_UpdateWithoutFields(t *testing.T) {
	ts := newTestServer()

	rec := ts.authed(t, http.MethodPut, "/api/employees/"+uuid.NewString(), strings.NewReader(`{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, employee.ErrNoFieldsToUpdate.Message, decode(t, rec).Error.Message)
}

func multipartEmployee(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"name":          "Alice",
		"age":           "30",
		"designation":   "Engineer",
		"hiring_date":   "2022-03-01",
		"date_of_birth": time.Now().AddDate(-30, -1, 0).Format("2006-01-02"),
		"salary":        "5000",
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestEmployeeHandler_CreateMultipart(t *testing.T) {
	ts := newTestServer()

	body, contentType := multipartEmployee(t, "alice.png")
	req := httptest.NewRequest(http.MethodPost, "/api/employees", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.NewString()))
	rec := ts.do(req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, ts.files.files, "employees/alice.png")
	assert.Empty(t, ts.files.deleted)
}

func TestEmployeeHandler_CreateFailureDiscardsPhoto(t *testing.T) {
	ts := newTestServer()
	ts.employees.createErr = employee.ErrAgeMismatch

	body, contentType := multipartEmployee(t, "alice.png")
	req := httptest.NewRequest(http.MethodPost, "/api/employees", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.NewString()))
	rec := ts.do(req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []string{"employees/alice.png"}, ts.files.deleted)
	assert.Empty(t, ts.files.files)
}

func TestEmployeeHandler_UpdateMultipartWithPhoto(t *testing.T) {
	ts := newTestServer()
	id := uuid.NewString()

	body, contentType := multipartEmployee(t, "alice.png")
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.NewString()))
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, ts.employees.fieldsUpdated)
	assert.Equal(t, "employees/alice.png", ts.employees.photoPathSaved)
	assert.Empty(t, ts.files.deleted)
}

func TestEmployeeHandler_UpdatePhotoFailureKeepsFields(t *testing.T) {
	ts := newTestServer()
	ts.employees.photoErr = employee.ErrPhotoDeleteFailed
	id := uuid.NewString()

	body, contentType := multipartEmployee(t, "alice.png")
	req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token(t, uuid.NewString()))
	rec := ts.do(req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, ts.employees.fieldsUpdated, "fields are not saved on their own")
	assert.Empty(t, ts.employees.photoPathSaved)
	assert.Equal(t, []string{"employees/alice.png"}, ts.files.deleted)
}

func TestAttendanceHandler_StaticRoutes(t *testing.T) {
	ts := newTestServer()
	employeeID := uuid.NewString()

	rec := ts.authed(t, http.MethodGet, "/api/attendance/exists/"+employeeID+"/2026-02-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"exists": true}, decode(t, rec).Data)

	rec = ts.authed(t, http.MethodGet, "/api/attendance/late-count/"+employeeID+"?startDate=2026-02-01&endDate=2026-02-28", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["late_count"])

	rec = ts.authed(t, http.MethodGet, "/api/attendance/late-count/"+employeeID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decode(t, rec).Error.Details
	assert.Contains(t, details, "startDate")
	assert.Contains(t, details, "endDate")

	rec = ts.authed(t, http.MethodGet, "/api/attendance/range", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "startDate")

	rec = ts.authed(t, http.MethodGet, "/api/attendance/report/monthly", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "month")

	rec = ts.authed(t, http.MethodGet, "/api/attendance/stats/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "employeeId")
}

func TestAttendanceHandler_UpsertValidation(t *testing.T) {
	ts := newTestServer()

	rec := ts.authed(t, http.MethodPost, "/api/attendance", strings.NewReader(`{"employee_id":"x","date":"02-02-2026"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decode(t, rec).Error.Details
	assert.Contains(t, details, "employee_id")
	assert.Contains(t, details, "date")
	assert.Contains(t, details, "check_in_time")
}

func TestUploadHandler_Serve(t *testing.T) {
	ts := newTestServer()
	ts.files.files["employees/alice.png"] = []byte("png bytes")

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/uploads/employees/alice.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png bytes", rec.Body.String())

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/uploads/employees/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
