package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation errors",
			err:        validator.ValidationErrors{{Field: "name", Message: "name is required"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "Validation failed",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("lookup: %w", apperror.NotFound("employee not found")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "employee not found",
		},
		{
			name:       "conflict",
			err:        apperror.Conflict("age does not match date of birth"),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantMsg:    "age does not match date of birth",
		},
		{
			name:       "unique violation",
			err:        fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantMsg:    "Resource already exists",
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: "23503"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Referenced resource does not exist",
		},
		{
			name:       "data exception",
			err:        &pgconn.PgError{Code: "22007"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Invalid data format",
		},
		{
			name:       "untyped",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}

func TestHandleError_DetailsAndDebug(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, apperror.New(apperror.KindConflict, "age mismatch").WithDetails(map[string]string{"age": "30"}))
	assert.Equal(t, "30", decode(t, rec).Error.Details["age"])

	SetDebug(true)
	defer SetDebug(false)

	rec = httptest.NewRecorder()
	HandleError(rec, errors.New("connection reset"))
	assert.Equal(t, "connection reset", decode(t, rec).Error.Message)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, "ok", []string{}, &Meta{Page: 4, Limit: 10, Total: 23, TotalPages: 3})

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	meta := raw["meta"].(map[string]interface{})
	assert.Equal(t, float64(23), meta["total"])
	assert.Equal(t, float64(3), meta["totalPages"])
	assert.Equal(t, []interface{}{}, raw["data"])
}
