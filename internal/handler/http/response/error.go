package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

// exposeInternal makes 500 responses carry the raw error message.
var exposeInternal bool

// SetDebug toggles raw error messages in 500 responses. Call once at startup.
func SetDebug(enabled bool) {
	exposeInternal = enabled
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindInternal {
			slog.Error("Request failed", "error", err)
		}
		Error(w, appErr.Status(), appErr.Kind.Code(), appErr.Message, appErr.Details)
		return
	}

	// Storage-layer surprises the services could not check up front
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			Conflict(w, "Resource already exists")
			return
		case pgErr.Code == "23503":
			BadRequest(w, "Referenced resource does not exist", nil)
			return
		case strings.HasPrefix(pgErr.Code, "22"):
			BadRequest(w, "Invalid data format", nil)
			return
		}
	}

	// Default
	slog.Error("Unhandled error", "error", err)
	if exposeInternal {
		InternalServerError(w, err.Error())
		return
	}
	InternalServerError(w, "An unexpected error occurred")
}
