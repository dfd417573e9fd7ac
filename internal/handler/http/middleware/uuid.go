package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// ValidUUIDParam rejects requests whose named URL parameter is not a UUID.
func ValidUUIDParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validator.IsValidUUID(chi.URLParam(r, name)) {
				response.ValidationError(w, map[string]string{name: name + " must be a valid UUID"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
