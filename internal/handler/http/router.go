package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const appVersion = "v1.0.0"

type RouterOptions struct {
	Env            string
	LogLevel       slog.Level
	CORSOrigins    []string
	UploadsBaseURL string
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Upload     UploadHandler
}

func NewRouter(JWTService jwt.Service, handlers Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-admin-backend"),
		slog.String("version", appVersion),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: !allowsAnyOrigin(opts.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.SuccessWithMessage(w, "Server is running", map[string]string{
			"status":  "ok",
			"version": appVersion,
		})
	})

	uploadsBase := "/" + strings.Trim(opts.UploadsBaseURL, "/")
	r.Get(uploadsBase+"/*", handlers.Upload.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

				r.Get("/me", handlers.Auth.Me)
				r.Put("/change-password", handlers.Auth.ChangePassword)
				r.Post("/refresh", handlers.Auth.RefreshToken)
				r.Post("/logout", handlers.Auth.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", handlers.Employee.ListEmployees)
				r.Post("/", handlers.Employee.CreateEmployee)
				r.Get("/stats/count-by-designation", handlers.Employee.CountByDesignation)
				r.Get("/designation/{designation}", handlers.Employee.GetByDesignation)
				r.Get("/salary-range", handlers.Employee.GetBySalaryRange)
				r.Get("/hiring-date-range", handlers.Employee.GetByHiringDateRange)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.ValidUUIDParam("id"))
					r.Get("/", handlers.Employee.GetEmployee)
					r.Put("/", handlers.Employee.UpdateEmployee)
					r.Delete("/", handlers.Employee.DeleteEmployee)
					r.Post("/restore", handlers.Employee.RestoreEmployee)
					r.Delete("/photo", handlers.Employee.RemovePhoto)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", handlers.Attendance.List)
				r.Post("/", handlers.Attendance.Upsert)
				r.Post("/bulk", handlers.Attendance.BulkUpsert)
				r.Get("/range", handlers.Attendance.GetByDateRange)
				r.Get("/report/monthly", handlers.Attendance.MonthlyReport)
				r.Get("/date/{date}", handlers.Attendance.GetByDate)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ValidUUIDParam("employeeId"))
					r.Get("/employee/{employeeId}", handlers.Attendance.GetByEmployee)
					r.Get("/stats/{employeeId}", handlers.Attendance.Statistics)
					r.Get("/late-count/{employeeId}", handlers.Attendance.LateCount)
					r.Get("/exists/{employeeId}/{date}", handlers.Attendance.Exists)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.ValidUUIDParam("id"))
					r.Get("/", handlers.Attendance.Get)
					r.Put("/", handlers.Attendance.Update)
					r.Delete("/", handlers.Attendance.Delete)
				})
			})
		})
	})
	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
