package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	response.SetDebug(cfg.IsDevelopment())

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	transactor := postgresql.NewTransactor(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadPath)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage, file.Options{
		MaxFileSize:  cfg.Storage.MaxFileSize,
		MaxDimension: cfg.Storage.PhotoMaxDimension,
	})

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authService := serviceAuth.NewAuthService(userRepo, JWTService, cfg.Auth.SaltRounds)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService, transactor)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		transactor,
		cfg.Attendance.LateThreshold,
	)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, fileService, cfg.Storage.MaxFileSize),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Upload:     appHTTP.NewUploadHandler(fileService),
	}, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		CORSOrigins:    cfg.App.CORSOrigins,
		UploadsBaseURL: cfg.Storage.BaseURL,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
