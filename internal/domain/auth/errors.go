package auth

import "github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials     = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrInvalidOldPassword     = apperror.New(apperror.KindUnauthorized, "old password is incorrect")
	ErrInvalidToken           = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
	ErrEmailAlreadyRegistered = apperror.New(apperror.KindConflict, "user with this email already exists")
	ErrUserNotFound           = apperror.New(apperror.KindNotFound, "user not found")
)
