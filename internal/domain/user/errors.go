package user

import "github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound    = apperror.New(apperror.KindNotFound, "user not found")
	ErrUserEmailExists = apperror.New(apperror.KindConflict, "email already registered")
)
