package employee

import "github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound        = apperror.New(apperror.KindNotFound, "employee not found")
	ErrDeletedEmployeeNotFound = apperror.New(apperror.KindNotFound, "deleted employee not found")
	ErrPhotoNotFound           = apperror.New(apperror.KindNotFound, "employee photo not found")
	ErrAgeMismatch             = apperror.New(apperror.KindConflict, "age does not match date of birth")
	ErrFutureHiringDate        = apperror.New(apperror.KindConflict, "hiring date cannot be in the future")
	ErrInvalidSalaryRange      = apperror.New(apperror.KindBadRequest, "minimum salary cannot be greater than maximum salary")
	ErrInvalidDateRange        = apperror.New(apperror.KindBadRequest, "start date cannot be after end date")
	ErrInvalidDateFormat       = apperror.New(apperror.KindBadRequest, "invalid date format, expected YYYY-MM-DD")
	ErrPhotoDeleteFailed       = apperror.New(apperror.KindInternal, "failed to delete employee photo")
	ErrNoFieldsToUpdate        = apperror.New(apperror.KindBadRequest, "at least one field must be provided for update")
)
