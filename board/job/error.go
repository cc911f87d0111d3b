package job

import (
	"net/http"

	"github.com/boardwalk-hq/boardwalk/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeUnauthenticated   = ErrRegistry.Register("UNAUTHENTICATED", errx.TypeAuthentication, http.StatusUnauthorized, "Authentication required")
	CodeInvalidID         = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Job id is malformed")
	CodeValidationFailed  = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Job data failed validation")
	CodeJobNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeForbidden         = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Job belongs to another user")
	CodeCompanyNotAllowed = ErrRegistry.Register("COMPANY_NOT_ALLOWED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Company is not allowed on this board")
	CodeCompanyLocked     = ErrRegistry.Register("COMPANY_LOCKED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Company can no longer be changed")
	CodeDuplicatePosting  = ErrRegistry.Register("DUPLICATE_POSTING", errx.TypeConflict, http.StatusConflict, "A matching posting already exists")
	CodeEditWindowExpired = ErrRegistry.Register("EDIT_WINDOW_EXPIRED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Edit window has expired")
	CodeRecentlyUpdated   = ErrRegistry.Register("RECENTLY_UPDATED", errx.TypeConflict, http.StatusConflict, "Job was updated too recently to delete")
	CodeInvalidJobType    = ErrRegistry.Register("INVALID_JOB_TYPE", errx.TypeValidation, http.StatusBadRequest, "Job type is not recognized")
	CodeInvalidOrderField = ErrRegistry.Register("INVALID_ORDER_FIELD", errx.TypeValidation, http.StatusBadRequest, "Order field is not sortable")
	CodeMissingUserID     = ErrRegistry.Register("MISSING_USER_ID", errx.TypeValidation, http.StatusBadRequest, "User id is required")
	CodeDeleteFailed      = ErrRegistry.Register("DELETE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job could not be deleted")
	CodeAdminOnly         = ErrRegistry.Register("ADMIN_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Administrator privileges required")
	CodeRepository        = ErrRegistry.Register("REPOSITORY_ERROR", errx.TypeInternal, http.StatusInternalServerError, "Storage operation failed")
)

// Helper functions
func ErrUnauthenticated() *errx.Error {
	return ErrRegistry.New(CodeUnauthenticated)
}

func ErrInvalidJobID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrCompanyNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotAllowed)
}

func ErrCompanyLocked() *errx.Error {
	return ErrRegistry.New(CodeCompanyLocked)
}

func ErrDuplicatePosting() *errx.Error {
	return ErrRegistry.New(CodeDuplicatePosting)
}

func ErrEditWindowExpired() *errx.Error {
	return ErrRegistry.New(CodeEditWindowExpired)
}

func ErrRecentlyUpdated() *errx.Error {
	return ErrRegistry.New(CodeRecentlyUpdated)
}

func ErrInvalidJobType() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobType)
}

func ErrInvalidOrderField() *errx.Error {
	return ErrRegistry.New(CodeInvalidOrderField)
}

func ErrMissingUserID() *errx.Error {
	return ErrRegistry.New(CodeMissingUserID)
}

func ErrDeleteFailed() *errx.Error {
	return ErrRegistry.New(CodeDeleteFailed)
}

func ErrAdminOnly() *errx.Error {
	return ErrRegistry.New(CodeAdminOnly)
}

func ErrRepository(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeRepository, cause)
}
