package response

import (
	"errors"
	"net/http"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/domain/appconfig"
	"github.com/confidence-group/hr-analytics-go/internal/domain/auth"
	"github.com/confidence-group/hr-analytics-go/internal/domain/cxo"
	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/role"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/spreadsheet"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthDomainForbidden):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrCannotDeleteAdmin):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Role domain errors
	case errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, role.ErrRoleExists):
		Conflict(w, "Role name already exists")
	case errors.Is(err, role.ErrRoleInUse):
		Conflict(w, err.Error())

	// Upload domain errors
	case errors.Is(err, upload.ErrFileNotFound):
		NotFound(w, "Uploaded file not found")
	case errors.Is(err, upload.ErrEmptyUpload):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, upload.ErrInvalidKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, spreadsheet.ErrUnsupportedFileType):
		BadRequest(w, err.Error(), nil)

	// Analytics and hierarchy errors
	case errors.Is(err, analytics.ErrInvalidGroupBy), errors.Is(err, analytics.ErrInvalidODGroupBy):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, hierarchy.ErrNoRoster):
		NotFound(w, err.Error())

	// Settings errors
	case errors.Is(err, appconfig.ErrSettingNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, cxo.ErrNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, cxo.ErrEmailRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, cxo.ErrDuplicate):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
