package sharing

import (
	"net/http"

	"github.com/maprecruit/platform/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SHARING")

// Error codes
var (
	CodeInvalidAccessSettings = ErrRegistry.Register("INVALID_SETTINGS", errx.TypeValidation, http.StatusBadRequest, "Access settings are malformed")
	CodeDuplicateShareRule    = ErrRegistry.Register("DUPLICATE_RULE", errx.TypeValidation, http.StatusBadRequest, "A share rule already exists for this entity")
	CodeSettingsNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Access settings not found")
	CodeAccessDenied          = ErrRegistry.Register("ACCESS_DENIED", errx.TypeAuthorization, http.StatusForbidden, "Access denied")
	CodeEditDenied            = ErrRegistry.Register("EDIT_DENIED", errx.TypeAuthorization, http.StatusForbidden, "Edit permission denied")
)

// Helper functions
func ErrInvalidAccessSettings() *errx.Error {
	return ErrRegistry.New(CodeInvalidAccessSettings)
}

func ErrDuplicateShareRule() *errx.Error {
	return ErrRegistry.New(CodeDuplicateShareRule)
}

func ErrSettingsNotFound() *errx.Error {
	return ErrRegistry.New(CodeSettingsNotFound)
}

func ErrAccessDenied() *errx.Error {
	return ErrRegistry.New(CodeAccessDenied)
}

func ErrEditDenied() *errx.Error {
	return ErrRegistry.New(CodeEditDenied)
}
