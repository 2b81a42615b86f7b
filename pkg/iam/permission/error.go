package permission

import (
	"net/http"

	"github.com/maprecruit/platform/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PERMISSION")

// Error codes
var (
	CodePathNotFound     = ErrRegistry.Register("PATH_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Permission path does not exist")
	CodeInvalidDocument  = ErrRegistry.Register("INVALID_DOCUMENT", errx.TypeValidation, http.StatusBadRequest, "Permission document is malformed")
	CodeTemplateNotFound = ErrRegistry.Register("TEMPLATE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Role template not found")
	CodeRoleNotFound     = ErrRegistry.Register("ROLE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Role has no permission tree")
	CodeRoleExists       = ErrRegistry.Register("ROLE_EXISTS", errx.TypeConflict, http.StatusConflict, "Role already has a permission tree")
)

// Helper functions
func ErrPathNotFound() *errx.Error {
	return ErrRegistry.New(CodePathNotFound)
}

func ErrInvalidDocument() *errx.Error {
	return ErrRegistry.New(CodeInvalidDocument)
}

func ErrTemplateNotFound() *errx.Error {
	return ErrRegistry.New(CodeTemplateNotFound)
}

func ErrRoleNotFound() *errx.Error {
	return ErrRegistry.New(CodeRoleNotFound)
}

func ErrRoleExists() *errx.Error {
	return ErrRegistry.New(CodeRoleExists)
}
