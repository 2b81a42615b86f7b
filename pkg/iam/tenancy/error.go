package tenancy

import (
	"net/http"

	"github.com/maprecruit/platform/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("TENANCY")

// Error codes
var (
	CodeCompanyNotFound  = ErrRegistry.Register("COMPANY_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeClientNotFound   = ErrRegistry.Register("CLIENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Client not found")
	CodePermissionDenied = ErrRegistry.Register("PERMISSION_DENIED", errx.TypeAuthorization, http.StatusForbidden, "Not authorized for the requested scope")
	CodeClientOutOfScope = ErrRegistry.Register("CLIENT_OUT_OF_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Client is not within the target company's scope")
	CodeElevationDenied  = ErrRegistry.Register("ELEVATION_DENIED", errx.TypeAuthorization, http.StatusForbidden, "Acting role is not senior to the target role")
)

// Helper functions
func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrClientNotFound() *errx.Error {
	return ErrRegistry.New(CodeClientNotFound)
}

func ErrPermissionDenied() *errx.Error {
	return ErrRegistry.New(CodePermissionDenied)
}

func ErrClientOutOfScope() *errx.Error {
	return ErrRegistry.New(CodeClientOutOfScope)
}

func ErrElevationDenied() *errx.Error {
	return ErrRegistry.New(CodeElevationDenied)
}
