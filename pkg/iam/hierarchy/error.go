package hierarchy

import (
	"net/http"

	"github.com/maprecruit/platform/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("HIERARCHY")

// Error codes
var (
	CodeServiceUnavailable = ErrRegistry.Register("SERVICE_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Role hierarchy service is unavailable")
	CodeFetchCancelled     = ErrRegistry.Register("FETCH_CANCELLED", errx.TypeExternal, http.StatusBadGateway, "Role hierarchy fetch was cancelled")
)

// Helper functions
func ErrServiceUnavailable() *errx.Error {
	return ErrRegistry.New(CodeServiceUnavailable)
}

func ErrFetchCancelled() *errx.Error {
	return ErrRegistry.New(CodeFetchCancelled)
}
