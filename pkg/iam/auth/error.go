package auth

import (
	"net/http"

	"github.com/maprecruit/platform/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeInvalidToken    = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeMissingToken    = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Authorization token is missing")
	CodeTokenGeneration = ErrRegistry.Register("TOKEN_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
)

// Helper functions
func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrTokenGeneration() *errx.Error {
	return ErrRegistry.New(CodeTokenGeneration)
}
