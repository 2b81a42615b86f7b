package campaign

import (
	"net/http"

	"github.com/maprecruit/platform/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CAMPAIGN")

// Error codes
var (
	CodeCampaignNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Campaign not found")
	CodeCampaignAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Campaign already exists")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeCannotLaunch            = ErrRegistry.Register("CANNOT_LAUNCH", errx.TypeBusiness, http.StatusBadRequest, "Campaign cannot be launched in current state")
	CodeUnauthorizedUpdate      = ErrRegistry.Register("UNAUTHORIZED_UPDATE", errx.TypeAuthorization, http.StatusForbidden, "Unauthorized to update this campaign")
)

// Helper functions
func ErrCampaignNotFound() *errx.Error {
	return ErrRegistry.New(CodeCampaignNotFound)
}

func ErrCampaignAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCampaignAlreadyExists)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrCannotLaunch() *errx.Error {
	return ErrRegistry.New(CodeCannotLaunch)
}

func ErrUnauthorizedUpdate() *errx.Error {
	return ErrRegistry.New(CodeUnauthorizedUpdate)
}
