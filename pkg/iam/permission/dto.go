package permission

import (
	"encoding/json"

	"github.com/maprecruit/platform/pkg/kernel"
)

// CreateRoleTreeRequest - DTO for instantiating a role tree from a template
type CreateRoleTreeRequest struct {
	RoleID   kernel.RoleID `json:"role_id" validate:"required"`
	Template string        `json:"template" validate:"required"`
}

// SetPermissionRequest - DTO for a point mutation of a role's tree
type SetPermissionRequest struct {
	Path  []string `json:"path" validate:"required"`
	Value bool     `json:"value"`
}

// SetCategoryMetaRequest - DTO for toggling a category's gate flags
type SetCategoryMetaRequest struct {
	Path    []string `json:"path"`
	Enabled bool     `json:"enabled"`
	Visible bool     `json:"visible"`
}

// CheckPermissionRequest - DTO for an effective-value lookup
type CheckPermissionRequest struct {
	Path []string `json:"path" validate:"required"`
}

// RoleTreeResponse - DTO returning a role's tree as its document form
type RoleTreeResponse struct {
	RoleID   kernel.RoleID   `json:"role_id"`
	Document json.RawMessage `json:"document"`
}

// CheckPermissionResponse - DTO returning an effective capability value
type CheckPermissionResponse struct {
	RoleID  kernel.RoleID `json:"role_id"`
	Path    []string      `json:"path"`
	Allowed bool          `json:"allowed"`
}
