package sharing

import (
	"github.com/maprecruit/platform/pkg/kernel"
)

// UpdateLevelRequest - DTO for changing a resource's access level
type UpdateLevelRequest struct {
	Level    AccessLevel     `json:"level" validate:"required"`
	ClientID kernel.ClientID `json:"client_id,omitempty"`
}

// UpsertRuleRequest - DTO for adding or replacing a share rule
type UpsertRuleRequest struct {
	EntityID    kernel.UserID   `json:"entity_id" validate:"required"`
	Permission  SharePermission `json:"permission" validate:"required"`
	Role        string          `json:"role,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
}

// RemoveRuleRequest - DTO for removing a share rule
type RemoveRuleRequest struct {
	EntityID kernel.UserID `json:"entity_id" validate:"required"`
}

// AccessSettingsResponse - DTO for returning access settings
type AccessSettingsResponse struct {
	ResourceID string          `json:"resource_id"`
	Level      AccessLevel     `json:"level"`
	OwnerID    kernel.UserID   `json:"owner_id"`
	ClientID   kernel.ClientID `json:"client_id,omitempty"`
	SharedWith []ShareRule     `json:"shared_with"`
}
