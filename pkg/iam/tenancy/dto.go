package tenancy

import (
	"github.com/maprecruit/platform/pkg/kernel"
)

// SwitchRequest - DTO asking to activate a different company/client context
type SwitchRequest struct {
	CompanyID kernel.CompanyID `json:"company_id" validate:"required"`
	ClientID  kernel.ClientID  `json:"client_id,omitempty"`
}

// SwitchDecision is the outcome of a switch request. The resolver never
// commits a switch itself: when the target is reachable but not active it
// returns SwitchRequired and the confirmation UI calls CommitSwitch.
type SwitchDecision struct {
	SwitchRequired bool             `json:"switch_required"`
	CompanyID      kernel.CompanyID `json:"company_id"`
	ClientID       kernel.ClientID  `json:"client_id,omitempty"`
}

// ScopeResponse - DTO listing the clients the user may operate against
type ScopeResponse struct {
	CompanyID     kernel.CompanyID `json:"company_id"`
	FranchiseMode bool             `json:"franchise_mode"`
	Clients       []Client         `json:"clients"`
}

// AssignRoleRequest - DTO for a cross-company role assignment
type AssignRoleRequest struct {
	TargetUserID  kernel.UserID    `json:"target_user_id" validate:"required"`
	TargetRoleID  kernel.RoleID    `json:"target_role_id" validate:"required"`
	TargetCompany kernel.CompanyID `json:"target_company_id" validate:"required"`
}
