package campaign

import (
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/kernel"
)

// CreateCampaignRequest - DTO for creating a new campaign
type CreateCampaignRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	ClientID    kernel.ClientID     `json:"client_id" validate:"required"`
	Level       sharing.AccessLevel `json:"level,omitempty"`
}

// UpdateCampaignRequest - DTO for updating an existing campaign
type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListCampaignsRequest - DTO for listing campaigns
type ListCampaignsRequest struct {
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// Response type alias for paginated campaigns
type PaginatedCampaignsResponse = kernel.Paginated[Campaign]

// CampaignResult wraps a campaign fetch. When the campaign lives in a
// company/client the actor can reach but has not activated, Switch carries
// the context the confirmation UI must commit before the campaign opens.
type CampaignResult struct {
	Campaign *Campaign               `json:"campaign,omitempty"`
	Switch   *tenancy.SwitchDecision `json:"switch,omitempty"`
}
