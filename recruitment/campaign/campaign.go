package campaign

import (
	"time"

	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/kernel"
)

// CampaignStatus represents the status of a recruiting campaign
type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "DRAFT"  // Created but not launched
	CampaignStatusActive CampaignStatus = "ACTIVE" // Sourcing candidates
	CampaignStatusClosed CampaignStatus = "CLOSED" // No longer sourcing
)

// Campaign is a recruiting campaign, the platform's canonical shareable
// resource. Its access settings are created with it and drive every
// view/edit decision on it.
type Campaign struct {
	ID          kernel.CampaignID       `db:"id" json:"id"`
	Name        string                  `db:"name" json:"name"`
	Description string                  `db:"description" json:"description"`
	CompanyID   kernel.CompanyID        `db:"company_id" json:"company_id"`
	ClientID    kernel.ClientID         `db:"client_id" json:"client_id"`
	OwnerID     kernel.UserID           `db:"owner_id" json:"owner_id"`
	Status      CampaignStatus          `db:"status" json:"status"`
	Access      *sharing.AccessSettings `db:"access" json:"access"`
	CreatedAt   time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time               `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the campaign is currently sourcing
func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}

// IsClosed checks if the campaign has been closed
func (c *Campaign) IsClosed() bool {
	return c.Status == CampaignStatusClosed
}

// Launch marks the campaign active
func (c *Campaign) Launch() error {
	if c.Status != CampaignStatusDraft {
		return ErrCannotLaunch().WithDetail("current_status", c.Status)
	}
	c.Status = CampaignStatusActive
	c.UpdatedAt = time.Now()
	return nil
}

// Close stops the campaign
func (c *Campaign) Close() {
	c.Status = CampaignStatusClosed
	c.UpdatedAt = time.Now()
}

// UpdateDetails updates campaign details
func (c *Campaign) UpdateDetails(name, description string) {
	if name != "" {
		c.Name = name
	}
	if description != "" {
		c.Description = description
	}
	c.UpdatedAt = time.Now()
}
