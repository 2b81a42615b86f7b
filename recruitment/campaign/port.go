package campaign

import (
	"context"

	"github.com/maprecruit/platform/pkg/kernel"
)

type Repository interface {
	// Create creates a new campaign
	Create(ctx context.Context, campaign *Campaign) error

	// Update updates an existing campaign
	Update(ctx context.Context, campaign *Campaign) error

	// GetByID retrieves a campaign by ID
	GetByID(ctx context.Context, id kernel.CampaignID) (*Campaign, error)

	// Delete deletes a campaign by ID
	Delete(ctx context.Context, id kernel.CampaignID) error

	// ListByClient retrieves campaigns of a client with pagination
	ListByClient(ctx context.Context, clientID kernel.ClientID, pagination kernel.PaginationOptions) (*kernel.Paginated[Campaign], error)
}
