package sharing

import (
	"context"
)

// Repository persists access settings keyed by the owning resource
type Repository interface {
	// GetByResource retrieves the settings attached to a resource
	GetByResource(ctx context.Context, resourceID string) (*AccessSettings, error)

	// Save creates or replaces the settings for a resource
	Save(ctx context.Context, resourceID string, access *AccessSettings) error

	// Delete removes the settings for a resource
	Delete(ctx context.Context, resourceID string) error
}
