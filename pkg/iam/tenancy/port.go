package tenancy

import (
	"context"

	"github.com/maprecruit/platform/pkg/kernel"
)

// OrgRepository loads the organizational entities scope resolution works over
type OrgRepository interface {
	// GetCompany retrieves a company by id
	GetCompany(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// GetClient retrieves a client by id
	GetClient(ctx context.Context, id kernel.ClientID) (*Client, error)

	// ListFranchises retrieves all franchises of a company
	ListFranchises(ctx context.Context, companyID kernel.CompanyID) ([]Franchise, error)

	// ListClients retrieves all clients recorded under a company
	ListClients(ctx context.Context, companyID kernel.CompanyID) ([]Client, error)

	// ListClientsByIDs retrieves clients by id regardless of owning company.
	// Scope resolution needs the real owner of every franchise-referenced
	// client to detect cross-tenant references.
	ListClientsByIDs(ctx context.Context, ids []kernel.ClientID) ([]Client, error)
}

// SessionStore keeps the session-scoped active context
type SessionStore interface {
	// SetActiveContext records the active company/client for a session
	SetActiveContext(ctx context.Context, sessionID kernel.SessionID, companyID kernel.CompanyID, clientID kernel.ClientID) error

	// GetActiveContext retrieves the active company/client for a session
	GetActiveContext(ctx context.Context, sessionID kernel.SessionID) (kernel.CompanyID, kernel.ClientID, error)
}
