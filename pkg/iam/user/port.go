package user

import (
	"context"

	"github.com/maprecruit/platform/pkg/kernel"
)

type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID retrieves a user by id
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)

	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ListByCompany retrieves users belonging to a company
	ListByCompany(ctx context.Context, companyID kernel.CompanyID, pagination kernel.PaginationOptions) (*kernel.Paginated[User], error)

	// UpdateActiveContext persists a validated active company/client change
	UpdateActiveContext(ctx context.Context, id kernel.UserID, companyID kernel.CompanyID, clientID kernel.ClientID) error
}
