package permission

import (
	"context"

	"github.com/maprecruit/platform/pkg/kernel"
)

// Repository persists one permission tree per role as a nested document
type Repository interface {
	// GetByRole retrieves the tree owned by a role
	GetByRole(ctx context.Context, roleID kernel.RoleID) (*Node, error)

	// Save creates or replaces a role's tree. Writes are last-write-wins at
	// the granularity of the whole document.
	Save(ctx context.Context, roleID kernel.RoleID, tree *Node) error

	// Delete removes a role's tree
	Delete(ctx context.Context, roleID kernel.RoleID) error

	// Exists checks whether a role already owns a tree
	Exists(ctx context.Context, roleID kernel.RoleID) (bool, error)
}
