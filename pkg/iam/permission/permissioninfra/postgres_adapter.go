package permissioninfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maprecruit/platform/pkg/iam/permission"
	"github.com/maprecruit/platform/pkg/kernel"
)

// PostgresPermissionRepository implements permission.Repository using
// PostgreSQL, storing one JSONB document per role.
type PostgresPermissionRepository struct {
	db *sqlx.DB
}

// NewPostgresPermissionRepository creates a new PostgreSQL permission repository
func NewPostgresPermissionRepository(db *sqlx.DB) *PostgresPermissionRepository {
	return &PostgresPermissionRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type roleTreeModel struct {
	RoleID    string          `db:"role_id"`
	Document  json.RawMessage `db:"document"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// GetByRole retrieves the tree owned by a role
func (r *PostgresPermissionRepository) GetByRole(ctx context.Context, roleID kernel.RoleID) (*permission.Node, error) {
	var model roleTreeModel
	query := `SELECT role_id, document, updated_at FROM role_permissions WHERE role_id = $1`

	if err := r.db.GetContext(ctx, &model, query, roleID.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, permission.ErrRoleNotFound().WithDetail("role_id", roleID.String())
		}
		return nil, fmt.Errorf("failed to get role tree: %w", err)
	}

	tree, err := permission.Unmarshal(model.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to decode role tree for %s: %w", roleID, err)
	}

	return tree, nil
}

// Save creates or replaces a role's tree document
func (r *PostgresPermissionRepository) Save(ctx context.Context, roleID kernel.RoleID, tree *permission.Node) error {
	doc, err := permission.Marshal(tree)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO role_permissions (role_id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (role_id) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, roleID.String(), doc, time.Now()); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("unknown role %s: %w", roleID, err)
		}
		return fmt.Errorf("failed to save role tree: %w", err)
	}

	return nil
}

// Delete removes a role's tree document
func (r *PostgresPermissionRepository) Delete(ctx context.Context, roleID kernel.RoleID) error {
	query := `DELETE FROM role_permissions WHERE role_id = $1`

	result, err := r.db.ExecContext(ctx, query, roleID.String())
	if err != nil {
		return fmt.Errorf("failed to delete role tree: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return permission.ErrRoleNotFound().WithDetail("role_id", roleID.String())
	}

	return nil
}

// Exists checks whether a role already owns a tree
func (r *PostgresPermissionRepository) Exists(ctx context.Context, roleID kernel.RoleID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM role_permissions WHERE role_id = $1)`

	if err := r.db.GetContext(ctx, &exists, query, roleID.String()); err != nil {
		return false, fmt.Errorf("failed to check role tree existence: %w", err)
	}

	return exists, nil
}
