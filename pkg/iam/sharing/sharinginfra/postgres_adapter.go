package sharinginfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/kernel"
)

// PostgresSharingRepository implements sharing.Repository using PostgreSQL.
// Share rules travel inside the settings document as JSONB; settings are
// always read and written whole.
type PostgresSharingRepository struct {
	db *sqlx.DB
}

// NewPostgresSharingRepository creates a new PostgreSQL sharing repository
func NewPostgresSharingRepository(db *sqlx.DB) *PostgresSharingRepository {
	return &PostgresSharingRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type accessSettingsModel struct {
	ResourceID string          `db:"resource_id"`
	Level      string          `db:"level"`
	OwnerID    string          `db:"owner_id"`
	ClientID   sql.NullString  `db:"client_id"`
	SharedWith json.RawMessage `db:"shared_with"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (m *accessSettingsModel) toEntity() (*sharing.AccessSettings, error) {
	var rules []sharing.ShareRule
	if len(m.SharedWith) > 0 {
		if err := json.Unmarshal(m.SharedWith, &rules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal share rules: %w", err)
		}
	}

	access := &sharing.AccessSettings{
		Level:      sharing.AccessLevel(m.Level),
		OwnerID:    kernel.UserID(m.OwnerID),
		SharedWith: rules,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.ClientID.Valid {
		access.ClientID = kernel.ClientID(m.ClientID.String)
	}
	return access, nil
}

func fromEntity(resourceID string, access *sharing.AccessSettings) (*accessSettingsModel, error) {
	rules, err := json.Marshal(access.SharedWith)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal share rules: %w", err)
	}

	model := &accessSettingsModel{
		ResourceID: resourceID,
		Level:      string(access.Level),
		OwnerID:    access.OwnerID.String(),
		SharedWith: rules,
		UpdatedAt:  time.Now(),
	}
	if !access.ClientID.IsEmpty() {
		model.ClientID = sql.NullString{String: access.ClientID.String(), Valid: true}
	}
	return model, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByResource retrieves the settings attached to a resource
func (r *PostgresSharingRepository) GetByResource(ctx context.Context, resourceID string) (*sharing.AccessSettings, error) {
	var model accessSettingsModel
	query := `
		SELECT resource_id, level, owner_id, client_id, shared_with, updated_at
		FROM access_settings WHERE resource_id = $1
	`

	if err := r.db.GetContext(ctx, &model, query, resourceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sharing.ErrSettingsNotFound().WithDetail("resource_id", resourceID)
		}
		return nil, fmt.Errorf("failed to get access settings: %w", err)
	}

	return model.toEntity()
}

// Save creates or replaces the settings for a resource
func (r *PostgresSharingRepository) Save(ctx context.Context, resourceID string, access *sharing.AccessSettings) error {
	model, err := fromEntity(resourceID, access)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO access_settings (resource_id, level, owner_id, client_id, shared_with, updated_at)
		VALUES (:resource_id, :level, :owner_id, :client_id, :shared_with, :updated_at)
		ON CONFLICT (resource_id) DO UPDATE SET
			level = EXCLUDED.level,
			owner_id = EXCLUDED.owner_id,
			client_id = EXCLUDED.client_id,
			shared_with = EXCLUDED.shared_with,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save access settings: %w", err)
	}

	return nil
}

// Delete removes the settings for a resource
func (r *PostgresSharingRepository) Delete(ctx context.Context, resourceID string) error {
	query := `DELETE FROM access_settings WHERE resource_id = $1`

	if _, err := r.db.ExecContext(ctx, query, resourceID); err != nil {
		return fmt.Errorf("failed to delete access settings: %w", err)
	}

	return nil
}
