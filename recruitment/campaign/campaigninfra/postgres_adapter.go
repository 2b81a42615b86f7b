package campaigninfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/recruitment/campaign"
)

// PostgresCampaignRepository implements campaign.Repository using PostgreSQL.
// Access settings live inline as JSONB; they are born and deleted with the
// campaign row.
type PostgresCampaignRepository struct {
	db *sqlx.DB
}

// NewPostgresCampaignRepository creates a new PostgreSQL campaign repository
func NewPostgresCampaignRepository(db *sqlx.DB) *PostgresCampaignRepository {
	return &PostgresCampaignRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type campaignModel struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	CompanyID   string          `db:"company_id"`
	ClientID    string          `db:"client_id"`
	OwnerID     string          `db:"owner_id"`
	Status      string          `db:"status"`
	Access      json.RawMessage `db:"access"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (m *campaignModel) toEntity() (*campaign.Campaign, error) {
	var access *sharing.AccessSettings
	if len(m.Access) > 0 {
		access = &sharing.AccessSettings{}
		if err := json.Unmarshal(m.Access, access); err != nil {
			return nil, fmt.Errorf("failed to unmarshal access settings: %w", err)
		}
	}

	return &campaign.Campaign{
		ID:          kernel.CampaignID(m.ID),
		Name:        m.Name,
		Description: m.Description,
		CompanyID:   kernel.CompanyID(m.CompanyID),
		ClientID:    kernel.ClientID(m.ClientID),
		OwnerID:     kernel.UserID(m.OwnerID),
		Status:      campaign.CampaignStatus(m.Status),
		Access:      access,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func fromEntity(c *campaign.Campaign) (*campaignModel, error) {
	var access json.RawMessage
	if c.Access != nil {
		data, err := json.Marshal(c.Access)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal access settings: %w", err)
		}
		access = data
	}

	return &campaignModel{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CompanyID:   c.CompanyID.String(),
		ClientID:    c.ClientID.String(),
		OwnerID:     c.OwnerID.String(),
		Status:      string(c.Status),
		Access:      access,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new campaign
func (r *PostgresCampaignRepository) Create(ctx context.Context, entity *campaign.Campaign) error {
	model, err := fromEntity(entity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO campaigns (
			id, name, description, company_id, client_id, owner_id,
			status, access, created_at, updated_at
		) VALUES (
			:id, :name, :description, :company_id, :client_id, :owner_id,
			:status, :access, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return campaign.ErrCampaignAlreadyExists()
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// Update updates an existing campaign
func (r *PostgresCampaignRepository) Update(ctx context.Context, entity *campaign.Campaign) error {
	model, err := fromEntity(entity)
	if err != nil {
		return err
	}
	model.UpdatedAt = time.Now()

	query := `
		UPDATE campaigns SET
			name = :name,
			description = :description,
			status = :status,
			access = :access,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return campaign.ErrCampaignNotFound().WithDetail("campaign_id", entity.ID.String())
	}

	return nil
}

// GetByID retrieves a campaign by ID
func (r *PostgresCampaignRepository) GetByID(ctx context.Context, id kernel.CampaignID) (*campaign.Campaign, error) {
	var model campaignModel
	query := `
		SELECT id, name, description, company_id, client_id, owner_id,
			status, access, created_at, updated_at
		FROM campaigns WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, campaign.ErrCampaignNotFound().WithDetail("campaign_id", id.String())
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return model.toEntity()
}

// Delete deletes a campaign by ID
func (r *PostgresCampaignRepository) Delete(ctx context.Context, id kernel.CampaignID) error {
	query := `DELETE FROM campaigns WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return campaign.ErrCampaignNotFound().WithDetail("campaign_id", id.String())
	}

	return nil
}

// ListByClient retrieves campaigns of a client with pagination
func (r *PostgresCampaignRepository) ListByClient(ctx context.Context, clientID kernel.ClientID, pagination kernel.PaginationOptions) (*kernel.Paginated[campaign.Campaign], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE client_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, clientID.String()); err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var models []campaignModel
	query := `
		SELECT id, name, description, company_id, client_id, owner_id,
			status, access, created_at, updated_at
		FROM campaigns
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	if err := r.db.SelectContext(ctx, &models, query, clientID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	campaigns := make([]campaign.Campaign, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *entity)
	}

	return &kernel.Paginated[campaign.Campaign]{
		Items: campaigns,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  (total + pagination.PageSize - 1) / pagination.PageSize,
		},
		Empty: len(campaigns) == 0,
	}, nil
}
