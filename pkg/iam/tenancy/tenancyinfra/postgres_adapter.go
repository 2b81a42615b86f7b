package tenancyinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/kernel"
)

// PostgresOrgRepository implements tenancy.OrgRepository using PostgreSQL
type PostgresOrgRepository struct {
	db *sqlx.DB
}

// NewPostgresOrgRepository creates a new PostgreSQL org repository
func NewPostgresOrgRepository(db *sqlx.DB) *PostgresOrgRepository {
	return &PostgresOrgRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type companyModel struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	FranchiseMode bool   `db:"franchise_mode"`
}

func (m *companyModel) toEntity() *tenancy.Company {
	return &tenancy.Company{
		ID:            kernel.CompanyID(m.ID),
		Name:          m.Name,
		FranchiseMode: m.FranchiseMode,
	}
}

type franchiseModel struct {
	ID        string         `db:"id"`
	CompanyID string         `db:"company_id"`
	ClientIDs pq.StringArray `db:"client_ids"`
}

func (m *franchiseModel) toEntity() tenancy.Franchise {
	clientIDs := make([]kernel.ClientID, 0, len(m.ClientIDs))
	for _, id := range m.ClientIDs {
		clientIDs = append(clientIDs, kernel.ClientID(id))
	}
	return tenancy.Franchise{
		ID:        kernel.FranchiseID(m.ID),
		CompanyID: kernel.CompanyID(m.CompanyID),
		ClientIDs: clientIDs,
	}
}

type clientModel struct {
	ID        string `db:"id"`
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
}

func (m *clientModel) toEntity() tenancy.Client {
	return tenancy.Client{
		ID:        kernel.ClientID(m.ID),
		CompanyID: kernel.CompanyID(m.CompanyID),
		Name:      m.Name,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetCompany retrieves a company by id
func (r *PostgresOrgRepository) GetCompany(ctx context.Context, id kernel.CompanyID) (*tenancy.Company, error) {
	var model companyModel
	query := `SELECT id, name, franchise_mode FROM companies WHERE id = $1`

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, tenancy.ErrCompanyNotFound().WithDetail("company_id", id.String())
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return model.toEntity(), nil
}

// GetClient retrieves a client by id
func (r *PostgresOrgRepository) GetClient(ctx context.Context, id kernel.ClientID) (*tenancy.Client, error) {
	var model clientModel
	query := `SELECT id, company_id, name FROM clients WHERE id = $1`

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, tenancy.ErrClientNotFound().WithDetail("client_id", id.String())
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

// ListFranchises retrieves all franchises of a company
func (r *PostgresOrgRepository) ListFranchises(ctx context.Context, companyID kernel.CompanyID) ([]tenancy.Franchise, error) {
	var models []franchiseModel
	query := `SELECT id, company_id, client_ids FROM franchises WHERE company_id = $1 ORDER BY id`

	if err := r.db.SelectContext(ctx, &models, query, companyID.String()); err != nil {
		return nil, fmt.Errorf("failed to list franchises: %w", err)
	}

	franchises := make([]tenancy.Franchise, 0, len(models))
	for _, model := range models {
		franchises = append(franchises, model.toEntity())
	}
	return franchises, nil
}

// ListClients retrieves all clients recorded under a company
func (r *PostgresOrgRepository) ListClients(ctx context.Context, companyID kernel.CompanyID) ([]tenancy.Client, error) {
	var models []clientModel
	query := `SELECT id, company_id, name FROM clients WHERE company_id = $1 ORDER BY name`

	if err := r.db.SelectContext(ctx, &models, query, companyID.String()); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]tenancy.Client, 0, len(models))
	for _, model := range models {
		clients = append(clients, model.toEntity())
	}
	return clients, nil
}

// ListClientsByIDs retrieves clients by id regardless of owning company
func (r *PostgresOrgRepository) ListClientsByIDs(ctx context.Context, ids []kernel.ClientID) ([]tenancy.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rawIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id.String())
	}

	var models []clientModel
	query := `SELECT id, company_id, name FROM clients WHERE id = ANY($1) ORDER BY name`

	if err := r.db.SelectContext(ctx, &models, query, pq.Array(rawIDs)); err != nil {
		return nil, fmt.Errorf("failed to list clients by ids: %w", err)
	}

	clients := make([]tenancy.Client, 0, len(models))
	for _, model := range models {
		clients = append(clients, model.toEntity())
	}
	return clients, nil
}
