package userinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
)

// PostgresUserRepository implements user.UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type userModel struct {
	ID                   string         `db:"id"`
	Email                string         `db:"email"`
	FirstName            string         `db:"first_name"`
	LastName             string         `db:"last_name"`
	PasswordHash         string         `db:"password_hash"`
	RoleID               string         `db:"role_id"`
	CompanyID            string         `db:"company_id"`
	AccessibleCompanyIDs pq.StringArray `db:"accessible_company_ids"`
	ClientIDs            pq.StringArray `db:"client_ids"`
	ActiveCompanyID      string         `db:"active_company_id"`
	ActiveClientID       string         `db:"active_client_id"`
	Status               string         `db:"status"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func (m *userModel) toEntity() *user.User {
	companies := make([]kernel.CompanyID, 0, len(m.AccessibleCompanyIDs))
	for _, id := range m.AccessibleCompanyIDs {
		companies = append(companies, kernel.CompanyID(id))
	}
	clients := make([]kernel.ClientID, 0, len(m.ClientIDs))
	for _, id := range m.ClientIDs {
		clients = append(clients, kernel.ClientID(id))
	}

	return &user.User{
		ID:                   kernel.UserID(m.ID),
		Email:                m.Email,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		PasswordHash:         m.PasswordHash,
		RoleID:               kernel.RoleID(m.RoleID),
		CompanyID:            kernel.CompanyID(m.CompanyID),
		AccessibleCompanyIDs: companies,
		ClientIDs:            clients,
		ActiveCompanyID:      kernel.CompanyID(m.ActiveCompanyID),
		ActiveClientID:       kernel.ClientID(m.ActiveClientID),
		Status:               user.UserStatus(m.Status),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func fromEntity(u *user.User) *userModel {
	companies := make(pq.StringArray, 0, len(u.AccessibleCompanyIDs))
	for _, id := range u.AccessibleCompanyIDs {
		companies = append(companies, id.String())
	}
	clients := make(pq.StringArray, 0, len(u.ClientIDs))
	for _, id := range u.ClientIDs {
		clients = append(clients, id.String())
	}

	return &userModel{
		ID:                   u.ID.String(),
		Email:                u.Email,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		PasswordHash:         u.PasswordHash,
		RoleID:               u.RoleID.String(),
		CompanyID:            u.CompanyID.String(),
		AccessibleCompanyIDs: companies,
		ClientIDs:            clients,
		ActiveCompanyID:      u.ActiveCompanyID.String(),
		ActiveClientID:       u.ActiveClientID.String(),
		Status:               string(u.Status),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

const userColumns = `id, email, first_name, last_name, password_hash, role_id,
	company_id, accessible_company_ids, client_ids, active_company_id,
	active_client_id, status, created_at, updated_at`

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	model := fromEntity(u)

	query := `
		INSERT INTO users (
			id, email, first_name, last_name, password_hash, role_id,
			company_id, accessible_company_ids, client_ids, active_company_id,
			active_client_id, status, created_at, updated_at
		) VALUES (
			:id, :email, :first_name, :last_name, :password_hash, :role_id,
			:company_id, :accessible_company_ids, :client_ids, :active_company_id,
			:active_client_id, :status, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update updates an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	model := fromEntity(u)
	model.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			email = :email,
			first_name = :first_name,
			last_name = :last_name,
			password_hash = :password_hash,
			role_id = :role_id,
			company_id = :company_id,
			accessible_company_ids = :accessible_company_ids,
			client_ids = :client_ids,
			active_company_id = :active_company_id,
			active_client_id = :active_client_id,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", u.ID.String())
	}

	return nil
}

// FindByID retrieves a user by id
func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	var model userModel
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return model.toEntity(), nil
}

// FindByEmail retrieves a user by email
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model userModel
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	if err := r.db.GetContext(ctx, &model, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound().WithDetail("email", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return model.toEntity(), nil
}

// ListByCompany retrieves users belonging to a company
func (r *PostgresUserRepository) ListByCompany(ctx context.Context, companyID kernel.CompanyID, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE company_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, companyID.String()); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var models []userModel
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userColumns)

	if err := r.db.SelectContext(ctx, &models, query, companyID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, 0, len(models))
	for _, model := range models {
		users = append(users, *model.toEntity())
	}

	return &kernel.Paginated[user.User]{
		Items: users,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  (total + pagination.PageSize - 1) / pagination.PageSize,
		},
		Empty: len(users) == 0,
	}, nil
}

// UpdateActiveContext persists a validated active company/client change
func (r *PostgresUserRepository) UpdateActiveContext(ctx context.Context, id kernel.UserID, companyID kernel.CompanyID, clientID kernel.ClientID) error {
	query := `
		UPDATE users SET
			active_company_id = $2,
			active_client_id = $3,
			updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id.String(), companyID.String(), clientID.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update active context: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}

	return nil
}
