package user

import (
	"time"

	"github.com/maprecruit/platform/pkg/kernel"
)

// UserStatus represents the lifecycle state of a platform user
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

type User struct {
	ID                   kernel.UserID      `db:"id" json:"id"`
	Email                string             `db:"email" json:"email"`
	FirstName            string             `db:"first_name" json:"first_name"`
	LastName             string             `db:"last_name" json:"last_name"`
	PasswordHash         string             `db:"password_hash" json:"-"`
	RoleID               kernel.RoleID      `db:"role_id" json:"role_id"`
	CompanyID            kernel.CompanyID   `db:"company_id" json:"company_id"`
	AccessibleCompanyIDs []kernel.CompanyID `db:"accessible_company_ids" json:"accessible_company_ids"`
	ClientIDs            []kernel.ClientID  `db:"client_ids" json:"client_ids"`
	ActiveCompanyID      kernel.CompanyID   `db:"active_company_id" json:"active_company_id"`
	ActiveClientID       kernel.ClientID    `db:"active_client_id" json:"active_client_id"`
	Status               UserStatus         `db:"status" json:"status"`
	CreatedAt            time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// GetID returns the user's id
func (u *User) GetID() kernel.UserID {
	return u.ID
}

// IsActive checks if the user may operate on the platform
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// BelongsToClient checks membership in a client workspace
func (u *User) BelongsToClient(clientID kernel.ClientID) bool {
	for _, id := range u.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// CanAccessCompany checks whether the company is in the user's accessible set
func (u *User) CanAccessCompany(companyID kernel.CompanyID) bool {
	for _, id := range u.AccessibleCompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// SetActiveContext updates the session-scoped active company and client.
// Callers must validate the switch through the tenancy service first.
func (u *User) SetActiveContext(companyID kernel.CompanyID, clientID kernel.ClientID) {
	u.ActiveCompanyID = companyID
	u.ActiveClientID = clientID
	u.UpdatedAt = time.Now()
}
