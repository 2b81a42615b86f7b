package tenancy

import (
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/pkg/logx"
)

// Company is a top-level tenant. FranchiseMode selects its topology: flat
// (clients hang directly off the company) or hierarchical (clients belong to
// franchises which belong to the company).
type Company struct {
	ID            kernel.CompanyID `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	FranchiseMode bool             `db:"franchise_mode" json:"franchise_mode"`
}

// Franchise groups clients under a company; only exists in franchise mode
type Franchise struct {
	ID        kernel.FranchiseID `db:"id" json:"id"`
	CompanyID kernel.CompanyID   `db:"company_id" json:"company_id"`
	ClientIDs []kernel.ClientID  `db:"client_ids" json:"client_ids"`
}

// Client is a workspace users operate within
type Client struct {
	ID        kernel.ClientID  `db:"id" json:"id"`
	CompanyID kernel.CompanyID `db:"company_id" json:"company_id"`
	Name      string           `db:"name" json:"name"`
}

// ============================================================================
// Integrity Diagnostics
// ============================================================================

// IntegrityViolation describes a cross-tenant referential mismatch found
// while resolving scope. Violations are excluded from results and reported,
// never raised as errors.
type IntegrityViolation struct {
	CompanyID   kernel.CompanyID   `json:"company_id"`
	FranchiseID kernel.FranchiseID `json:"franchise_id,omitempty"`
	ClientID    kernel.ClientID    `json:"client_id"`
	Reason      string             `json:"reason"`
}

// ViolationReporter receives integrity diagnostics from scope resolution
type ViolationReporter interface {
	ReportIntegrityViolation(v IntegrityViolation)
}

// LogReporter is the default reporter; it writes violations to the log
type LogReporter struct{}

func (LogReporter) ReportIntegrityViolation(v IntegrityViolation) {
	logx.Errorf("tenancy: integrity violation for company %s client %s: %s",
		v.CompanyID, v.ClientID, v.Reason)
}

// ============================================================================
// Scope Resolution
// ============================================================================

// ResolveClients computes the clients a user may operate against within the
// company, honoring its topology.
//
// Flat mode: every client whose companyId matches. Franchise mode: a client
// must be listed by one of the company's franchises AND carry the company's
// id itself; a franchise pointing at a client owned elsewhere is a stale or
// cross-tenant reference and is excluded and reported.
func ResolveClients(company *Company, franchises []Franchise, clients []Client, reporter ViolationReporter) []Client {
	if reporter == nil {
		reporter = LogReporter{}
	}

	if !company.FranchiseMode {
		resolved := make([]Client, 0, len(clients))
		for _, client := range clients {
			if client.CompanyID == company.ID {
				resolved = append(resolved, client)
			}
		}
		return resolved
	}

	referencedBy := make(map[kernel.ClientID]kernel.FranchiseID)
	for _, franchise := range franchises {
		if franchise.CompanyID != company.ID {
			continue
		}
		for _, clientID := range franchise.ClientIDs {
			referencedBy[clientID] = franchise.ID
		}
	}

	resolved := make([]Client, 0, len(clients))
	for _, client := range clients {
		franchiseID, referenced := referencedBy[client.ID]
		if !referenced {
			continue
		}
		if client.CompanyID != company.ID {
			reporter.ReportIntegrityViolation(IntegrityViolation{
				CompanyID:   company.ID,
				FranchiseID: franchiseID,
				ClientID:    client.ID,
				Reason:      "franchise references client owned by company " + client.CompanyID.String(),
			})
			continue
		}
		resolved = append(resolved, client)
	}
	return resolved
}

// Switcher is the subset of user state switch validation needs
type Switcher interface {
	GetID() kernel.UserID
	CanAccessCompany(companyID kernel.CompanyID) bool
}

// CanSwitchTo reports whether the user may activate the target company
func CanSwitchTo(user Switcher, targetCompanyID kernel.CompanyID) bool {
	return user.CanAccessCompany(targetCompanyID)
}
