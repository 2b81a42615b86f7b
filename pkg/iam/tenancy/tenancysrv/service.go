package tenancysrv

import (
	"context"

	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/hierarchy/hierarchysrv"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
)

// TenancyService resolves organizational scope and validates active-context
// switches. It never commits a switch on its own request path; the
// confirmation UI calls CommitSwitch after the user agrees.
type TenancyService struct {
	orgs     tenancy.OrgRepository
	users    user.UserRepository
	ranks    *hierarchysrv.HierarchyService
	sessions tenancy.SessionStore
	reporter tenancy.ViolationReporter
}

// NewTenancyService creates a new instance of the tenancy service
func NewTenancyService(
	orgs tenancy.OrgRepository,
	users user.UserRepository,
	ranks *hierarchysrv.HierarchyService,
	sessions tenancy.SessionStore,
	reporter tenancy.ViolationReporter,
) *TenancyService {
	if reporter == nil {
		reporter = tenancy.LogReporter{}
	}
	return &TenancyService{
		orgs:     orgs,
		users:    users,
		ranks:    ranks,
		sessions: sessions,
		reporter: reporter,
	}
}

// ResolveScope computes the clients available under a company for a user
func (s *TenancyService) ResolveScope(ctx context.Context, actor *user.User, companyID kernel.CompanyID) (*tenancy.ScopeResponse, error) {
	if !tenancy.CanSwitchTo(actor, companyID) {
		return nil, tenancy.ErrPermissionDenied().WithDetail("company_id", companyID.String())
	}

	company, err := s.orgs.GetCompany(ctx, companyID)
	if err != nil {
		return nil, tenancy.ErrCompanyNotFound().WithDetail("company_id", companyID.String())
	}

	var clients []tenancy.Client
	var franchises []tenancy.Franchise
	if company.FranchiseMode {
		franchises, err = s.orgs.ListFranchises(ctx, companyID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to list franchises", errx.TypeInternal)
		}
		// Load referenced clients by id, not by owning company: a stale
		// franchise reference to another tenant's client must be seen to be
		// reported, not silently filtered by the query.
		clients, err = s.orgs.ListClientsByIDs(ctx, referencedClientIDs(franchises))
		if err != nil {
			return nil, errx.Wrap(err, "failed to list franchise clients", errx.TypeInternal)
		}
	} else {
		clients, err = s.orgs.ListClients(ctx, companyID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to list clients", errx.TypeInternal)
		}
	}

	return &tenancy.ScopeResponse{
		CompanyID:     company.ID,
		FranchiseMode: company.FranchiseMode,
		Clients:       tenancy.ResolveClients(company, franchises, clients, s.reporter),
	}, nil
}

// RequestSwitch validates a context-switch request. An unauthorized target is
// rejected with nothing mutated. An authorized target that is not the active
// context yields SwitchRequired=true carrying the identifiers; the UI commits
// separately. A target already active yields SwitchRequired=false.
func (s *TenancyService) RequestSwitch(ctx context.Context, actor *user.User, target tenancy.SwitchRequest) (*tenancy.SwitchDecision, error) {
	if !tenancy.CanSwitchTo(actor, target.CompanyID) {
		return nil, tenancy.ErrPermissionDenied().
			WithDetail("user_id", actor.ID.String()).
			WithDetail("company_id", target.CompanyID.String())
	}

	if !target.ClientID.IsEmpty() {
		scope, err := s.ResolveScope(ctx, actor, target.CompanyID)
		if err != nil {
			return nil, err
		}
		if !scopeContains(scope.Clients, target.ClientID) {
			return nil, tenancy.ErrClientOutOfScope().
				WithDetail("client_id", target.ClientID.String()).
				WithDetail("company_id", target.CompanyID.String())
		}
	}

	if actor.ActiveCompanyID == target.CompanyID &&
		(target.ClientID.IsEmpty() || actor.ActiveClientID == target.ClientID) {
		return &tenancy.SwitchDecision{
			SwitchRequired: false,
			CompanyID:      target.CompanyID,
			ClientID:       target.ClientID,
		}, nil
	}

	return &tenancy.SwitchDecision{
		SwitchRequired: true,
		CompanyID:      target.CompanyID,
		ClientID:       target.ClientID,
	}, nil
}

// CommitSwitch performs the actual active-context change after the user
// confirmed. It re-validates, persists the new context, records it on the
// session, and drops the hierarchy cache for the company being left.
func (s *TenancyService) CommitSwitch(ctx context.Context, actor *user.User, sessionID kernel.SessionID, target tenancy.SwitchRequest) error {
	decision, err := s.RequestSwitch(ctx, actor, target)
	if err != nil {
		return err
	}
	if !decision.SwitchRequired {
		return nil
	}

	previousCompany := actor.ActiveCompanyID

	if err := s.users.UpdateActiveContext(ctx, actor.ID, target.CompanyID, target.ClientID); err != nil {
		return errx.Wrap(err, "failed to persist active context", errx.TypeInternal)
	}
	actor.SetActiveContext(target.CompanyID, target.ClientID)

	if s.sessions != nil && !sessionID.IsEmpty() {
		if err := s.sessions.SetActiveContext(ctx, sessionID, target.CompanyID, target.ClientID); err != nil {
			return errx.Wrap(err, "failed to update session context", errx.TypeInternal)
		}
	}

	if !previousCompany.IsEmpty() && previousCompany != target.CompanyID {
		s.ranks.Invalidate(previousCompany)
	}

	return nil
}

// AuthorizeRoleAssignment gates administrative elevation: assigning a role in
// a target company requires both access to that company and strict seniority
// of the acting role over the target role under that company's ladder.
func (s *TenancyService) AuthorizeRoleAssignment(ctx context.Context, actor *user.User, req tenancy.AssignRoleRequest) error {
	if !tenancy.CanSwitchTo(actor, req.TargetCompany) {
		return tenancy.ErrPermissionDenied().
			WithDetail("company_id", req.TargetCompany.String())
	}

	if !s.ranks.IsSeniorTo(ctx, req.TargetCompany, actor.RoleID, req.TargetRoleID) {
		return tenancy.ErrElevationDenied().
			WithDetail("acting_role", actor.RoleID.String()).
			WithDetail("target_role", req.TargetRoleID.String())
	}

	return nil
}

func referencedClientIDs(franchises []tenancy.Franchise) []kernel.ClientID {
	seen := make(map[kernel.ClientID]struct{})
	var ids []kernel.ClientID
	for _, franchise := range franchises {
		for _, id := range franchise.ClientIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func scopeContains(clients []tenancy.Client, clientID kernel.ClientID) bool {
	for _, client := range clients {
		if client.ID == clientID {
			return true
		}
	}
	return false
}
