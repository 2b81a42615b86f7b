package tenancysrv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/hierarchy"
	"github.com/maprecruit/platform/pkg/iam/hierarchy/hierarchysrv"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/iam/tenancy/tenancysrv"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeOrgRepo struct {
	companies  map[kernel.CompanyID]*tenancy.Company
	franchises map[kernel.CompanyID][]tenancy.Franchise
	clients    map[kernel.ClientID]*tenancy.Client
}

func (r *fakeOrgRepo) GetCompany(ctx context.Context, id kernel.CompanyID) (*tenancy.Company, error) {
	if c, ok := r.companies[id]; ok {
		return c, nil
	}
	return nil, tenancy.ErrCompanyNotFound()
}

func (r *fakeOrgRepo) GetClient(ctx context.Context, id kernel.ClientID) (*tenancy.Client, error) {
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return nil, tenancy.ErrClientNotFound()
}

func (r *fakeOrgRepo) ListFranchises(ctx context.Context, companyID kernel.CompanyID) ([]tenancy.Franchise, error) {
	return r.franchises[companyID], nil
}

func (r *fakeOrgRepo) ListClients(ctx context.Context, companyID kernel.CompanyID) ([]tenancy.Client, error) {
	var out []tenancy.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeOrgRepo) ListClientsByIDs(ctx context.Context, ids []kernel.ClientID) ([]tenancy.Client, error) {
	var out []tenancy.Client
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	user.UserRepository

	contextUpdates int
	lastCompany    kernel.CompanyID
	lastClient     kernel.ClientID
}

func (r *fakeUserRepo) UpdateActiveContext(ctx context.Context, id kernel.UserID, companyID kernel.CompanyID, clientID kernel.ClientID) error {
	r.contextUpdates++
	r.lastCompany = companyID
	r.lastClient = clientID
	return nil
}

type fakeSessionStore struct {
	contexts map[kernel.SessionID][2]string
}

func (s *fakeSessionStore) SetActiveContext(ctx context.Context, sessionID kernel.SessionID, companyID kernel.CompanyID, clientID kernel.ClientID) error {
	if s.contexts == nil {
		s.contexts = make(map[kernel.SessionID][2]string)
	}
	s.contexts[sessionID] = [2]string{companyID.String(), clientID.String()}
	return nil
}

func (s *fakeSessionStore) GetActiveContext(ctx context.Context, sessionID kernel.SessionID) (kernel.CompanyID, kernel.ClientID, error) {
	pair, ok := s.contexts[sessionID]
	if !ok {
		return "", "", errors.New("no session context")
	}
	return kernel.CompanyID(pair[0]), kernel.ClientID(pair[1]), nil
}

type countingFetcher struct {
	calls   int
	ladders map[kernel.CompanyID]hierarchy.Hierarchy
}

func (f *countingFetcher) FetchHierarchy(ctx context.Context, companyID kernel.CompanyID) (hierarchy.Hierarchy, error) {
	f.calls++
	return f.ladders[companyID], nil
}

type collectingReporter struct {
	violations []tenancy.IntegrityViolation
}

func (r *collectingReporter) ReportIntegrityViolation(v tenancy.IntegrityViolation) {
	r.violations = append(r.violations, v)
}

// ============================================================================
// Fixtures
// ============================================================================

func newFixture() (*fakeOrgRepo, *fakeUserRepo, *fakeSessionStore, *countingFetcher, *collectingReporter, *tenancysrv.TenancyService) {
	orgs := &fakeOrgRepo{
		companies: map[kernel.CompanyID]*tenancy.Company{
			"co-1": {ID: "co-1", Name: "Acme", FranchiseMode: false},
			"co-2": {ID: "co-2", Name: "Globex", FranchiseMode: true},
		},
		franchises: map[kernel.CompanyID][]tenancy.Franchise{
			"co-2": {
				{ID: "f1", CompanyID: "co-2", ClientIDs: []kernel.ClientID{"g1", "leaked"}},
			},
		},
		clients: map[kernel.ClientID]*tenancy.Client{
			"c1":     {ID: "c1", CompanyID: "co-1", Name: "Acme East"},
			"c2":     {ID: "c2", CompanyID: "co-1", Name: "Acme West"},
			"g1":     {ID: "g1", CompanyID: "co-2", Name: "Globex North"},
			"leaked": {ID: "leaked", CompanyID: "co-3", Name: "Foreign"},
		},
	}
	users := &fakeUserRepo{}
	sessions := &fakeSessionStore{}
	fetcher := &countingFetcher{ladders: map[kernel.CompanyID]hierarchy.Hierarchy{
		"co-2": {"admin": 1, "recruiter": 3},
	}}
	reporter := &collectingReporter{}

	ranks := hierarchysrv.NewHierarchyService(fetcher)
	svc := tenancysrv.NewTenancyService(orgs, users, ranks, sessions, reporter)
	return orgs, users, sessions, fetcher, reporter, svc
}

func newActor() *user.User {
	return &user.User{
		ID:                   "u1",
		RoleID:               "admin",
		CompanyID:            "co-1",
		AccessibleCompanyIDs: []kernel.CompanyID{"co-1", "co-2"},
		ActiveCompanyID:      "co-1",
		ActiveClientID:       "c1",
		Status:               user.UserStatusActive,
	}
}

// ============================================================================
// ResolveScope
// ============================================================================

func TestResolveScope_FlatCompany(t *testing.T) {
	_, _, _, _, reporter, svc := newFixture()

	scope, err := svc.ResolveScope(context.Background(), newActor(), "co-1")
	require.NoError(t, err)
	require.False(t, scope.FranchiseMode)
	require.Len(t, scope.Clients, 2)
	require.Empty(t, reporter.violations)
}

func TestResolveScope_FranchiseCompanyReportsViolations(t *testing.T) {
	_, _, _, _, reporter, svc := newFixture()

	scope, err := svc.ResolveScope(context.Background(), newActor(), "co-2")
	require.NoError(t, err)
	require.True(t, scope.FranchiseMode)

	// Only the legitimately owned client survives; the cross-tenant
	// reference is reported, not raised
	require.Len(t, scope.Clients, 1)
	require.Equal(t, kernel.ClientID("g1"), scope.Clients[0].ID)
	require.Len(t, reporter.violations, 1)
	require.Equal(t, kernel.ClientID("leaked"), reporter.violations[0].ClientID)
}

func TestResolveScope_DeniedForInaccessibleCompany(t *testing.T) {
	_, _, _, _, _, svc := newFixture()

	actor := newActor()
	actor.AccessibleCompanyIDs = []kernel.CompanyID{"co-1"}

	_, err := svc.ResolveScope(context.Background(), actor, "co-2")
	require.True(t, errx.IsType(err, errx.TypeAuthorization))
}

func TestResolveScope_UnknownCompany(t *testing.T) {
	_, _, _, _, _, svc := newFixture()

	actor := newActor()
	actor.AccessibleCompanyIDs = append(actor.AccessibleCompanyIDs, "co-missing")

	_, err := svc.ResolveScope(context.Background(), actor, "co-missing")
	require.True(t, errx.IsType(err, errx.TypeNotFound))
}

// ============================================================================
// RequestSwitch
// ============================================================================

func TestRequestSwitch_DeniedMutatesNothing(t *testing.T) {
	_, users, _, _, _, svc := newFixture()

	actor := newActor()
	_, err := svc.RequestSwitch(context.Background(), actor, tenancy.SwitchRequest{CompanyID: "co-3"})
	require.True(t, errx.IsType(err, errx.TypeAuthorization))

	require.Zero(t, users.contextUpdates)
	require.Equal(t, kernel.CompanyID("co-1"), actor.ActiveCompanyID)
}

func TestRequestSwitch_AlreadyActive(t *testing.T) {
	_, _, _, _, _, svc := newFixture()

	decision, err := svc.RequestSwitch(context.Background(), newActor(), tenancy.SwitchRequest{
		CompanyID: "co-1",
		ClientID:  "c1",
	})
	require.NoError(t, err)
	require.False(t, decision.SwitchRequired)
}

func TestRequestSwitch_DifferentContextRequiresSwitch(t *testing.T) {
	_, users, _, _, _, svc := newFixture()

	decision, err := svc.RequestSwitch(context.Background(), newActor(), tenancy.SwitchRequest{
		CompanyID: "co-2",
		ClientID:  "g1",
	})
	require.NoError(t, err)
	require.True(t, decision.SwitchRequired)
	require.Equal(t, kernel.CompanyID("co-2"), decision.CompanyID)
	require.Equal(t, kernel.ClientID("g1"), decision.ClientID)

	// The decision alone commits nothing
	require.Zero(t, users.contextUpdates)
}

func TestRequestSwitch_ClientOutsideScope(t *testing.T) {
	_, _, _, _, _, svc := newFixture()

	// "leaked" is referenced by co-2's franchise but owned elsewhere, so it
	// is outside the resolved scope
	_, err := svc.RequestSwitch(context.Background(), newActor(), tenancy.SwitchRequest{
		CompanyID: "co-2",
		ClientID:  "leaked",
	})
	require.True(t, errx.IsType(err, errx.TypeAuthorization))
}

// ============================================================================
// CommitSwitch
// ============================================================================

func TestCommitSwitch_PersistsAndInvalidatesHierarchy(t *testing.T) {
	_, users, sessions, fetcher, _, svc := newFixture()

	actor := newActor()
	actor.ActiveCompanyID = "co-2"
	actor.ActiveClientID = "g1"

	// Warm the hierarchy cache for the company being left
	require.NoError(t, svc.AuthorizeRoleAssignment(context.Background(), actor, tenancy.AssignRoleRequest{
		TargetUserID:  "u2",
		TargetRoleID:  "recruiter",
		TargetCompany: "co-2",
	}))
	require.Equal(t, 1, fetcher.calls)

	err := svc.CommitSwitch(context.Background(), actor, "sess-1", tenancy.SwitchRequest{
		CompanyID: "co-1",
		ClientID:  "c2",
	})
	require.NoError(t, err)

	// Persisted, applied to the entity, and recorded on the session
	require.Equal(t, 1, users.contextUpdates)
	require.Equal(t, kernel.CompanyID("co-1"), users.lastCompany)
	require.Equal(t, kernel.ClientID("c2"), users.lastClient)
	require.Equal(t, kernel.CompanyID("co-1"), actor.ActiveCompanyID)
	require.Equal(t, kernel.ClientID("c2"), actor.ActiveClientID)

	gotCompany, gotClient, err := sessions.GetActiveContext(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, kernel.CompanyID("co-1"), gotCompany)
	require.Equal(t, kernel.ClientID("c2"), gotClient)

	// The previous company's cached ladder was dropped
	require.NoError(t, svc.AuthorizeRoleAssignment(context.Background(), actor, tenancy.AssignRoleRequest{
		TargetUserID:  "u2",
		TargetRoleID:  "recruiter",
		TargetCompany: "co-2",
	}))
	require.Equal(t, 2, fetcher.calls)
}

func TestCommitSwitch_AlreadyActiveIsNoop(t *testing.T) {
	_, users, _, _, _, svc := newFixture()

	actor := newActor()
	err := svc.CommitSwitch(context.Background(), actor, "sess-1", tenancy.SwitchRequest{
		CompanyID: "co-1",
		ClientID:  "c1",
	})
	require.NoError(t, err)
	require.Zero(t, users.contextUpdates)
}

// ============================================================================
// AuthorizeRoleAssignment
// ============================================================================

func TestAuthorizeRoleAssignment(t *testing.T) {
	_, _, _, _, _, svc := newFixture()

	actor := newActor() // admin, rank 1 in co-2

	err := svc.AuthorizeRoleAssignment(context.Background(), actor, tenancy.AssignRoleRequest{
		TargetUserID:  "u2",
		TargetRoleID:  "recruiter",
		TargetCompany: "co-2",
	})
	require.NoError(t, err)

	// Peers cannot elevate each other
	err = svc.AuthorizeRoleAssignment(context.Background(), actor, tenancy.AssignRoleRequest{
		TargetUserID:  "u2",
		TargetRoleID:  "admin",
		TargetCompany: "co-2",
	})
	require.True(t, errx.IsType(err, errx.TypeAuthorization))
}

func TestAuthorizeRoleAssignment_InaccessibleCompany(t *testing.T) {
	_, _, _, _, _, svc := newFixture()

	err := svc.AuthorizeRoleAssignment(context.Background(), newActor(), tenancy.AssignRoleRequest{
		TargetUserID:  "u2",
		TargetRoleID:  "recruiter",
		TargetCompany: "co-3",
	})
	require.True(t, errx.IsType(err, errx.TypeAuthorization))
}
