package tenancy_test

import (
	"testing"

	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/stretchr/testify/require"
)

type collectingReporter struct {
	violations []tenancy.IntegrityViolation
}

func (r *collectingReporter) ReportIntegrityViolation(v tenancy.IntegrityViolation) {
	r.violations = append(r.violations, v)
}

func clientIDs(clients []tenancy.Client) []kernel.ClientID {
	ids := make([]kernel.ClientID, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestResolveClients_FlatMode(t *testing.T) {
	company := &tenancy.Company{ID: "co-1", FranchiseMode: false}
	clients := []tenancy.Client{
		{ID: "c1", CompanyID: "co-1"},
		{ID: "c2", CompanyID: "co-1"},
		{ID: "c3", CompanyID: "co-other"},
	}

	reporter := &collectingReporter{}
	resolved := tenancy.ResolveClients(company, nil, clients, reporter)

	require.ElementsMatch(t, []kernel.ClientID{"c1", "c2"}, clientIDs(resolved))
	require.Empty(t, reporter.violations)
}

func TestResolveClients_FranchiseMode(t *testing.T) {
	company := &tenancy.Company{ID: "co-1", FranchiseMode: true}
	franchises := []tenancy.Franchise{
		{ID: "f1", CompanyID: "co-1", ClientIDs: []kernel.ClientID{"c1", "c2"}},
		{ID: "f2", CompanyID: "co-other", ClientIDs: []kernel.ClientID{"c4"}},
	}
	clients := []tenancy.Client{
		{ID: "c1", CompanyID: "co-1"},
		{ID: "c2", CompanyID: "co-1"},
		{ID: "c3", CompanyID: "co-1"}, // owned but referenced by no franchise
		{ID: "c4", CompanyID: "co-1"}, // referenced only by a foreign franchise
	}

	reporter := &collectingReporter{}
	resolved := tenancy.ResolveClients(company, franchises, clients, reporter)

	require.ElementsMatch(t, []kernel.ClientID{"c1", "c2"}, clientIDs(resolved))
	require.Empty(t, reporter.violations)
}

func TestResolveClients_ReportsCrossTenantReference(t *testing.T) {
	company := &tenancy.Company{ID: "co-1", FranchiseMode: true}
	franchises := []tenancy.Franchise{
		{ID: "f1", CompanyID: "co-1", ClientIDs: []kernel.ClientID{"c1", "stolen"}},
	}
	clients := []tenancy.Client{
		{ID: "c1", CompanyID: "co-1"},
		{ID: "stolen", CompanyID: "co-other"},
	}

	reporter := &collectingReporter{}
	resolved := tenancy.ResolveClients(company, franchises, clients, reporter)

	// The mismatched client is excluded, reported, and never raised as an error
	require.ElementsMatch(t, []kernel.ClientID{"c1"}, clientIDs(resolved))
	require.Len(t, reporter.violations, 1)
	require.Equal(t, kernel.ClientID("stolen"), reporter.violations[0].ClientID)
	require.Equal(t, kernel.FranchiseID("f1"), reporter.violations[0].FranchiseID)
	require.Equal(t, kernel.CompanyID("co-1"), reporter.violations[0].CompanyID)
}

func TestCanSwitchTo(t *testing.T) {
	u := &user.User{
		ID:                   "u1",
		CompanyID:            "co-1",
		AccessibleCompanyIDs: []kernel.CompanyID{"co-1", "co-2"},
	}

	require.True(t, tenancy.CanSwitchTo(u, "co-2"))
	require.False(t, tenancy.CanSwitchTo(u, "co-3"))
}
