package hierarchy_test

import (
	"testing"

	"github.com/maprecruit/platform/pkg/iam/hierarchy"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/stretchr/testify/require"
)

func TestIsSeniorTo(t *testing.T) {
	ladder := hierarchy.FromEntries([]hierarchy.Entry{
		{RoleID: "admin", Rank: 1},
		{RoleID: "manager", Rank: 2},
		{RoleID: "recruiter", Rank: 3},
		{RoleID: "peer-recruiter", Rank: 3},
	})

	tests := []struct {
		name    string
		my      string
		target  string
		outcome bool
	}{
		{"lower rank outranks higher", "admin", "recruiter", true},
		{"higher rank does not outrank lower", "recruiter", "admin", false},
		{"equal rank is never senior", "recruiter", "peer-recruiter", false},
		{"role is never senior to itself", "admin", "admin", false},
		{"unranked actor outranks nobody", "ghost", "recruiter", false},
		{"ranked actor outranks unranked target", "recruiter", "ghost", true},
		{"both unranked", "ghost", "phantom", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hierarchy.IsSeniorTo(ladder, kernel.RoleID(tt.my), kernel.RoleID(tt.target))
			require.Equal(t, tt.outcome, got)
		})
	}
}

func TestIsSeniorTo_EmptyHierarchyIsPermissive(t *testing.T) {
	require.True(t, hierarchy.IsSeniorTo(hierarchy.Hierarchy{}, "anyone", "anyone-else"))
	require.True(t, hierarchy.IsSeniorTo(nil, "anyone", "anyone"))
}

func TestRank(t *testing.T) {
	ladder := hierarchy.FromEntries([]hierarchy.Entry{{RoleID: "admin", Rank: 1}})

	rank, ok := ladder.Rank("admin")
	require.True(t, ok)
	require.Equal(t, 1, rank)

	_, ok = ladder.Rank("ghost")
	require.False(t, ok)
}
