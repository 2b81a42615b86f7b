package hierarchy

import (
	"github.com/maprecruit/platform/pkg/kernel"
)

// Entry is one role's position in a company's seniority ladder
type Entry struct {
	RoleID kernel.RoleID `json:"roleId"`
	Rank   int           `json:"rank"`
}

// Hierarchy maps each role to its rank. Lower rank is more senior. Ranks are
// unique per role within a company, but two different roles may share a rank
// and are then peers.
type Hierarchy map[kernel.RoleID]int

// FromEntries builds a hierarchy from fetched rows
func FromEntries(entries []Entry) Hierarchy {
	h := make(Hierarchy, len(entries))
	for _, e := range entries {
		h[e.RoleID] = e.Rank
	}
	return h
}

// Rank returns the rank for a role; roles absent from the hierarchy sit at
// the bottom of the ladder.
func (h Hierarchy) Rank(roleID kernel.RoleID) (int, bool) {
	rank, ok := h[roleID]
	return rank, ok
}

// IsSeniorTo reports whether myRole outranks targetRole.
//
// An empty hierarchy is permissive: a freshly provisioned company has no
// ladder configured yet and must not lock its administrators out. Roles
// missing from a non-empty hierarchy rank below every configured role.
// Equal rank is never senior; peers cannot act on each other.
func IsSeniorTo(h Hierarchy, myRole, targetRole kernel.RoleID) bool {
	if len(h) == 0 {
		return true
	}

	myRank, ok := h[myRole]
	if !ok {
		return false
	}

	targetRank, ok := h[targetRole]
	if !ok {
		// Unranked target sits at the bottom; any ranked role outranks it
		return true
	}

	return myRank < targetRank
}
