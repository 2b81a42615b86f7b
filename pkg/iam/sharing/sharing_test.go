package sharing_test

import (
	"testing"

	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/stretchr/testify/require"
)

type testAccessor struct {
	id      kernel.UserID
	clients []kernel.ClientID
}

func (a testAccessor) GetID() kernel.UserID { return a.id }

func (a testAccessor) BelongsToClient(clientID kernel.ClientID) bool {
	for _, id := range a.clients {
		if id == clientID {
			return true
		}
	}
	return false
}

func TestPolicy_HasAccess_MissingSettings(t *testing.T) {
	user := testAccessor{id: "u1"}

	require.True(t, sharing.Policy{AllowOnMissing: true}.HasAccess(user, nil))
	require.False(t, sharing.Policy{AllowOnMissing: false}.HasAccess(user, nil))
}

func TestPolicy_HasAccess_OwnerAlwaysWins(t *testing.T) {
	owner := testAccessor{id: "owner"}
	access := &sharing.AccessSettings{
		Level:   sharing.LevelPrivate,
		OwnerID: "owner",
	}

	require.True(t, sharing.DefaultPolicy().HasAccess(owner, access))
	require.True(t, sharing.DefaultPolicy().CanEdit(owner, access))
}

func TestPolicy_HasAccess_ShareRulePrecedesLevel(t *testing.T) {
	stranger := testAccessor{id: "u2"}
	access := &sharing.AccessSettings{
		Level:   sharing.LevelPrivate,
		OwnerID: "owner",
		SharedWith: []sharing.ShareRule{
			{EntityID: "u2", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionView},
		},
	}

	// A VIEW share opens a PRIVATE resource for viewing but not editing
	require.True(t, sharing.DefaultPolicy().HasAccess(stranger, access))
	require.False(t, sharing.DefaultPolicy().CanEdit(stranger, access))
}

func TestPolicy_CanEdit_RequiresEditGrant(t *testing.T) {
	editor := testAccessor{id: "u3"}
	access := &sharing.AccessSettings{
		Level:   sharing.LevelPrivate,
		OwnerID: "owner",
		SharedWith: []sharing.ShareRule{
			{EntityID: "u3", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionEdit},
		},
	}

	require.True(t, sharing.DefaultPolicy().HasAccess(editor, access))
	require.True(t, sharing.DefaultPolicy().CanEdit(editor, access))
}

func TestPolicy_LevelFallback(t *testing.T) {
	member := testAccessor{id: "member", clients: []kernel.ClientID{"c1"}}
	outsider := testAccessor{id: "outsider"}

	company := &sharing.AccessSettings{Level: sharing.LevelCompany, OwnerID: "owner"}
	client := &sharing.AccessSettings{Level: sharing.LevelClient, OwnerID: "owner", ClientID: "c1"}
	private := &sharing.AccessSettings{Level: sharing.LevelPrivate, OwnerID: "owner"}

	// COMPANY grants view to everyone in the company
	require.True(t, sharing.DefaultPolicy().HasAccess(member, company))
	require.True(t, sharing.DefaultPolicy().HasAccess(outsider, company))

	// CLIENT grants view to client members only
	require.True(t, sharing.DefaultPolicy().HasAccess(member, client))
	require.False(t, sharing.DefaultPolicy().HasAccess(outsider, client))

	// PRIVATE denies non-owners without a rule
	require.False(t, sharing.DefaultPolicy().HasAccess(member, private))

	// The level fallback never grants edit
	require.False(t, sharing.DefaultPolicy().CanEdit(member, company))
	require.False(t, sharing.DefaultPolicy().CanEdit(member, client))
}

func TestPolicy_MalformedSettingsDeny(t *testing.T) {
	user := testAccessor{id: "u1", clients: []kernel.ClientID{"c1"}}

	cases := map[string]*sharing.AccessSettings{
		"unknown level": {
			Level:   sharing.AccessLevel("EVERYONE"),
			OwnerID: "owner",
		},
		"client level without client id": {
			Level:   sharing.LevelClient,
			OwnerID: "owner",
		},
		"duplicate rules for one entity": {
			Level:   sharing.LevelCompany,
			OwnerID: "owner",
			SharedWith: []sharing.ShareRule{
				{EntityID: "u1", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionView},
				{EntityID: "u1", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionEdit},
			},
		},
	}

	for name, access := range cases {
		t.Run(name, func(t *testing.T) {
			require.False(t, sharing.DefaultPolicy().HasAccess(user, access))
			require.False(t, sharing.DefaultPolicy().CanEdit(user, access))
		})
	}
}

func TestPolicy_MalformedDeniesEvenTheOwner(t *testing.T) {
	owner := testAccessor{id: "owner"}
	access := &sharing.AccessSettings{
		Level:   sharing.AccessLevel("bogus"),
		OwnerID: "owner",
	}

	require.False(t, sharing.DefaultPolicy().HasAccess(owner, access))
}

func TestAccessSettings_RuleForSkipsUnknownEntityTypes(t *testing.T) {
	access := &sharing.AccessSettings{
		Level:   sharing.LevelPrivate,
		OwnerID: "owner",
		SharedWith: []sharing.ShareRule{
			{EntityID: "u1", EntityType: sharing.EntityType("TEAM"), Permission: sharing.PermissionEdit},
		},
	}

	_, ok := access.RuleFor("u1")
	require.False(t, ok)

	// And the resolver falls through to the level default
	user := testAccessor{id: "u1"}
	require.False(t, sharing.DefaultPolicy().HasAccess(user, access))
}

func TestAccessSettings_UpsertKeepsOneRulePerEntity(t *testing.T) {
	access := &sharing.AccessSettings{Level: sharing.LevelPrivate, OwnerID: "owner"}

	access.Upsert(sharing.ShareRule{EntityID: "u1", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionView})
	access.Upsert(sharing.ShareRule{EntityID: "u1", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionEdit})

	require.Len(t, access.SharedWith, 1)
	rule, ok := access.RuleFor("u1")
	require.True(t, ok)
	require.Equal(t, sharing.PermissionEdit, rule.Permission)
}

func TestAccessSettings_RemoveRule(t *testing.T) {
	access := &sharing.AccessSettings{
		Level:   sharing.LevelPrivate,
		OwnerID: "owner",
		SharedWith: []sharing.ShareRule{
			{EntityID: "u1", EntityType: sharing.EntityTypeUser, Permission: sharing.PermissionView},
		},
	}

	require.True(t, access.RemoveRule("u1"))
	require.False(t, access.RemoveRule("u1"))
	require.Empty(t, access.SharedWith)
}
