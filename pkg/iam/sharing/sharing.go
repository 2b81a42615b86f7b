package sharing

import (
	"time"

	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/pkg/logx"
)

// AccessLevel is the level-based default scope of a shareable resource
type AccessLevel string

const (
	LevelPrivate AccessLevel = "PRIVATE" // Owner and explicit shares only
	LevelClient  AccessLevel = "CLIENT"  // Visible to members of one client
	LevelCompany AccessLevel = "COMPANY" // Visible to the whole company
)

// SharePermission is the grant carried by an explicit share rule
type SharePermission string

const (
	PermissionView SharePermission = "VIEW"
	PermissionEdit SharePermission = "EDIT"
)

// EntityType identifies what kind of principal a share rule targets
type EntityType string

const (
	EntityTypeUser EntityType = "USER"
)

// ShareRule is an explicit per-user grant that overrides the level default
type ShareRule struct {
	EntityID    kernel.UserID   `db:"entity_id" json:"entity_id"`
	EntityType  EntityType      `db:"entity_type" json:"entity_type"`
	Permission  SharePermission `db:"permission" json:"permission"`
	Role        string          `db:"role" json:"role,omitempty"`
	DisplayName string          `db:"display_name" json:"display_name,omitempty"`
}

// AccessSettings is attached to a shareable resource and drives all
// view/edit decisions for it
type AccessSettings struct {
	Level      AccessLevel     `json:"level"`
	OwnerID    kernel.UserID   `json:"owner_id"`
	ClientID   kernel.ClientID `json:"client_id,omitempty"`
	SharedWith []ShareRule     `json:"shared_with"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Accessor is the subset of user state the resolver needs. The iam user
// entity satisfies it.
type Accessor interface {
	GetID() kernel.UserID
	BelongsToClient(clientID kernel.ClientID) bool
}

// ============================================================================
// Domain Methods
// ============================================================================

// Validate checks structural invariants. Callers must treat a validation
// failure as access denied, never as a crash.
func (a *AccessSettings) Validate() error {
	switch a.Level {
	case LevelPrivate, LevelClient, LevelCompany:
	default:
		return ErrInvalidAccessSettings().WithDetail("level", string(a.Level))
	}

	if a.Level == LevelClient && a.ClientID.IsEmpty() {
		return ErrInvalidAccessSettings().WithDetail("reason", "CLIENT level requires client_id")
	}

	seen := make(map[kernel.UserID]struct{}, len(a.SharedWith))
	for _, rule := range a.SharedWith {
		if _, dup := seen[rule.EntityID]; dup {
			return ErrDuplicateShareRule().WithDetail("entity_id", rule.EntityID.String())
		}
		seen[rule.EntityID] = struct{}{}
	}

	return nil
}

// RuleFor returns the share rule targeting the given user, if any. Rules
// with an unrecognized entity type are skipped, not fatal.
func (a *AccessSettings) RuleFor(userID kernel.UserID) (ShareRule, bool) {
	for _, rule := range a.SharedWith {
		if rule.EntityType != EntityTypeUser {
			logx.Warnf("sharing: ignoring rule with unknown entity type %q for entity %s",
				rule.EntityType, rule.EntityID)
			continue
		}
		if rule.EntityID == userID {
			return rule, true
		}
	}
	return ShareRule{}, false
}

// Upsert replaces or appends the rule for its entity, keeping at most one
// rule per entity id.
func (a *AccessSettings) Upsert(rule ShareRule) {
	for i, existing := range a.SharedWith {
		if existing.EntityID == rule.EntityID {
			a.SharedWith[i] = rule
			a.UpdatedAt = time.Now()
			return
		}
	}
	a.SharedWith = append(a.SharedWith, rule)
	a.UpdatedAt = time.Now()
}

// RemoveRule drops the rule for the given entity, reporting whether one existed
func (a *AccessSettings) RemoveRule(entityID kernel.UserID) bool {
	for i, rule := range a.SharedWith {
		if rule.EntityID == entityID {
			a.SharedWith = append(a.SharedWith[:i], a.SharedWith[i+1:]...)
			a.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// ============================================================================
// Policy Resolver
// ============================================================================

// Policy holds the resolver's configurable defaults. AllowOnMissing keeps the
// historical behavior of treating a resource without access settings as open;
// a freshly provisioned tenant has no settings anywhere and would otherwise
// lock everyone out. Flagged for product review before flipping to deny.
type Policy struct {
	AllowOnMissing bool
}

// DefaultPolicy mirrors current production behavior
func DefaultPolicy() Policy {
	return Policy{AllowOnMissing: true}
}

// HasAccess decides whether the user may view a resource guarded by access.
// Precedence: missing settings, owner, explicit share rule, then the
// level-based default. Malformed settings deny.
func (p Policy) HasAccess(user Accessor, access *AccessSettings) bool {
	if access == nil {
		return p.AllowOnMissing
	}
	if err := access.Validate(); err != nil {
		logx.Warnf("sharing: denying access on malformed settings: %v", err)
		return false
	}

	if user.GetID() == access.OwnerID {
		return true
	}

	if _, ok := access.RuleFor(user.GetID()); ok {
		// Both VIEW and EDIT grant view
		return true
	}

	switch access.Level {
	case LevelCompany:
		return true
	case LevelClient:
		return user.BelongsToClient(access.ClientID)
	default: // LevelPrivate
		return false
	}
}

// CanEdit decides whether the user may mutate the resource. The level-based
// fallback never grants edit: COMPANY and CLIENT visibility are view-only
// unless an explicit EDIT share exists.
func (p Policy) CanEdit(user Accessor, access *AccessSettings) bool {
	if access == nil {
		return p.AllowOnMissing
	}
	if err := access.Validate(); err != nil {
		logx.Warnf("sharing: denying edit on malformed settings: %v", err)
		return false
	}

	if user.GetID() == access.OwnerID {
		return true
	}

	if rule, ok := access.RuleFor(user.GetID()); ok {
		return rule.Permission == PermissionEdit
	}

	return false
}
