package sharingsrv

import (
	"context"

	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
)

// SharingService owns access settings: read-path decisions for resource
// handlers and the mutation API behind the sharing UI.
type SharingService struct {
	repo     sharing.Repository
	userRepo user.UserRepository
	policy   sharing.Policy
}

// NewSharingService creates a new instance of the sharing service
func NewSharingService(repo sharing.Repository, userRepo user.UserRepository, policy sharing.Policy) *SharingService {
	return &SharingService{
		repo:     repo,
		userRepo: userRepo,
		policy:   policy,
	}
}

// Policy exposes the resolver for collaborators that already hold the user
// and settings in memory.
func (s *SharingService) Policy() sharing.Policy {
	return s.policy
}

// CheckAccess decides whether the actor may view the resource
func (s *SharingService) CheckAccess(ctx context.Context, actorID kernel.UserID, resourceID string) (bool, error) {
	actor, access, err := s.load(ctx, actorID, resourceID)
	if err != nil {
		return false, err
	}
	return s.policy.HasAccess(actor, access), nil
}

// CheckEdit decides whether the actor may mutate the resource
func (s *SharingService) CheckEdit(ctx context.Context, actorID kernel.UserID, resourceID string) (bool, error) {
	actor, access, err := s.load(ctx, actorID, resourceID)
	if err != nil {
		return false, err
	}
	return s.policy.CanEdit(actor, access), nil
}

// GetSettings returns the settings attached to a resource; only users who can
// view the resource may inspect its sharing state.
func (s *SharingService) GetSettings(ctx context.Context, actorID kernel.UserID, resourceID string) (*sharing.AccessSettings, error) {
	actor, access, err := s.load(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}
	if !s.policy.HasAccess(actor, access) {
		return nil, sharing.ErrAccessDenied().WithDetail("resource_id", resourceID)
	}
	if access == nil {
		return nil, sharing.ErrSettingsNotFound().WithDetail("resource_id", resourceID)
	}
	return access, nil
}

// UpdateLevel changes the resource's access level. Only users with edit
// rights on the resource may reshape its sharing.
func (s *SharingService) UpdateLevel(ctx context.Context, actorID kernel.UserID, resourceID string, req sharing.UpdateLevelRequest) (*sharing.AccessSettings, error) {
	access, err := s.loadForMutation(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}

	access.Level = req.Level
	access.ClientID = req.ClientID
	if err := access.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, resourceID, access); err != nil {
		return nil, errx.Wrap(err, "failed to save access settings", errx.TypeInternal)
	}
	return access, nil
}

// UpsertRule adds or replaces the share rule for one user, keeping the
// one-rule-per-entity invariant.
func (s *SharingService) UpsertRule(ctx context.Context, actorID kernel.UserID, resourceID string, req sharing.UpsertRuleRequest) (*sharing.AccessSettings, error) {
	access, err := s.loadForMutation(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}

	grantee, err := s.userRepo.FindByID(ctx, req.EntityID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", req.EntityID.String())
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = grantee.FirstName + " " + grantee.LastName
	}

	access.Upsert(sharing.ShareRule{
		EntityID:    req.EntityID,
		EntityType:  sharing.EntityTypeUser,
		Permission:  req.Permission,
		Role:        req.Role,
		DisplayName: displayName,
	})

	if err := s.repo.Save(ctx, resourceID, access); err != nil {
		return nil, errx.Wrap(err, "failed to save access settings", errx.TypeInternal)
	}
	return access, nil
}

// RemoveRule drops the share rule for one user
func (s *SharingService) RemoveRule(ctx context.Context, actorID kernel.UserID, resourceID string, entityID kernel.UserID) (*sharing.AccessSettings, error) {
	access, err := s.loadForMutation(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}

	access.RemoveRule(entityID)

	if err := s.repo.Save(ctx, resourceID, access); err != nil {
		return nil, errx.Wrap(err, "failed to save access settings", errx.TypeInternal)
	}
	return access, nil
}

func (s *SharingService) load(ctx context.Context, actorID kernel.UserID, resourceID string) (*user.User, *sharing.AccessSettings, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}

	access, err := s.repo.GetByResource(ctx, resourceID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			// A resource without settings resolves through the policy default
			return actor, nil, nil
		}
		return nil, nil, errx.Wrap(err, "failed to load access settings", errx.TypeInternal)
	}

	return actor, access, nil
}

func (s *SharingService) loadForMutation(ctx context.Context, actorID kernel.UserID, resourceID string) (*sharing.AccessSettings, error) {
	actor, access, err := s.load(ctx, actorID, resourceID)
	if err != nil {
		return nil, err
	}
	if access == nil {
		return nil, sharing.ErrSettingsNotFound().WithDetail("resource_id", resourceID)
	}
	if !s.policy.CanEdit(actor, access) {
		return nil, sharing.ErrEditDenied().
			WithDetail("resource_id", resourceID).
			WithDetail("user_id", actorID.String())
	}
	return access, nil
}
