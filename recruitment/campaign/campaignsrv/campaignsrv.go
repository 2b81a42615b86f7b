package campaignsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/recruitment/campaign"
)

// CampaignService provides business operations for campaigns. Every read
// goes through the sharing resolver and every write through its edit check;
// reaching a campaign outside the active context yields a switch decision
// instead of the campaign.
type CampaignService struct {
	campaignRepo campaign.Repository
	userRepo     user.UserRepository
	policy       sharing.Policy
	tenancySrv   TenancyResolver
}

// TenancyResolver is the slice of the tenancy service campaigns need
type TenancyResolver interface {
	RequestSwitch(ctx context.Context, actor *user.User, target tenancy.SwitchRequest) (*tenancy.SwitchDecision, error)
}

// NewCampaignService creates a new instance of the campaign service
func NewCampaignService(
	campaignRepo campaign.Repository,
	userRepo user.UserRepository,
	policy sharing.Policy,
	tenancySrv TenancyResolver,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		policy:       policy,
		tenancySrv:   tenancySrv,
	}
}

// CreateCampaign creates a campaign in the actor's active context. Access
// settings are born with the campaign; the default is CLIENT level scoped to
// the campaign's client.
func (s *CampaignService) CreateCampaign(ctx context.Context, req campaign.CreateCampaignRequest, actorID kernel.UserID) (*campaign.Campaign, error) {
	actor, err := s.activeActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.BelongsToClient(req.ClientID) {
		return nil, campaign.ErrInsufficientPermissions().
			WithDetail("client_id", req.ClientID.String())
	}

	level := req.Level
	if level == "" {
		level = sharing.LevelClient
	}

	access := &sharing.AccessSettings{
		Level:     level,
		OwnerID:   actor.ID,
		UpdatedAt: time.Now(),
	}
	if level == sharing.LevelClient {
		access.ClientID = req.ClientID
	}
	if err := access.Validate(); err != nil {
		return nil, err
	}

	newCampaign := &campaign.Campaign{
		ID:          kernel.NewCampaignID(uuid.NewString()),
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   actor.ActiveCompanyID,
		ClientID:    req.ClientID,
		OwnerID:     actor.ID,
		Status:      campaign.CampaignStatusDraft,
		Access:      access,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.campaignRepo.Create(ctx, newCampaign); err != nil {
		return nil, errx.Wrap(err, "failed to create campaign", errx.TypeInternal)
	}

	return newCampaign, nil
}

// GetCampaign retrieves a campaign for viewing. Access is checked first;
// then, if the campaign belongs to a reachable but inactive context, the
// result carries the switch the UI must confirm instead of failing.
func (s *CampaignService) GetCampaign(ctx context.Context, actorID kernel.UserID, campaignID kernel.CampaignID) (*campaign.CampaignResult, error) {
	actor, err := s.activeActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	entity, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, campaign.ErrCampaignNotFound().WithDetail("campaign_id", campaignID.String())
	}

	if !s.policy.HasAccess(actor, entity.Access) {
		return nil, campaign.ErrInsufficientPermissions().
			WithDetail("campaign_id", campaignID.String())
	}

	if entity.CompanyID != actor.ActiveCompanyID {
		decision, err := s.tenancySrv.RequestSwitch(ctx, actor, tenancy.SwitchRequest{
			CompanyID: entity.CompanyID,
			ClientID:  entity.ClientID,
		})
		if err != nil {
			return nil, err
		}
		return &campaign.CampaignResult{Switch: decision}, nil
	}

	return &campaign.CampaignResult{Campaign: entity}, nil
}

// UpdateCampaign mutates campaign details after the edit check
func (s *CampaignService) UpdateCampaign(ctx context.Context, actorID kernel.UserID, campaignID kernel.CampaignID, req campaign.UpdateCampaignRequest) (*campaign.Campaign, error) {
	_, entity, err := s.editable(ctx, actorID, campaignID)
	if err != nil {
		return nil, err
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	entity.UpdateDetails(name, description)

	if err := s.campaignRepo.Update(ctx, entity); err != nil {
		return nil, errx.Wrap(err, "failed to update campaign", errx.TypeInternal)
	}
	return entity, nil
}

// LaunchCampaign activates a draft campaign
func (s *CampaignService) LaunchCampaign(ctx context.Context, actorID kernel.UserID, campaignID kernel.CampaignID) (*campaign.Campaign, error) {
	_, entity, err := s.editable(ctx, actorID, campaignID)
	if err != nil {
		return nil, err
	}

	if err := entity.Launch(); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(ctx, entity); err != nil {
		return nil, errx.Wrap(err, "failed to launch campaign", errx.TypeInternal)
	}
	return entity, nil
}

// DeleteCampaign removes a campaign; only the owner may delete
func (s *CampaignService) DeleteCampaign(ctx context.Context, actorID kernel.UserID, campaignID kernel.CampaignID) error {
	entity, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return campaign.ErrCampaignNotFound().WithDetail("campaign_id", campaignID.String())
	}

	if entity.OwnerID != actorID {
		return campaign.ErrUnauthorizedUpdate().WithDetail("campaign_id", campaignID.String())
	}

	if err := s.campaignRepo.Delete(ctx, campaignID); err != nil {
		return errx.Wrap(err, "failed to delete campaign", errx.TypeInternal)
	}
	return nil
}

// ListClientCampaigns lists a client's campaigns the actor can view
func (s *CampaignService) ListClientCampaigns(ctx context.Context, actorID kernel.UserID, clientID kernel.ClientID, pagination kernel.PaginationOptions) (*campaign.PaginatedCampaignsResponse, error) {
	actor, err := s.activeActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	page, err := s.campaignRepo.ListByClient(ctx, clientID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list campaigns", errx.TypeInternal)
	}

	visible := make([]campaign.Campaign, 0, len(page.Items))
	for _, entity := range page.Items {
		if s.policy.HasAccess(actor, entity.Access) {
			visible = append(visible, entity)
		}
	}

	return &campaign.PaginatedCampaignsResponse{
		Items: visible,
		Page:  page.Page,
		Empty: len(visible) == 0,
	}, nil
}

func (s *CampaignService) activeActor(ctx context.Context, actorID kernel.UserID) (*user.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}
	return actor, nil
}

func (s *CampaignService) editable(ctx context.Context, actorID kernel.UserID, campaignID kernel.CampaignID) (*user.User, *campaign.Campaign, error) {
	actor, err := s.activeActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	entity, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, nil, campaign.ErrCampaignNotFound().WithDetail("campaign_id", campaignID.String())
	}

	if !s.policy.CanEdit(actor, entity.Access) {
		return nil, nil, campaign.ErrUnauthorizedUpdate().
			WithDetail("campaign_id", campaignID.String()).
			WithDetail("user_id", actorID.String())
	}

	return actor, entity, nil
}
