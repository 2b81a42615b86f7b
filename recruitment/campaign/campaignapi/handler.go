package campaignapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maprecruit/platform/pkg/iam/auth"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/recruitment/campaign"
	"github.com/maprecruit/platform/recruitment/campaign/campaignsrv"
)

// Handlers provides HTTP handlers for campaign operations
type Handlers struct {
	service *campaignsrv.CampaignService
}

// NewHandlers creates a new campaign handlers instance
func NewHandlers(service *campaignsrv.CampaignService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateCampaign creates a new campaign
// POST /api/campaigns
func (h *Handlers) CreateCampaign(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return campaign.ErrInsufficientPermissions()
	}

	var req campaign.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return campaign.ErrInsufficientPermissions().WithDetail("parse_error", err.Error())
	}

	newCampaign, err := h.service.CreateCampaign(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newCampaign)
}

// GetCampaign retrieves a campaign, or the context switch needed to open it
// GET /api/campaigns/:id
func (h *Handlers) GetCampaign(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return campaign.ErrInsufficientPermissions()
	}

	campaignID := kernel.CampaignID(c.Params("id"))
	if campaignID.IsEmpty() {
		return campaign.ErrCampaignNotFound().WithDetail("id", "missing or empty")
	}

	result, err := h.service.GetCampaign(c.Context(), authContext.UserID, campaignID)
	if err != nil {
		return err
	}

	if result.Switch != nil && result.Switch.SwitchRequired {
		// The campaign is reachable but lives outside the active context;
		// the client confirms the switch and retries.
		return c.Status(fiber.StatusConflict).JSON(result)
	}

	return c.JSON(result)
}

// UpdateCampaign updates a campaign
// PUT /api/campaigns/:id
func (h *Handlers) UpdateCampaign(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return campaign.ErrInsufficientPermissions()
	}

	campaignID := kernel.CampaignID(c.Params("id"))
	var req campaign.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return campaign.ErrInsufficientPermissions().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateCampaign(c.Context(), authContext.UserID, campaignID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// LaunchCampaign activates a draft campaign
// POST /api/campaigns/:id/launch
func (h *Handlers) LaunchCampaign(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return campaign.ErrInsufficientPermissions()
	}

	campaignID := kernel.CampaignID(c.Params("id"))
	launched, err := h.service.LaunchCampaign(c.Context(), authContext.UserID, campaignID)
	if err != nil {
		return err
	}

	return c.JSON(launched)
}

// DeleteCampaign removes a campaign
// DELETE /api/campaigns/:id
func (h *Handlers) DeleteCampaign(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return campaign.ErrInsufficientPermissions()
	}

	campaignID := kernel.CampaignID(c.Params("id"))
	if err := h.service.DeleteCampaign(c.Context(), authContext.UserID, campaignID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListClientCampaigns lists a client's campaigns visible to the actor
// GET /api/campaigns/by-client/:clientId
func (h *Handlers) ListClientCampaigns(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return campaign.ErrInsufficientPermissions()
	}

	clientID := kernel.ClientID(c.Params("clientId"))
	if clientID.IsEmpty() {
		return campaign.ErrCampaignNotFound().WithDetail("client_id", "missing or empty")
	}

	pagination := parsePaginationOptions(c)
	campaigns, err := h.service.ListClientCampaigns(c.Context(), authContext.UserID, clientID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(campaigns)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes mounts the campaign endpoints behind auth middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, middleware *auth.TokenMiddleware) {
	grp := app.Group("/api/campaigns", middleware.Handle())
	grp.Post("/", handlers.CreateCampaign)
	grp.Get("/by-client/:clientId", handlers.ListClientCampaigns)
	grp.Get("/:id", handlers.GetCampaign)
	grp.Put("/:id", handlers.UpdateCampaign)
	grp.Post("/:id/launch", handlers.LaunchCampaign)
	grp.Delete("/:id", handlers.DeleteCampaign)
}
