package sharingapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maprecruit/platform/pkg/iam/auth"
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/iam/sharing/sharingsrv"
	"github.com/maprecruit/platform/pkg/kernel"
)

// Handlers provides HTTP handlers for the sharing UI
type Handlers struct {
	service *sharingsrv.SharingService
}

// NewHandlers creates a new sharing handlers instance
func NewHandlers(service *sharingsrv.SharingService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetSettings returns the access settings of a resource
// GET /api/resources/:id/sharing
func (h *Handlers) GetSettings(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return sharing.ErrAccessDenied()
	}

	resourceID := c.Params("id")
	if resourceID == "" {
		return sharing.ErrSettingsNotFound().WithDetail("id", "missing or empty")
	}

	access, err := h.service.GetSettings(c.Context(), authContext.UserID, resourceID)
	if err != nil {
		return err
	}

	return c.JSON(sharing.AccessSettingsResponse{
		ResourceID: resourceID,
		Level:      access.Level,
		OwnerID:    access.OwnerID,
		ClientID:   access.ClientID,
		SharedWith: access.SharedWith,
	})
}

// UpdateLevel changes a resource's access level
// PUT /api/resources/:id/sharing/level
func (h *Handlers) UpdateLevel(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return sharing.ErrAccessDenied()
	}

	resourceID := c.Params("id")
	var req sharing.UpdateLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return sharing.ErrInvalidAccessSettings().WithDetail("parse_error", err.Error())
	}

	access, err := h.service.UpdateLevel(c.Context(), authContext.UserID, resourceID, req)
	if err != nil {
		return err
	}

	return c.JSON(access)
}

// UpsertRule adds or replaces a share rule
// PUT /api/resources/:id/sharing/rules
func (h *Handlers) UpsertRule(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return sharing.ErrAccessDenied()
	}

	resourceID := c.Params("id")
	var req sharing.UpsertRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return sharing.ErrInvalidAccessSettings().WithDetail("parse_error", err.Error())
	}

	access, err := h.service.UpsertRule(c.Context(), authContext.UserID, resourceID, req)
	if err != nil {
		return err
	}

	return c.JSON(access)
}

// RemoveRule deletes a share rule
// DELETE /api/resources/:id/sharing/rules/:entityId
func (h *Handlers) RemoveRule(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return sharing.ErrAccessDenied()
	}

	resourceID := c.Params("id")
	entityID := kernel.UserID(c.Params("entityId"))
	if entityID.IsEmpty() {
		return sharing.ErrInvalidAccessSettings().WithDetail("entity_id", "missing or empty")
	}

	access, err := h.service.RemoveRule(c.Context(), authContext.UserID, resourceID, entityID)
	if err != nil {
		return err
	}

	return c.JSON(access)
}

// RegisterRoutes mounts the sharing endpoints behind auth middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, middleware *auth.TokenMiddleware) {
	grp := app.Group("/api/resources/:id/sharing", middleware.Handle())
	grp.Get("/", handlers.GetSettings)
	grp.Put("/level", handlers.UpdateLevel)
	grp.Put("/rules", handlers.UpsertRule)
	grp.Delete("/rules/:entityId", handlers.RemoveRule)
}
