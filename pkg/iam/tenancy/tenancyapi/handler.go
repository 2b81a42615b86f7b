package tenancyapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maprecruit/platform/pkg/iam/auth"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/iam/tenancy/tenancysrv"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/kernel"
)

// Handlers provides HTTP handlers for scope listing and context switching
type Handlers struct {
	service  *tenancysrv.TenancyService
	userRepo user.UserRepository
}

// NewHandlers creates a new tenancy handlers instance
func NewHandlers(service *tenancysrv.TenancyService, userRepo user.UserRepository) *Handlers {
	return &Handlers{
		service:  service,
		userRepo: userRepo,
	}
}

// GetScope lists the clients available under a company
// GET /api/scope/:companyId
func (h *Handlers) GetScope(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	companyID := kernel.CompanyID(c.Params("companyId"))
	if companyID.IsEmpty() {
		return tenancy.ErrCompanyNotFound().WithDetail("company_id", "missing or empty")
	}

	scope, err := h.service.ResolveScope(c.Context(), actor, companyID)
	if err != nil {
		return err
	}

	return c.JSON(scope)
}

// RequestSwitch validates a context-switch request without committing it
// POST /api/scope/switch
func (h *Handlers) RequestSwitch(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var req tenancy.SwitchRequest
	if err := c.BodyParser(&req); err != nil {
		return tenancy.ErrPermissionDenied().WithDetail("parse_error", err.Error())
	}

	decision, err := h.service.RequestSwitch(c.Context(), actor, req)
	if err != nil {
		return err
	}

	return c.JSON(decision)
}

// CommitSwitch performs a confirmed context switch
// POST /api/scope/switch/commit
func (h *Handlers) CommitSwitch(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return tenancy.ErrPermissionDenied()
	}

	actor, err := h.userRepo.FindByID(c.Context(), authContext.UserID)
	if err != nil {
		return user.ErrUserNotFound().WithDetail("user_id", authContext.UserID.String())
	}

	var req tenancy.SwitchRequest
	if err := c.BodyParser(&req); err != nil {
		return tenancy.ErrPermissionDenied().WithDetail("parse_error", err.Error())
	}

	if err := h.service.CommitSwitch(c.Context(), actor, authContext.SessionID, req); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"active_company_id": actor.ActiveCompanyID,
		"active_client_id":  actor.ActiveClientID,
	})
}

// AuthorizeRoleAssignment checks administrative elevation for a role change
// POST /api/scope/assign-role/authorize
func (h *Handlers) AuthorizeRoleAssignment(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var req tenancy.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return tenancy.ErrPermissionDenied().WithDetail("parse_error", err.Error())
	}

	if err := h.service.AuthorizeRoleAssignment(c.Context(), actor, req); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"authorized": true})
}

func (h *Handlers) actor(c *fiber.Ctx) (*user.User, error) {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return nil, tenancy.ErrPermissionDenied()
	}

	actor, err := h.userRepo.FindByID(c.Context(), authContext.UserID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", authContext.UserID.String())
	}
	if !actor.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", actor.ID.String())
	}
	return actor, nil
}

// RegisterRoutes mounts the tenancy endpoints behind auth middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, middleware *auth.TokenMiddleware) {
	grp := app.Group("/api/scope", middleware.Handle())
	grp.Get("/:companyId", handlers.GetScope)
	grp.Post("/switch", handlers.RequestSwitch)
	grp.Post("/switch/commit", handlers.CommitSwitch)
	grp.Post("/assign-role/authorize", handlers.AuthorizeRoleAssignment)
}
