package permissionapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maprecruit/platform/pkg/iam/auth"
	"github.com/maprecruit/platform/pkg/iam/permission"
	"github.com/maprecruit/platform/pkg/iam/permission/permissionsrv"
	"github.com/maprecruit/platform/pkg/kernel"
)

// Handlers provides HTTP handlers for the role editor
type Handlers struct {
	service *permissionsrv.PermissionService
}

// NewHandlers creates a new permission handlers instance
func NewHandlers(service *permissionsrv.PermissionService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateRoleTree instantiates a role's tree from a template
// POST /api/roles/permissions
func (h *Handlers) CreateRoleTree(c *fiber.Ctx) error {
	var req permission.CreateRoleTreeRequest
	if err := c.BodyParser(&req); err != nil {
		return permission.ErrInvalidDocument().WithDetail("parse_error", err.Error())
	}

	tree, err := h.service.CreateRoleFromTemplate(c.Context(), req.RoleID, req.Template)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(treeResponse(req.RoleID, tree))
}

// GetRoleTree returns a role's full tree document
// GET /api/roles/:roleId/permissions
func (h *Handlers) GetRoleTree(c *fiber.Ctx) error {
	roleID := kernel.RoleID(c.Params("roleId"))
	if roleID.IsEmpty() {
		return permission.ErrRoleNotFound().WithDetail("role_id", "missing or empty")
	}

	tree, err := h.service.GetTree(c.Context(), roleID)
	if err != nil {
		return err
	}

	return c.JSON(treeResponse(roleID, tree))
}

// CheckPermission resolves an effective capability value
// POST /api/roles/:roleId/permissions/check
func (h *Handlers) CheckPermission(c *fiber.Ctx) error {
	roleID := kernel.RoleID(c.Params("roleId"))
	var req permission.CheckPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return permission.ErrInvalidDocument().WithDetail("parse_error", err.Error())
	}

	allowed, err := h.service.Check(c.Context(), roleID, req.Path)
	if err != nil {
		return err
	}

	return c.JSON(permission.CheckPermissionResponse{
		RoleID:  roleID,
		Path:    req.Path,
		Allowed: allowed,
	})
}

// SetPermission updates one leaf of a role's tree
// PUT /api/roles/:roleId/permissions
func (h *Handlers) SetPermission(c *fiber.Ctx) error {
	roleID := kernel.RoleID(c.Params("roleId"))
	var req permission.SetPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return permission.ErrInvalidDocument().WithDetail("parse_error", err.Error())
	}

	tree, err := h.service.SetPermission(c.Context(), roleID, req.Path, req.Value)
	if err != nil {
		return err
	}

	return c.JSON(treeResponse(roleID, tree))
}

// SetCategoryMeta toggles a category's enabled/visible gates
// PUT /api/roles/:roleId/permissions/meta
func (h *Handlers) SetCategoryMeta(c *fiber.Ctx) error {
	roleID := kernel.RoleID(c.Params("roleId"))
	var req permission.SetCategoryMetaRequest
	if err := c.BodyParser(&req); err != nil {
		return permission.ErrInvalidDocument().WithDetail("parse_error", err.Error())
	}

	tree, err := h.service.SetCategoryMeta(c.Context(), roleID, req.Path, req.Enabled, req.Visible)
	if err != nil {
		return err
	}

	return c.JSON(treeResponse(roleID, tree))
}

// ListTemplates lists the available role templates
// GET /api/roles/templates
func (h *Handlers) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.service.TemplateNames()})
}

func treeResponse(roleID kernel.RoleID, tree *permission.Node) permission.RoleTreeResponse {
	doc, err := permission.Marshal(tree)
	if err != nil {
		doc = []byte("{}")
	}
	return permission.RoleTreeResponse{
		RoleID:   roleID,
		Document: doc,
	}
}

// RegisterRoutes mounts the role-editor endpoints behind auth middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, middleware *auth.TokenMiddleware) {
	app.Get("/api/roles/templates", middleware.Handle(), handlers.ListTemplates)
	app.Post("/api/roles/permissions", middleware.Handle(), handlers.CreateRoleTree)

	grp := app.Group("/api/roles/:roleId/permissions", middleware.Handle())
	grp.Get("/", handlers.GetRoleTree)
	grp.Post("/check", handlers.CheckPermission)
	grp.Put("/", handlers.SetPermission)
	grp.Put("/meta", handlers.SetCategoryMeta)
}
