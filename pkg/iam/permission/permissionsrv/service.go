package permissionsrv

import (
	"context"

	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/permission"
	"github.com/maprecruit/platform/pkg/kernel"
)

// PermissionService owns role capability trees: instantiation from templates,
// effective-value checks, and point mutations through the role editor.
type PermissionService struct {
	repo      permission.Repository
	templates map[string]*permission.Node
}

// NewPermissionService creates a new instance of the permission service
func NewPermissionService(repo permission.Repository) *PermissionService {
	return &PermissionService{
		repo:      repo,
		templates: permission.Templates(),
	}
}

// CreateRoleFromTemplate clones the named template into a fresh tree owned by
// the role. The clone is deep: later edits to this role can never alias the
// template or any other role's tree.
func (s *PermissionService) CreateRoleFromTemplate(ctx context.Context, roleID kernel.RoleID, templateName string) (*permission.Node, error) {
	template, ok := s.templates[templateName]
	if !ok {
		return nil, permission.ErrTemplateNotFound().WithDetail("template", templateName)
	}

	exists, err := s.repo.Exists(ctx, roleID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check role tree existence", errx.TypeInternal)
	}
	if exists {
		return nil, permission.ErrRoleExists().WithDetail("role_id", roleID.String())
	}

	tree := template.Clone()
	if err := s.repo.Save(ctx, roleID, tree); err != nil {
		return nil, errx.Wrap(err, "failed to save role tree", errx.TypeInternal)
	}

	return tree, nil
}

// GetTree retrieves the full tree owned by a role
func (s *PermissionService) GetTree(ctx context.Context, roleID kernel.RoleID) (*permission.Node, error) {
	tree, err := s.repo.GetByRole(ctx, roleID)
	if err != nil {
		return nil, permission.ErrRoleNotFound().WithDetail("role_id", roleID.String())
	}
	return tree, nil
}

// Check resolves the effective capability value at path for a role,
// honoring disabled ancestor categories.
func (s *PermissionService) Check(ctx context.Context, roleID kernel.RoleID, path []string) (bool, error) {
	tree, err := s.GetTree(ctx, roleID)
	if err != nil {
		return false, err
	}
	return tree.Get(path...)
}

// SetPermission updates a single leaf of a role's tree and persists the
// result. Concurrent edits to the same role are last-write-wins at the
// granularity of the whole document.
func (s *PermissionService) SetPermission(ctx context.Context, roleID kernel.RoleID, path []string, value bool) (*permission.Node, error) {
	tree, err := s.GetTree(ctx, roleID)
	if err != nil {
		return nil, err
	}

	updated, err := tree.Set(path, value)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, roleID, updated); err != nil {
		return nil, errx.Wrap(err, "failed to save role tree", errx.TypeInternal)
	}

	return updated, nil
}

// SetCategoryMeta toggles a category's enabled/visible gates and persists
// the result. Disabling a category turns off every descendant capability.
func (s *PermissionService) SetCategoryMeta(ctx context.Context, roleID kernel.RoleID, path []string, enabled, visible bool) (*permission.Node, error) {
	tree, err := s.GetTree(ctx, roleID)
	if err != nil {
		return nil, err
	}

	updated, err := tree.SetMeta(path, enabled, visible)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, roleID, updated); err != nil {
		return nil, errx.Wrap(err, "failed to save role tree", errx.TypeInternal)
	}

	return updated, nil
}

// DeleteRoleTree removes the tree owned by a role
func (s *PermissionService) DeleteRoleTree(ctx context.Context, roleID kernel.RoleID) error {
	if err := s.repo.Delete(ctx, roleID); err != nil {
		return errx.Wrap(err, "failed to delete role tree", errx.TypeInternal)
	}
	return nil
}

// TemplateNames lists the available role templates
func (s *PermissionService) TemplateNames() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	return names
}
