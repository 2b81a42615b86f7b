package permission

// ============================================================================
// ROLE TEMPLATES - capability trees new roles are cloned from
// ============================================================================

// Template names
const (
	TemplateAdmin       = "admin"
	TemplateRecruiter   = "recruiter"
	TemplateCoordinator = "coordinator"
	TemplateViewer      = "viewer"
)

// Templates returns the built-in role templates. Every call builds fresh
// trees; callers still Clone() before handing a tree to a role so template
// edits in one place can never leak into another.
func Templates() map[string]*Node {
	return map[string]*Node{
		TemplateAdmin:       adminTemplate(),
		TemplateRecruiter:   recruiterTemplate(),
		TemplateCoordinator: coordinatorTemplate(),
		TemplateViewer:      viewerTemplate(),
	}
}

func adminTemplate() *Node {
	return NewCategory().
		Child("campaigns", NewCategory().
			Child("create", NewLeaf(true)).
			Child("edit", NewLeaf(true)).
			Child("delete", NewLeaf(true)).
			Child("share", NewLeaf(true))).
		Child("profiles", NewCategory().
			Child("search", NewLeaf(true)).
			Child("export", NewLeaf(true)).
			Child("bulk", NewCategory().
				Child("import", NewLeaf(true)).
				Child("delete", NewLeaf(true)))).
		Child("administration", NewCategory().
			Child("users", NewCategory().
				Child("invite", NewLeaf(true)).
				Child("suspend", NewLeaf(true)).
				Child("assign_role", NewLeaf(true))).
			Child("roles", NewCategory().
				Child("create", NewLeaf(true)).
				Child("edit", NewLeaf(true))).
			Child("clients", NewCategory().
				Child("create", NewLeaf(true)).
				Child("edit", NewLeaf(true))))
}

func recruiterTemplate() *Node {
	tree := adminTemplate()
	admin := tree.Children["administration"]
	admin.Enabled = false
	admin.Visible = false
	tree.Children["profiles"].Children["bulk"].Children["delete"] = NewLeaf(false)
	tree.Children["campaigns"].Children["delete"] = NewLeaf(false)
	return tree
}

func coordinatorTemplate() *Node {
	tree := recruiterTemplate()
	tree.Children["campaigns"].Children["create"] = NewLeaf(false)
	tree.Children["campaigns"].Children["share"] = NewLeaf(false)
	tree.Children["profiles"].Children["bulk"].Enabled = false
	return tree
}

func viewerTemplate() *Node {
	return NewCategory().
		Child("campaigns", NewCategory().
			Child("create", NewLeaf(false)).
			Child("edit", NewLeaf(false)).
			Child("delete", NewLeaf(false)).
			Child("share", NewLeaf(false))).
		Child("profiles", NewCategory().
			Child("search", NewLeaf(true)).
			Child("export", NewLeaf(false)).
			Child("bulk", NewCategory().
				Child("import", NewLeaf(false)).
				Child("delete", NewLeaf(false)))).
		Child("administration", NewCategory().
			Child("users", NewCategory().
				Child("invite", NewLeaf(false)).
				Child("suspend", NewLeaf(false)).
				Child("assign_role", NewLeaf(false))).
			Child("roles", NewCategory().
				Child("create", NewLeaf(false)).
				Child("edit", NewLeaf(false))).
			Child("clients", NewCategory().
				Child("create", NewLeaf(false)).
				Child("edit", NewLeaf(false))))
}
