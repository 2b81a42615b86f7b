package permission_test

import (
	"testing"

	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/permission"
	"github.com/stretchr/testify/require"
)

func sampleTree() *permission.Node {
	return permission.NewCategory().
		Child("campaigns", permission.NewCategory().
			Child("create", permission.NewLeaf(true)).
			Child("delete", permission.NewLeaf(false))).
		Child("reports", permission.NewCategory().
			Child("export", permission.NewLeaf(true)))
}

func TestNode_Get(t *testing.T) {
	tree := sampleTree()

	v, err := tree.Get("campaigns", "create")
	require.NoError(t, err)
	require.True(t, v)

	v, err = tree.Get("campaigns", "delete")
	require.NoError(t, err)
	require.False(t, v)
}

func TestNode_Get_UnknownPath(t *testing.T) {
	tree := sampleTree()

	_, err := tree.Get("campaigns", "archive")
	require.True(t, errx.IsType(err, errx.TypeNotFound))

	// Path descends through a leaf
	_, err = tree.Get("campaigns", "create", "deeper")
	require.True(t, errx.IsType(err, errx.TypeNotFound))

	// Path stops on a category
	_, err = tree.Get("campaigns")
	require.True(t, errx.IsType(err, errx.TypeNotFound))

	// Empty path
	_, err = tree.Get()
	require.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestNode_Get_DisabledCategoryCascades(t *testing.T) {
	tree, err := sampleTree().SetMeta([]string{"campaigns"}, false, true)
	require.NoError(t, err)

	// The stored leaf is true but the disabled ancestor wins, without error
	v, err := tree.Get("campaigns", "create")
	require.NoError(t, err)
	require.False(t, v)

	// Siblings outside the disabled subtree are unaffected
	v, err = tree.Get("reports", "export")
	require.NoError(t, err)
	require.True(t, v)
}

func TestNode_Get_DisabledRootCascades(t *testing.T) {
	tree, err := sampleTree().SetMeta(nil, false, true)
	require.NoError(t, err)

	v, err := tree.Get("reports", "export")
	require.NoError(t, err)
	require.False(t, v)
}

func TestNode_Set_CopyOnWrite(t *testing.T) {
	oldTree := sampleTree()

	newTree, err := oldTree.Set([]string{"campaigns", "delete"}, true)
	require.NoError(t, err)

	v, err := newTree.Get("campaigns", "delete")
	require.NoError(t, err)
	require.True(t, v)

	// The original tree still reads the old value
	v, err = oldTree.Get("campaigns", "delete")
	require.NoError(t, err)
	require.False(t, v)

	// Untouched subtrees are shared, not copied
	require.Same(t, oldTree.Children["reports"], newTree.Children["reports"])
}

func TestNode_Set_UnknownPath(t *testing.T) {
	tree := sampleTree()

	_, err := tree.Set([]string{"campaigns", "archive"}, true)
	require.True(t, errx.IsType(err, errx.TypeNotFound))

	_, err = tree.Set([]string{"campaigns"}, true)
	require.True(t, errx.IsType(err, errx.TypeNotFound))

	_, err = tree.Set(nil, true)
	require.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestNode_SetMeta_CopyOnWrite(t *testing.T) {
	oldTree := sampleTree()

	newTree, err := oldTree.SetMeta([]string{"campaigns"}, false, false)
	require.NoError(t, err)

	require.False(t, newTree.Children["campaigns"].Enabled)
	require.False(t, newTree.Children["campaigns"].Visible)
	require.True(t, oldTree.Children["campaigns"].Enabled)
}

func TestNode_Clone_IsIndependent(t *testing.T) {
	original := sampleTree()
	clone := original.Clone()

	mutated, err := clone.Set([]string{"campaigns", "create"}, false)
	require.NoError(t, err)

	v, err := original.Get("campaigns", "create")
	require.NoError(t, err)
	require.True(t, v)

	v, err = mutated.Get("campaigns", "create")
	require.NoError(t, err)
	require.False(t, v)

	// Deep copy: no shared child nodes anywhere
	require.NotSame(t, original.Children["campaigns"], clone.Children["campaigns"])
	require.NotSame(t, original.Children["campaigns"].Children["create"], clone.Children["campaigns"].Children["create"])
}

func TestNode_Paths(t *testing.T) {
	paths := sampleTree().Paths()

	require.Len(t, paths, 3)
	require.ElementsMatch(t, [][]string{
		{"campaigns", "create"},
		{"campaigns", "delete"},
		{"reports", "export"},
	}, paths)
}
