package permission_test

import (
	"encoding/json"
	"testing"

	"github.com/maprecruit/platform/pkg/errx"
	"github.com/maprecruit/platform/pkg/iam/permission"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_NestedDocument(t *testing.T) {
	doc := []byte(`{
		"campaigns": {"create": true, "delete": false},
		"reports": {"export": true, "enabled": false, "visible": false}
	}`)

	tree, err := permission.Unmarshal(doc)
	require.NoError(t, err)

	v, err := tree.Get("campaigns", "create")
	require.NoError(t, err)
	require.True(t, v)

	// The reserved keys set the category's meta, they are not leaves
	reports := tree.Children["reports"]
	require.False(t, reports.Enabled)
	require.False(t, reports.Visible)
	_, err = tree.Get("reports", "enabled")
	require.True(t, errx.IsType(err, errx.TypeNotFound))

	// And the disabled category gates its leaf
	v, err = tree.Get("reports", "export")
	require.NoError(t, err)
	require.False(t, v)
}

func TestUnmarshal_RejectsNonBooleanValues(t *testing.T) {
	for name, doc := range map[string]string{
		"string value":  `{"campaigns": {"create": "yes"}}`,
		"number value":  `{"campaigns": 1}`,
		"array value":   `{"campaigns": [true]}`,
		"not an object": `true`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := permission.Unmarshal([]byte(doc))
			require.True(t, errx.IsType(err, errx.TypeValidation))
		})
	}
}

func TestMarshal_MetaKeysOnlyWhenFalse(t *testing.T) {
	tree := permission.NewCategory().
		Child("open", permission.NewCategory().
			Child("flag", permission.NewLeaf(true))).
		Child("closed", permission.NewCategory().
			Child("flag", permission.NewLeaf(false)))
	tree.Children["closed"].Enabled = false

	data, err := permission.Marshal(tree)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	// Default-true meta is omitted; deviating meta is written
	require.NotContains(t, doc["open"], "enabled")
	require.NotContains(t, doc["open"], "visible")
	require.Equal(t, false, doc["closed"]["enabled"])
	require.NotContains(t, doc["closed"], "visible")
}

func TestCodec_RoundTripPreservesDecisions(t *testing.T) {
	original := permission.NewCategory().
		Child("campaigns", permission.NewCategory().
			Child("create", permission.NewLeaf(true)).
			Child("delete", permission.NewLeaf(false))).
		Child("admin", permission.NewCategory().
			Child("billing", permission.NewLeaf(true)))
	withMeta, err := original.SetMeta([]string{"admin"}, false, false)
	require.NoError(t, err)

	data, err := permission.Marshal(withMeta)
	require.NoError(t, err)

	decoded, err := permission.Unmarshal(data)
	require.NoError(t, err)

	for _, path := range withMeta.Paths() {
		want, err := withMeta.Get(path...)
		require.NoError(t, err)
		got, err := decoded.Get(path...)
		require.NoError(t, err)
		require.Equal(t, want, got, "path %v", path)
	}
}
