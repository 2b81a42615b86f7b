package permission

import (
	"encoding/json"

	"github.com/maprecruit/platform/pkg/errx"
)

// Reserved meta keys inside a category document. A feature flag may not use
// these names; they always address the category itself.
const (
	metaKeyEnabled = "enabled"
	metaKeyVisible = "visible"
)

// Marshal renders the tree as a nested JSON document: leaves become booleans,
// categories become objects. Meta flags are written only when they deviate
// from the default (true), matching the documents the role editor produces.
func Marshal(n *Node) ([]byte, error) {
	doc := toDocument(n)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errx.Wrap(err, "failed to marshal permission tree", errx.TypeInternal)
	}
	return data, nil
}

func toDocument(n *Node) any {
	if n.IsLeaf() {
		return n.Value
	}
	obj := make(map[string]any, len(n.Children)+2)
	for name, child := range n.Children {
		obj[name] = toDocument(child)
	}
	if !n.Enabled {
		obj[metaKeyEnabled] = false
	}
	if !n.Visible {
		obj[metaKeyVisible] = false
	}
	return obj
}

// Unmarshal parses a nested key-value document into a tree. Any boolean value
// is a leaf, any object is a category; the reserved keys enabled/visible set
// the category's meta flags. Values of any other JSON type are rejected.
// Key order in the document is irrelevant.
func Unmarshal(data []byte) (*Node, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrInvalidDocument().WithDetail("parse_error", err.Error())
	}
	return fromDocument(raw)
}

func fromDocument(raw map[string]json.RawMessage) (*Node, error) {
	node := NewCategory()

	for key, value := range raw {
		var b bool
		if err := json.Unmarshal(value, &b); err == nil {
			switch key {
			case metaKeyEnabled:
				node.Enabled = b
			case metaKeyVisible:
				node.Visible = b
			default:
				node.Children[key] = NewLeaf(b)
			}
			continue
		}

		var nested map[string]json.RawMessage
		if err := json.Unmarshal(value, &nested); err == nil {
			child, err := fromDocument(nested)
			if err != nil {
				return nil, err
			}
			node.Children[key] = child
			continue
		}

		return nil, ErrInvalidDocument().WithDetail("key", key)
	}

	return node, nil
}
