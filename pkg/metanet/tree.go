package metanet

import (
	"github.com/pmlandwehr/dynetml2other/pkg/errors"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

// NodeRecord is one node: its literal XML attributes and its declared
// properties, both coerced to typed values. On a name collision between an
// attribute and a declared property, the property wins.
type NodeRecord struct {
	Attributes map[string]property.Value
	Properties map[string]property.Value
}

func newNodeRecord() *NodeRecord {
	return &NodeRecord{
		Attributes: make(map[string]property.Value),
		Properties: make(map[string]property.Value),
	}
}

// NodeSet groups nodes with the property identities they may carry.
// Node ids are unique within a nodeset.
type NodeSet struct {
	Identities map[string]property.Identity
	Nodes      map[string]*NodeRecord
}

func newNodeSet() *NodeSet {
	return &NodeSet{
		Identities: make(map[string]property.Identity),
		Nodes:      make(map[string]*NodeRecord),
	}
}

// NodeClass maps nodeset names to nodesets.
type NodeClass map[string]*NodeSet

// NodeTree is the three-level typed node catalogue of a meta-network:
// nodeclass name → nodeset name → node id. Every level of a key must exist
// before the levels below it can be accessed; each absent level is reported
// as its own NOT_FOUND error.
type NodeTree struct {
	classes map[string]NodeClass
}

// NewNodeTree returns an empty node tree.
func NewNodeTree() *NodeTree {
	return &NodeTree{classes: make(map[string]NodeClass)}
}

// GetNodeClass returns the named nodeclass.
func (t *NodeTree) GetNodeClass(class string) (NodeClass, error) {
	nc, ok := t.classes[class]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "nodeclass %q not in node tree", class)
	}
	return nc, nil
}

// GetNodeSet returns the named nodeset, validating the nodeclass first.
func (t *NodeTree) GetNodeSet(class, set string) (*NodeSet, error) {
	nc, err := t.GetNodeClass(class)
	if err != nil {
		return nil, err
	}
	ns, ok := nc[set]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "nodeset %q not in nodeclass %q", set, class)
	}
	return ns, nil
}

// GetNode returns the named node, validating the full key prefix.
func (t *NodeTree) GetNode(class, set, id string) (*NodeRecord, error) {
	ns, err := t.GetNodeSet(class, set)
	if err != nil {
		return nil, err
	}
	n, ok := ns.Nodes[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "node %q not in nodeset %q/%q", id, class, set)
	}
	return n, nil
}

// CreateNodeset adds an empty nodeset, creating the nodeclass level if it
// does not exist yet. Fails with CONFLICT if the nodeset already exists.
func (t *NodeTree) CreateNodeset(class, set string) error {
	nc, ok := t.classes[class]
	if !ok {
		nc = make(NodeClass)
		t.classes[class] = nc
	}
	if _, exists := nc[set]; exists {
		return errors.New(errors.ErrCodeConflict, "nodeset %q already exists in nodeclass %q", set, class)
	}
	nc[set] = newNodeSet()
	return nil
}

// CreateNodesetProperty declares a new property identity on a nodeset.
// The type name must be one of the five declarable types; "bool" and unknown
// names fail with INVALID_VALUE, an already-declared name with CONFLICT.
func (t *NodeTree) CreateNodesetProperty(class, set, name, typeName string, singleValued bool) error {
	ns, err := t.GetNodeSet(class, set)
	if err != nil {
		return err
	}
	if _, exists := ns.Identities[name]; exists {
		return errors.New(errors.ErrCodeConflict, "property %q already exists for nodeset %q", name, set)
	}
	typ, err := property.ParseDeclaredType(typeName)
	if err != nil {
		return err
	}
	ns.Identities[name] = property.Identity{Type: typ, SingleValued: singleValued}
	return nil
}

// SetNodeProperty coerces a raw value through the declared identity and
// stores it on the node. The property name must already be declared on the
// nodeset.
func (t *NodeTree) SetNodeProperty(class, set, id, name, raw string) error {
	node, err := t.GetNode(class, set, id)
	if err != nil {
		return err
	}
	ns := t.classes[class][set]
	ident, ok := ns.Identities[name]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "property %q not declared on nodeset %q", name, set)
	}
	v, err := property.Format(raw, ident.Type)
	if err != nil {
		return err
	}
	node.Properties[name] = v
	return nil
}

// CreateNode adds a node with the given raw properties, all of which must
// reference declared identities. Validation happens before anything is
// stored, so a failed create leaves the tree unchanged. The node's id is
// stamped as its "id" attribute.
func (t *NodeTree) CreateNode(class, set, id string, rawProps map[string]string) error {
	ns, err := t.GetNodeSet(class, set)
	if err != nil {
		return err
	}
	if _, exists := ns.Nodes[id]; exists {
		return errors.New(errors.ErrCodeConflict, "node %q already exists in nodeset %q", id, set)
	}

	node := newNodeRecord()
	node.Attributes["id"] = property.TextValue(id)
	for name, raw := range rawProps {
		ident, ok := ns.Identities[name]
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "property %q not declared on nodeset %q", name, set)
		}
		v, err := property.Format(raw, ident.Type)
		if err != nil {
			return err
		}
		node.Properties[name] = v
	}

	ns.Nodes[id] = node
	return nil
}

// RenameNode moves a node to a new id within its nodeset and re-stamps its
// "id" attribute. Fails with CONFLICT if the new id is taken. Networks are
// not touched here; MetaNetwork.RenameNode cascades the rename into them.
func (t *NodeTree) RenameNode(class, set, oldID, newID string) error {
	node, err := t.GetNode(class, set, oldID)
	if err != nil {
		return err
	}
	ns := t.classes[class][set]
	if _, exists := ns.Nodes[newID]; exists {
		return errors.New(errors.ErrCodeConflict, "node %q already exists in nodeset %q", newID, set)
	}

	delete(ns.Nodes, oldID)
	node.Attributes["id"] = property.TextValue(newID)
	ns.Nodes[newID] = node
	return nil
}

// UnionNodesets merges two or more nodesets of one nodeclass into a new
// nodeset. The final name in names is the destination; it must not exist yet.
// Merging proceeds right to left, so entries from earlier-listed nodesets
// take precedence on node-id or identity collisions. Source nodesets are
// left untouched; the destination holds fresh copies.
func (t *NodeTree) UnionNodesets(class string, names ...string) error {
	if len(names) < 3 {
		return errors.New(errors.ErrCodeInvalidValue,
			"need at least 2 source nodesets and a destination name; got %d arguments", len(names))
	}
	sources, dest := names[:len(names)-1], names[len(names)-1]

	for _, name := range sources {
		if _, err := t.GetNodeSet(class, name); err != nil {
			return err
		}
	}
	nc := t.classes[class]
	if _, exists := nc[dest]; exists {
		return errors.New(errors.ErrCodeConflict, "nodeset %q already exists in nodeclass %q", dest, class)
	}

	merged := newNodeSet()
	for i := len(sources) - 1; i >= 0; i-- {
		src := nc[sources[i]]
		for name, ident := range src.Identities {
			merged.Identities[name] = ident
		}
		for id, node := range src.Nodes {
			merged.Nodes[id] = copyNodeRecord(node)
		}
	}

	nc[dest] = merged
	return nil
}

// ClassNames returns the nodeclass names in sorted order.
func (t *NodeTree) ClassNames() []string {
	return sortedKeys(t.classes)
}

// Len returns the number of nodeclasses.
func (t *NodeTree) Len() int { return len(t.classes) }

func copyNodeRecord(n *NodeRecord) *NodeRecord {
	out := newNodeRecord()
	for k, v := range n.Attributes {
		out.Attributes[k] = v
	}
	for k, v := range n.Properties {
		out.Properties[k] = v
	}
	return out
}
