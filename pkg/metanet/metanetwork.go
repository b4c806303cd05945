// Package metanet implements the DyNetML meta-network model and its XML
// serialization.
//
// A [MetaNetwork] is one time-slice: document attributes, network-level
// properties and property identities, a three-level [NodeTree], and the
// networks between nodesets. A [DynamicMetaNetwork] is an ordered collection
// of time-stamped meta-networks. Both are created empty, populated by a parse
// call or by explicit mutation, and serialized back with [MetaNetwork.XML],
// [DynamicMetaNetwork.XML], or the WriteFile methods.
//
// Models are not safe for uncoordinated concurrent mutation; callers needing
// concurrent access must serialize externally.
package metanet

import (
	"slices"
	"time"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

// MetaNetwork is one time-slice of a dynamic meta-network.
//
// Attributes hold the literal XML attributes of the MetaNetwork element
// (including the timestamp-like "id"). Properties and PropertyIdentities are
// the network-level property namespace, distinct from the per-nodeset
// identities inside the node tree.
type MetaNetwork struct {
	Attributes         map[string]property.Value
	Properties         map[string]property.Value
	PropertyIdentities map[string]property.Identity

	tree         *NodeTree
	networks     map[string]network.Graph
	networkOrder []string
	builder      network.Builder
}

// NewMetaNetwork creates an empty meta-network whose networks will be stored
// with the given backend kind. The kind is fixed for the model's lifetime;
// unrecognized kinds fail with INVALID_VALUE.
func NewMetaNetwork(kind network.Kind) (*MetaNetwork, error) {
	b, err := network.NewBuilder(kind)
	if err != nil {
		return nil, err
	}
	return newMetaNetwork(b), nil
}

func newMetaNetwork(b network.Builder) *MetaNetwork {
	return &MetaNetwork{
		Attributes:         make(map[string]property.Value),
		Properties:         make(map[string]property.Value),
		PropertyIdentities: make(map[string]property.Identity),
		tree:               NewNodeTree(),
		networks:           make(map[string]network.Graph),
		builder:            b,
	}
}

// Kind returns the backend kind networks are materialized with.
func (m *MetaNetwork) Kind() network.Kind { return m.builder.Kind() }

// NodeTree returns the model's node tree.
func (m *MetaNetwork) NodeTree() *NodeTree { return m.tree }

// Timestamp parses the meta-network's "id" attribute as a timestamp.
func (m *MetaNetwork) Timestamp() (time.Time, error) {
	id, ok := m.Attributes["id"]
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeNotFound, "meta-network has no id attribute")
	}
	return property.ParseTimestamp(id.String())
}

// Networks returns the networks in document (insertion) order.
func (m *MetaNetwork) Networks() []network.Graph {
	out := make([]network.Graph, len(m.networkOrder))
	for i, id := range m.networkOrder {
		out[i] = m.networks[id]
	}
	return out
}

// Network returns the network with the given id.
func (m *MetaNetwork) Network(id string) (network.Graph, error) {
	g, ok := m.networks[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "network %q not in meta-network", id)
	}
	return g, nil
}

// AddNetwork materializes edges with the model's backend and stores the
// result. Network ids are unique within a meta-network; duplicates fail with
// CONFLICT.
func (m *MetaNetwork) AddNetwork(meta network.Metadata, edges []network.Edge) error {
	if _, exists := m.networks[meta.ID]; exists {
		return errors.New(errors.ErrCodeConflict, "network %q already exists in meta-network", meta.ID)
	}
	g, err := m.builder.Build(meta, edges)
	if err != nil {
		return err
	}
	m.networks[meta.ID] = g
	m.networkOrder = append(m.networkOrder, meta.ID)
	return nil
}

// GetNodeClass returns the named nodeclass.
func (m *MetaNetwork) GetNodeClass(class string) (NodeClass, error) {
	return m.tree.GetNodeClass(class)
}

// GetNodeSet returns the named nodeset.
func (m *MetaNetwork) GetNodeSet(class, set string) (*NodeSet, error) {
	return m.tree.GetNodeSet(class, set)
}

// GetNode returns the named node.
func (m *MetaNetwork) GetNode(class, set, id string) (*NodeRecord, error) {
	return m.tree.GetNode(class, set, id)
}

// SetNodeProperty sets a declared property on a node.
func (m *MetaNetwork) SetNodeProperty(class, set, id, name, raw string) error {
	return m.tree.SetNodeProperty(class, set, id, name, raw)
}

// CreateNodesetProperty declares a new property identity on a nodeset.
func (m *MetaNetwork) CreateNodesetProperty(class, set, name, typeName string, singleValued bool) error {
	return m.tree.CreateNodesetProperty(class, set, name, typeName, singleValued)
}

// CreateNode adds a node to a nodeset.
func (m *MetaNetwork) CreateNode(class, set, id string, rawProps map[string]string) error {
	return m.tree.CreateNode(class, set, id, rawProps)
}

// UnionNodesets merges nodesets; see NodeTree.UnionNodesets.
func (m *MetaNetwork) UnionNodesets(class string, names ...string) error {
	return m.tree.UnionNodesets(class, names...)
}

// RenameNode renames a node in the tree and cascades the rename into every
// network whose source or target endpoints are drawn from the node's
// (nodeclass, nodeset): matching endpoint ids in the edge lists are rewritten
// and the networks rebuilt, edge counts unchanged.
func (m *MetaNetwork) RenameNode(class, set, oldID, newID string) error {
	if err := m.tree.RenameNode(class, set, oldID, newID); err != nil {
		return err
	}

	for id, g := range m.networks {
		meta := g.Metadata()
		renameSource := meta.SourceType == class && meta.Source == set
		renameTarget := meta.TargetType == class && meta.Target == set
		if !renameSource && !renameTarget {
			continue
		}

		edges := slices.Clone(g.Edges())
		touched := false
		for i := range edges {
			if renameSource && edges[i].Source == oldID {
				edges[i].Source = newID
				touched = true
			}
			if renameTarget && edges[i].Target == oldID {
				edges[i].Target = newID
				touched = true
			}
		}
		if !touched {
			continue
		}
		rebuilt, err := m.builder.Build(meta, edges)
		if err != nil {
			return err
		}
		m.networks[id] = rebuilt
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
