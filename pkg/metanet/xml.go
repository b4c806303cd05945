package metanet

import (
	"encoding/xml"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

// Root element names. DynamicNetwork is a synonym some producers emit for
// DynamicMetaNetwork and is treated as equivalent on load.
const (
	rootDynamic        = "DynamicMetaNetwork"
	rootDynamicSynonym = "DynamicNetwork"
	rootMeta           = "MetaNetwork"
)

// Wire-format structs. Element and attribute names must match the DyNetML
// schema exactly; field order drives child element order on write
// (attributes, propertyIdentities, properties, nodes, networks).

type xmlProperty struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type xmlPropertyIdentity struct {
	ID           string `xml:"id,attr"`
	Type         string `xml:"type,attr"`
	SingleValued string `xml:"singleValued,attr"`
}

type xmlNode struct {
	ID         string        `xml:"id,attr"`
	Attrs      []xml.Attr    `xml:",any,attr"`
	Properties []xmlProperty `xml:"properties>property"`
}

type xmlNodeclass struct {
	Type       string                `xml:"type,attr"`
	ID         string                `xml:"id,attr"`
	Identities []xmlPropertyIdentity `xml:"propertyIdentities>propertyIdentity"`
	Nodes      []xmlNode             `xml:"node"`
}

type xmlLink struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Value  string `xml:"value,attr,omitempty"`
	// Some producers emit the weight under "weight"; accepted on read only.
	Weight string `xml:"weight,attr,omitempty"`
}

type xmlNetwork struct {
	ID             string    `xml:"id,attr"`
	SourceType     string    `xml:"sourceType,attr"`
	Source         string    `xml:"source,attr"`
	TargetType     string    `xml:"targetType,attr"`
	Target         string    `xml:"target,attr"`
	IsDirected     string    `xml:"isDirected,attr"`
	AllowSelfLoops string    `xml:"allowSelfLoops,attr"`
	IsBinary       string    `xml:"isBinary,attr"`
	Links          []xmlLink `xml:"link"`
}

type xmlMetaNetwork struct {
	XMLName     xml.Name              `xml:"MetaNetwork"`
	Attrs       []xml.Attr            `xml:",any,attr"`
	Identities  []xmlPropertyIdentity `xml:"propertyIdentities>propertyIdentity"`
	Properties  []xmlProperty         `xml:"properties>property"`
	Nodeclasses []xmlNodeclass        `xml:"nodes>nodeclass"`
	Networks    []xmlNetwork          `xml:"networks>network"`
}

type xmlDynamicMetaNetwork struct {
	XMLName      xml.Name
	Attrs        []xml.Attr       `xml:",any,attr"`
	MetaNetworks []xmlMetaNetwork `xml:"MetaNetwork"`
}

// =============================================================================
// Wire → Model
// =============================================================================

func (m *MetaNetwork) loadWire(w *xmlMetaNetwork, f filters) error {
	for _, a := range w.Attrs {
		m.Attributes[a.Name.Local] = property.TextValue(a.Value)
	}
	for _, p := range w.Properties {
		m.Properties[p.ID] = property.TextValue(p.Value)
	}

	for _, pi := range w.Identities {
		if !f.property(pi.ID) {
			continue
		}
		ident, err := parseIdentity(pi)
		if err != nil {
			return err
		}
		m.PropertyIdentities[pi.ID] = ident
	}

	for i := range w.Nodeclasses {
		if err := m.tree.loadWireClass(&w.Nodeclasses[i], f); err != nil {
			return err
		}
	}

	for i := range w.Networks {
		if !f.network(w.Networks[i].ID) {
			continue
		}
		if err := m.loadWireNetwork(&w.Networks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *NodeTree) loadWireClass(w *xmlNodeclass, f filters) error {
	if !f.nodeclass(w.ID) {
		return nil
	}
	if err := t.CreateNodeset(w.Type, w.ID); err != nil {
		return err
	}
	ns := t.classes[w.Type][w.ID]

	for _, pi := range w.Identities {
		if !f.property(pi.ID) {
			continue
		}
		ident, err := parseIdentity(pi)
		if err != nil {
			return err
		}
		ns.Identities[pi.ID] = ident
	}

	for _, n := range w.Nodes {
		if _, exists := ns.Nodes[n.ID]; exists {
			return errors.New(errors.ErrCodeConflict, "node %q already exists in nodeset %q", n.ID, w.ID)
		}
		rec := newNodeRecord()
		rec.Attributes["id"] = property.TextValue(n.ID)
		for _, a := range n.Attrs {
			rec.Attributes[a.Name.Local] = property.TextValue(a.Value)
		}
		for _, p := range n.Properties {
			if !f.property(p.ID) {
				continue
			}
			ident, ok := ns.Identities[p.ID]
			if !ok {
				return errors.New(errors.ErrCodeNotFound,
					"property %q of node %q not declared on nodeset %q", p.ID, n.ID, w.ID)
			}
			v, err := property.Format(p.Value, ident.Type)
			if err != nil {
				return err
			}
			rec.Properties[p.ID] = v
		}
		ns.Nodes[n.ID] = rec
	}
	return nil
}

func (m *MetaNetwork) loadWireNetwork(w *xmlNetwork) error {
	meta := network.Metadata{
		ID:         w.ID,
		SourceType: w.SourceType,
		Source:     w.Source,
		TargetType: w.TargetType,
		Target:     w.Target,
	}
	var err error
	if meta.Directed, err = parseFlag("isDirected", w.IsDirected); err != nil {
		return err
	}
	if meta.AllowSelfLoops, err = parseFlag("allowSelfLoops", w.AllowSelfLoops); err != nil {
		return err
	}
	if meta.Binary, err = parseFlag("isBinary", w.IsBinary); err != nil {
		return err
	}

	edges := make([]network.Edge, 0, len(w.Links))
	for _, l := range w.Links {
		e := network.Edge{Source: l.Source, Target: l.Target, Weight: 1.0}
		raw := l.Value
		if raw == "" {
			raw = l.Weight
		}
		if raw != "" {
			v, err := property.Format(raw, property.Number)
			if err != nil {
				return err
			}
			e.Weight = v.Number()
		}
		edges = append(edges, e)
	}
	return m.AddNetwork(meta, edges)
}

func parseIdentity(w xmlPropertyIdentity) (property.Identity, error) {
	typ, err := property.ParseType(w.Type)
	if err != nil {
		return property.Identity{}, err
	}
	return property.Identity{Type: typ, SingleValued: w.SingleValued == "true"}, nil
}

func parseFlag(name, raw string) (bool, error) {
	v, err := property.Format(raw, property.Bool)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidValue, err, "bad %s attribute", name)
	}
	return v.Bool(), nil
}

// =============================================================================
// Model → Wire
// =============================================================================

func (m *MetaNetwork) wire() *xmlMetaNetwork {
	w := &xmlMetaNetwork{
		Attrs:      attrsToWire(m.Attributes, nil),
		Identities: identitiesToWire(m.PropertyIdentities),
	}
	for _, id := range sortedKeys(m.Properties) {
		w.Properties = append(w.Properties, xmlProperty{ID: id, Value: m.Properties[id].String()})
	}

	for _, class := range m.tree.ClassNames() {
		nc := m.tree.classes[class]
		for _, set := range sortedKeys(nc) {
			w.Nodeclasses = append(w.Nodeclasses, nodesetToWire(class, set, nc[set]))
		}
	}

	for _, id := range m.networkOrder {
		w.Networks = append(w.Networks, networkToWire(m.networks[id]))
	}
	return w
}

func nodesetToWire(class, set string, ns *NodeSet) xmlNodeclass {
	w := xmlNodeclass{
		Type:       class,
		ID:         set,
		Identities: identitiesToWire(ns.Identities),
	}
	for _, id := range sortedKeys(ns.Nodes) {
		node := ns.Nodes[id]
		wn := xmlNode{
			ID:    id,
			Attrs: attrsToWire(node.Attributes, map[string]bool{"id": true}),
		}
		for _, name := range sortedKeys(node.Properties) {
			wn.Properties = append(wn.Properties, xmlProperty{ID: name, Value: node.Properties[name].String()})
		}
		w.Nodes = append(w.Nodes, wn)
	}
	return w
}

func networkToWire(g network.Graph) xmlNetwork {
	meta := g.Metadata()
	w := xmlNetwork{
		ID:             meta.ID,
		SourceType:     meta.SourceType,
		Source:         meta.Source,
		TargetType:     meta.TargetType,
		Target:         meta.Target,
		IsDirected:     property.BoolValue(meta.Directed).String(),
		AllowSelfLoops: property.BoolValue(meta.AllowSelfLoops).String(),
		IsBinary:       property.BoolValue(meta.Binary).String(),
	}
	for _, e := range g.Edges() {
		l := xmlLink{Source: e.Source, Target: e.Target}
		if !meta.Binary {
			l.Value = property.NumberValue(e.Weight).String()
		}
		w.Links = append(w.Links, l)
	}
	return w
}

func identitiesToWire(idents map[string]property.Identity) []xmlPropertyIdentity {
	var out []xmlPropertyIdentity
	for _, id := range sortedKeys(idents) {
		ident := idents[id]
		out = append(out, xmlPropertyIdentity{
			ID:           id,
			Type:         ident.Type.String(),
			SingleValued: property.BoolValue(ident.SingleValued).String(),
		})
	}
	return out
}

// attrsToWire renders an attribute map deterministically: id first when
// present, remaining names sorted. Names in skip are left out entirely.
func attrsToWire(attrs map[string]property.Value, skip map[string]bool) []xml.Attr {
	var out []xml.Attr
	if v, ok := attrs["id"]; ok && !skip["id"] {
		out = append(out, xml.Attr{Name: xml.Name{Local: "id"}, Value: v.String()})
	}
	for _, name := range sortedKeys(attrs) {
		if name == "id" || skip[name] {
			continue
		}
		out = append(out, xml.Attr{Name: xml.Name{Local: name}, Value: attrs[name].String()})
	}
	return out
}
