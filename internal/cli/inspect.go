package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pmlandwehr/dynetml2other/pkg/metanet"
)

// newInspectCmd creates the inspect command, which prints a styled per-slice
// summary of a DyNetML document: properties, the node tree with declared
// property types, and network sizes.
func newInspectCmd(cfg *Config) *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a summary of every meta-network in a DyNetML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, err := loadDocument(c.Context(), cfg, &opts, args[0])
			if err != nil {
				return err
			}
			if doc == nil {
				printWarning("%s is not a DyNetML document", args[0])
				return nil
			}
			inspectDocument(doc)
			return nil
		},
	}

	opts.registerLoadFlags(cmd)
	return cmd
}

// inspectDocument prints every meta-network the document holds.
func inspectDocument(doc *metanet.Document) {
	if doc.Meta != nil {
		inspectMetaNetwork(doc.Meta)
		return
	}
	for i, mn := range doc.Dynamic.MetaNetworks {
		if i > 0 {
			printNewline()
		}
		inspectMetaNetwork(mn)
	}
}

// inspectMetaNetwork prints one slice: attributes, properties, node tree,
// and networks.
func inspectMetaNetwork(m *metanet.MetaNetwork) {
	title := "MetaNetwork"
	if id, ok := m.Attributes["id"]; ok {
		title += " " + id.String()
	}
	printTitle(title)

	for _, name := range slices.Sorted(maps.Keys(m.Attributes)) {
		if name == "id" {
			continue
		}
		printKeyValue(name, m.Attributes[name].String())
	}
	for _, name := range slices.Sorted(maps.Keys(m.Properties)) {
		printKeyValue(name, m.Properties[name].String())
	}

	tree := m.NodeTree()
	for _, class := range tree.ClassNames() {
		nc, err := tree.GetNodeClass(class)
		if err != nil {
			continue
		}
		for _, set := range slices.Sorted(maps.Keys(nc)) {
			ns := nc[set]
			printInfo("nodeclass %s/%s", class, set)
			printDetail("%d nodes", len(ns.Nodes))
			for _, name := range slices.Sorted(maps.Keys(ns.Identities)) {
				printDetail("property %s (%s)", name, ns.Identities[name].Type)
			}
		}
	}

	for _, g := range m.Networks() {
		meta := g.Metadata()
		printInfo("network %s", meta.ID)
		printDetail("%s %s %s %s", meta.SourceType, meta.Source, iconArrow, fmt.Sprintf("%s %s", meta.TargetType, meta.Target))
		printStats(g.NodeCount(), g.EdgeCount(), meta.Directed, meta.Binary)
	}
}
