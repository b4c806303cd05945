// Package pkg provides the core libraries for working with DyNetML documents.
//
// # Overview
//
// DyNetML is an XML interchange format for dynamic meta-networks: collections
// of time-sliced snapshots, each holding a tree of typed node sets and the
// networks connecting them. The pkg directory is organized into five areas:
//
//  1. [metanet] - The document model (meta-networks, node trees, XML codec)
//  2. [network] - Network representations (adjacency map, Graphviz)
//  3. [property] - The closed property type system and value codec
//  4. [filter] - Include/exclude membership predicates
//  5. [errors] - Code-based structured errors shared by every package
//
// # Architecture
//
// The typical data flow:
//
//	DyNetML XML file
//	         ↓
//	    [metanet] package (parse + filter)
//	         ↓
//	    [property] package (coerce values by declared type)
//	         ↓
//	    [network] package (build adjacency or Graphviz graphs)
//	         ↓
//	    DyNetML XML / DOT output
//
// # Quick Start
//
// Parse a document and walk its slices:
//
//	import (
//	    "github.com/pmlandwehr/dynetml2other/pkg/metanet"
//	    "github.com/pmlandwehr/dynetml2other/pkg/network"
//	)
//
//	// 1. Parse the file
//	doc, _ := metanet.ParseFile("tweets.xml", network.KindAdjacency, metanet.Options{})
//
//	// 2. Walk the time slices
//	for _, mn := range doc.Dynamic.MetaNetworks {
//	    ts, _ := mn.Timestamp()
//	    for _, g := range mn.Networks() {
//	        fmt.Printf("%s %s: %d nodes, %d edges\n", ts, g.Metadata().ID, g.NodeCount(), g.EdgeCount())
//	    }
//	}
//
//	// 3. Serialize back out
//	_ = doc.Dynamic.WriteFile("out/tweets.xml")
//
// # Main Packages
//
// [metanet] - The document model. A DynamicMetaNetwork holds ordered
// MetaNetwork slices; each slice owns a NodeTree (nodeclass → nodeset → node)
// and its networks. Parsing applies include/exclude filters and date bounds,
// and serialization is deterministic: the same model always produces
// byte-identical XML.
//
// [network] - Pluggable network backends behind a single Graph interface.
// The adjacency backend stores a weighted adjacency map; the graphviz backend
// builds DOT text that can be materialized as a Graphviz graph. The backend
// is chosen once per document and never mixed.
//
// [property] - The closed DyNetML property type system (text, number, date,
// categoryText, URI, bool) with exact-inverse parse and render, including the
// two timestamp layouts found in the wild.
//
// [filter] - Membership predicates built from include or exclude lists, used
// for nodeclasses, networks, and properties while loading.
//
// [errors] - Structured errors with machine-readable codes (NOT_FOUND,
// CONFLICT, INVALID_VALUE, ...) used across all packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/metanet/...  # Specific package
//
// [metanet]: https://pkg.go.dev/github.com/pmlandwehr/dynetml2other/pkg/metanet
// [network]: https://pkg.go.dev/github.com/pmlandwehr/dynetml2other/pkg/network
// [property]: https://pkg.go.dev/github.com/pmlandwehr/dynetml2other/pkg/property
// [filter]: https://pkg.go.dev/github.com/pmlandwehr/dynetml2other/pkg/filter
// [errors]: https://pkg.go.dev/github.com/pmlandwehr/dynetml2other/pkg/errors
package pkg
