package metanet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

func loadFixture(t *testing.T, kind network.Kind, opts Options) *DynamicMetaNetwork {
	t.Helper()
	doc, err := ParseFile(filepath.Join("testdata", "tweets.xml"), kind, opts)
	if err != nil {
		t.Fatal(err)
	}
	if doc == nil || doc.Dynamic == nil {
		t.Fatal("expected a dynamic meta-network")
	}
	return doc.Dynamic
}

func TestParseFixtureCounts(t *testing.T) {
	d := loadFixture(t, network.KindAdjacency, Options{})

	if len(d.MetaNetworks) != 3 {
		t.Fatalf("slices = %d, want 3", len(d.MetaNetworks))
	}
	if !property.Equal(d.Attributes["id"], property.TextValue("20140224T23:00:00")) {
		t.Errorf("document id attribute = %v", d.Attributes["id"])
	}

	tests := []struct {
		slice        int
		class, set   string
		nodes        int
		networkID    string
		networkNodes int
		networkEdges int
	}{
		{0, "Agent", "Agent", 1, "Agent x Tweet - Sender", 2, 1},
		{1, "Agent", "Agent", 2, "Agent x Agent - Retweet", 2, 1},
		{2, "Agent", "Agent", 3, "Agent x Tweet - Sender", 6, 3},
	}

	for _, tt := range tests {
		mn := d.MetaNetworks[tt.slice]
		ns, err := mn.GetNodeSet(tt.class, tt.set)
		if err != nil {
			t.Fatalf("slice %d: %v", tt.slice, err)
		}
		if len(ns.Nodes) != tt.nodes {
			t.Errorf("slice %d: nodes = %d, want %d", tt.slice, len(ns.Nodes), tt.nodes)
		}
		g, err := mn.Network(tt.networkID)
		if err != nil {
			t.Fatalf("slice %d: %v", tt.slice, err)
		}
		if g.NodeCount() != tt.networkNodes || g.EdgeCount() != tt.networkEdges {
			t.Errorf("slice %d: network counts = %d nodes, %d edges, want %d, %d",
				tt.slice, g.NodeCount(), g.EdgeCount(), tt.networkNodes, tt.networkEdges)
		}
	}
}

func TestParseTypedValues(t *testing.T) {
	d := loadFixture(t, network.KindAdjacency, Options{})
	mn := d.MetaNetworks[0]

	node, err := mn.GetNode("Agent", "Agent", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !property.Equal(node.Properties["followers"], property.NumberValue(870)) {
		t.Errorf("followers = %v, want number 870", node.Properties["followers"])
	}
	wantDate := time.Date(2014, 2, 24, 22, 15, 0, 0, time.UTC)
	if !property.Equal(node.Properties["firstSeen"], property.DateValue(wantDate)) {
		t.Errorf("firstSeen = %v, want %v", node.Properties["firstSeen"], wantDate)
	}

	if !property.Equal(mn.Properties["collection"], property.TextValue("tweets")) {
		t.Errorf("collection property = %v", mn.Properties["collection"])
	}
	ident, ok := mn.PropertyIdentities["sourceDescription"]
	if !ok || ident.Type != property.Text || !ident.SingleValued {
		t.Errorf("sourceDescription identity = %+v, %v", ident, ok)
	}
}

func TestParseWeightDefaultsAndFallback(t *testing.T) {
	d := loadFixture(t, network.KindAdjacency, Options{})
	g, err := d.MetaNetworks[2].Network("Agent x Tweet - Sender")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 1, 0.5} // weight attr, absent (defaults to 1), value attr
	for i, e := range g.Edges() {
		if e.Weight != want[i] {
			t.Errorf("edge %d weight = %v, want %v", i, e.Weight, want[i])
		}
	}
}

func TestParseFilters(t *testing.T) {
	t.Run("nodeclass exclusion", func(t *testing.T) {
		d := loadFixture(t, network.KindAdjacency, Options{ExcludeNodeclasses: []string{"Tweet"}})
		if _, err := d.MetaNetworks[0].GetNodeSet("Tweet", "Tweet"); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("excluded nodeclass still present: %v", err)
		}
		if _, err := d.MetaNetworks[0].GetNodeSet("Agent", "Agent"); err != nil {
			t.Errorf("included nodeclass missing: %v", err)
		}
	})

	t.Run("network inclusion", func(t *testing.T) {
		d := loadFixture(t, network.KindAdjacency, Options{IncludeNetworks: []string{"Agent x Agent - Retweet"}})
		if got := len(d.MetaNetworks[0].Networks()); got != 0 {
			t.Errorf("slice 0 networks = %d, want 0", got)
		}
		if got := len(d.MetaNetworks[1].Networks()); got != 1 {
			t.Errorf("slice 1 networks = %d, want 1", got)
		}
	})

	t.Run("property exclusion", func(t *testing.T) {
		d := loadFixture(t, network.KindAdjacency, Options{ExcludeProperties: []string{"followers", "firstSeen"}})
		node, err := d.MetaNetworks[0].GetNode("Agent", "Agent", "alice")
		if err != nil {
			t.Fatal(err)
		}
		if diff := deep.Equal(sortedKeys(node.Properties), []string{"screenName"}); diff != nil {
			t.Error(diff)
		}
	})

	t.Run("date bounds", func(t *testing.T) {
		start := at(t, "20140225T00:00:00")
		end := at(t, "20140225T23:59:59")
		d := loadFixture(t, network.KindAdjacency, Options{Start: &start, End: &end})
		if diff := deep.Equal(sliceIDs(d), []string{"20140225T23:00:00"}); diff != nil {
			t.Error(diff)
		}
	})

	t.Run("conflicting filter lists", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "tweets.xml"), network.KindAdjacency,
			Options{IncludeNetworks: []string{"a"}, ExcludeNetworks: []string{"b"}})
		if !errors.Is(err, errors.ErrCodeInvalidValue) {
			t.Errorf("error = %v, want INVALID_VALUE", err)
		}
	})
}

func TestParseUnrecognizedRootIsNoModel(t *testing.T) {
	doc, err := Parse([]byte(`<blah><blah_child value="1.0"/></blah>`), network.KindAdjacency, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != nil {
		t.Errorf("doc = %+v, want nil", doc)
	}
}

func TestParseRootSynonym(t *testing.T) {
	data := []byte(`<DynamicNetwork id="20140224T23:00:00"></DynamicNetwork>`)
	doc, err := Parse(data, network.KindAdjacency, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if doc == nil || doc.Dynamic == nil {
		t.Fatal("synonym root should load as a dynamic meta-network")
	}
}

func TestParseBareMetaNetwork(t *testing.T) {
	data := []byte(`<MetaNetwork id="20140224T23:00:00">
		<nodes>
			<nodeclass type="Agent" id="Agent"><node id="alice"></node></nodeclass>
		</nodes>
	</MetaNetwork>`)
	doc, err := Parse(data, network.KindGraphviz, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if doc == nil || doc.Meta == nil {
		t.Fatal("expected a bare meta-network")
	}
	if doc.Meta.Kind() != network.KindGraphviz {
		t.Errorf("kind = %v, want graphviz", doc.Meta.Kind())
	}
	if _, err := doc.Meta.GetNode("Agent", "Agent", "alice"); err != nil {
		t.Error(err)
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse([]byte(`<DynamicMetaNetwork><MetaNetwork>`), network.KindAdjacency, Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("error = %v, want PARSE_ERROR", err)
	}
}

func TestParseUndeclaredNodeProperty(t *testing.T) {
	data := []byte(`<MetaNetwork id="x"><nodes>
		<nodeclass type="Agent" id="Agent">
			<node id="alice"><properties><property id="ghost" value="1"/></properties></node>
		</nodeclass>
	</nodes></MetaNetwork>`)
	_, err := Parse(data, network.KindAdjacency, Options{})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

// Serializing a parsed model and reparsing it must yield a semantically equal
// model. Serialization is deterministic, so equality of the two serialized
// forms implies model equality under codec value equality.
func TestRoundTrip(t *testing.T) {
	for _, kind := range []network.Kind{network.KindAdjacency, network.KindGraphviz} {
		t.Run(kind.String(), func(t *testing.T) {
			d := loadFixture(t, kind, Options{})
			first, err := d.XML()
			if err != nil {
				t.Fatal(err)
			}

			doc, err := Parse(first, kind, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if doc == nil || doc.Dynamic == nil {
				t.Fatal("round trip lost the document")
			}
			second, err := doc.Dynamic.XML()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("round trip not stable:\n--- first ---\n%s\n--- second ---\n%s", first, second)
			}
		})
	}
}

func TestRoundTripPreservesTypedValues(t *testing.T) {
	d := loadFixture(t, network.KindAdjacency, Options{})
	data, err := d.XML()
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(data, network.KindAdjacency, Options{})
	if err != nil {
		t.Fatal(err)
	}

	orig, _ := d.MetaNetworks[0].GetNode("Agent", "Agent", "alice")
	back, err := doc.Dynamic.MetaNetworks[0].GetNode("Agent", "Agent", "alice")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"screenName", "followers", "firstSeen"} {
		if !property.Equal(orig.Properties[name], back.Properties[name]) {
			t.Errorf("%s = %v, want %v", name, back.Properties[name], orig.Properties[name])
		}
	}
}

func TestBinaryNetworkOmitsValueOnWrite(t *testing.T) {
	d := loadFixture(t, network.KindAdjacency, Options{})
	data, err := d.XML()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`source="alice" target="bob" value=`)) {
		t.Error("binary network link serialized a value attribute")
	}
	if !bytes.Contains(data, []byte(`source="alice" target="t1" value="1"`)) {
		t.Error("weighted network link lost its value attribute")
	}
}

func TestWriteFile(t *testing.T) {
	d := loadFixture(t, network.KindAdjacency, Options{})

	t.Run("directory path fails", func(t *testing.T) {
		if err := d.WriteFile(t.TempDir()); !errors.Is(err, errors.ErrCodeIO) {
			t.Errorf("error = %v, want IO_ERROR", err)
		}
	})

	t.Run("writes and reloads", func(t *testing.T) {
		// The parent directory does not exist yet.
		path := filepath.Join(t.TempDir(), "out", "tweets.xml")
		if err := d.WriteFile(path); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
			t.Error("document missing XML declaration")
		}

		doc, err := ParseFile(path, network.KindAdjacency, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if doc == nil || doc.Dynamic == nil || len(doc.Dynamic.MetaNetworks) != 3 {
			t.Error("reloaded document does not match")
		}
	})
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join("testdata", "nope.xml"), network.KindAdjacency, Options{}); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("error = %v, want IO_ERROR", err)
	}
}
