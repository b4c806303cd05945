package metanet

import (
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

func dynamicWithSlices(t *testing.T, ids ...string) *DynamicMetaNetwork {
	t.Helper()
	d, err := NewDynamicMetaNetwork(network.KindAdjacency)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range ids {
		mn := d.NewSlice()
		mn.Attributes["id"] = property.TextValue(id)
	}
	return d
}

func sliceIDs(d *DynamicMetaNetwork) []string {
	out := make([]string, len(d.MetaNetworks))
	for i, mn := range d.MetaNetworks {
		out[i] = mn.Attributes["id"].String()
	}
	return out
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := property.ParseTimestamp(s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestNewDynamicMetaNetworkRejectsUnknownKind(t *testing.T) {
	if _, err := NewDynamicMetaNetwork(network.Kind(99)); !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Errorf("error = %v, want INVALID_VALUE", err)
	}
}

func TestDropMetanetworksBefore(t *testing.T) {
	d := dynamicWithSlices(t, "20140101T00:00:00", "20140201T00:00:00", "20140301T00:00:00")
	if err := d.DropMetanetworksBefore(at(t, "20140201T00:00:00")); err != nil {
		t.Fatal(err)
	}
	want := []string{"20140201T00:00:00", "20140301T00:00:00"}
	if diff := deep.Equal(sliceIDs(d), want); diff != nil {
		t.Error(diff)
	}
}

func TestDropMetanetworksAfter(t *testing.T) {
	// Out-of-order slices are still pruned by timestamp, not position.
	d := dynamicWithSlices(t, "20140301T00:00:00", "20140101T00:00:00", "20140201T00:00:00")
	if err := d.DropMetanetworksAfter(at(t, "20140201T00:00:00")); err != nil {
		t.Fatal(err)
	}
	want := []string{"20140101T00:00:00", "20140201T00:00:00"}
	if diff := deep.Equal(sliceIDs(d), want); diff != nil {
		t.Error(diff)
	}
}

func TestDropMetanetworksForRanges(t *testing.T) {
	ids := []string{"20140101T00:00:00", "20140201T00:00:00", "20140301T00:00:00"}
	feb := TimeRange{Start: at(t, "20140115T00:00:00"), End: at(t, "20140215T00:00:00")}

	t.Run("keep in range", func(t *testing.T) {
		d := dynamicWithSlices(t, ids...)
		if err := d.DropMetanetworksForRanges([]TimeRange{feb}, true); err != nil {
			t.Fatal(err)
		}
		if diff := deep.Equal(sliceIDs(d), []string{"20140201T00:00:00"}); diff != nil {
			t.Error(diff)
		}
	})

	t.Run("drop in range", func(t *testing.T) {
		d := dynamicWithSlices(t, ids...)
		if err := d.DropMetanetworksForRanges([]TimeRange{feb}, false); err != nil {
			t.Fatal(err)
		}
		want := []string{"20140101T00:00:00", "20140301T00:00:00"}
		if diff := deep.Equal(sliceIDs(d), want); diff != nil {
			t.Error(diff)
		}
	})
}

func TestDropFailsOnUnparseableID(t *testing.T) {
	d := dynamicWithSlices(t, "20140101T00:00:00", "not a timestamp")
	err := d.DropMetanetworksBefore(at(t, "20140201T00:00:00"))
	if !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Fatalf("error = %v, want INVALID_VALUE", err)
	}
	// The collection is unchanged on failure.
	if len(d.MetaNetworks) != 2 {
		t.Errorf("len = %d, want 2", len(d.MetaNetworks))
	}
}
