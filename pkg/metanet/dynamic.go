package metanet

import (
	"time"

	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

// DynamicMetaNetwork bundles meta-networks collected at different times.
// MetaNetworks holds the slices in document order, which producers are
// expected (but not required) to keep chronological by id attribute. The
// backend kind is fixed at construction and shared by every slice.
type DynamicMetaNetwork struct {
	Attributes   map[string]property.Value
	MetaNetworks []*MetaNetwork

	builder network.Builder
}

// NewDynamicMetaNetwork creates an empty dynamic meta-network storing its
// networks with the given backend kind. Unrecognized kinds fail with
// INVALID_VALUE.
func NewDynamicMetaNetwork(kind network.Kind) (*DynamicMetaNetwork, error) {
	b, err := network.NewBuilder(kind)
	if err != nil {
		return nil, err
	}
	return &DynamicMetaNetwork{
		Attributes: make(map[string]property.Value),
		builder:    b,
	}, nil
}

// Kind returns the backend kind networks are materialized with.
func (d *DynamicMetaNetwork) Kind() network.Kind { return d.builder.Kind() }

// NewSlice appends an empty meta-network sharing the collection's backend.
func (d *DynamicMetaNetwork) NewSlice() *MetaNetwork {
	mn := newMetaNetwork(d.builder)
	d.MetaNetworks = append(d.MetaNetworks, mn)
	return mn
}

// TimeRange is a closed interval used by DropMetanetworksForRanges.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the closed interval.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// DropMetanetworksBefore removes every slice whose id timestamp is before
// start. Fails (leaving the collection unchanged) if any slice has a missing
// or unparseable id attribute.
func (d *DynamicMetaNetwork) DropMetanetworksBefore(start time.Time) error {
	return d.drop(func(t time.Time) bool { return t.Before(start) })
}

// DropMetanetworksAfter removes every slice whose id timestamp is after end.
func (d *DynamicMetaNetwork) DropMetanetworksAfter(end time.Time) error {
	return d.drop(func(t time.Time) bool { return t.After(end) })
}

// DropMetanetworksForRanges removes slices relative to a set of closed time
// ranges. With keepInRange true, slices outside every range are dropped;
// with keepInRange false, slices inside any range are dropped.
func (d *DynamicMetaNetwork) DropMetanetworksForRanges(ranges []TimeRange, keepInRange bool) error {
	return d.drop(func(t time.Time) bool {
		inAny := false
		for _, r := range ranges {
			if r.Contains(t) {
				inAny = true
				break
			}
		}
		return inAny != keepInRange
	})
}

func (d *DynamicMetaNetwork) drop(unwanted func(time.Time) bool) error {
	kept := make([]*MetaNetwork, 0, len(d.MetaNetworks))
	for _, mn := range d.MetaNetworks {
		ts, err := mn.Timestamp()
		if err != nil {
			return err
		}
		if !unwanted(ts) {
			kept = append(kept, mn)
		}
	}
	d.MetaNetworks = kept
	return nil
}
