package metanet

import (
	"time"

	"github.com/pmlandwehr/dynetml2other/pkg/filter"
)

// Options controls what a parse call admits into the model. Each
// include/exclude pair is mutually exclusive; leaving both empty admits
// everything. Start and End bound which slices of a dynamic document are
// loaded and only apply to the dynamic form.
type Options struct {
	// Node property names (also filters network-level property identities).
	IncludeProperties []string
	ExcludeProperties []string

	// Nodeclass names, matched against the nodeclass element's id attribute.
	IncludeNodeclasses []string
	ExcludeNodeclasses []string

	// Network ids.
	IncludeNetworks []string
	ExcludeNetworks []string

	// Slices with id timestamps before Start or after End are skipped.
	Start *time.Time
	End   *time.Time
}

type filters struct {
	property  filter.Func
	nodeclass filter.Func
	network   filter.Func
}

func (o Options) filters() (filters, error) {
	var f filters
	var err error
	if f.property, err = filter.New(o.IncludeProperties, o.ExcludeProperties); err != nil {
		return f, err
	}
	if f.nodeclass, err = filter.New(o.IncludeNodeclasses, o.ExcludeNodeclasses); err != nil {
		return f, err
	}
	if f.network, err = filter.New(o.IncludeNetworks, o.ExcludeNetworks); err != nil {
		return f, err
	}
	return f, nil
}
