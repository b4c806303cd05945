// Package filter builds include/exclude predicates used while parsing
// meta-network documents. A single filter is built per concern (node property
// names, nodeclass names, network ids) and consulted for every candidate key.
package filter

import (
	"github.com/pmlandwehr/dynetml2other/pkg/errors"
)

// Func reports whether a key should be included.
type Func func(string) bool

// New builds an inclusion predicate from an include list and an exclude list.
// The lists are mutually exclusive: populating both fails with an
// INVALID_VALUE error. With only include populated the predicate is a
// membership test; with only exclude populated it is a negated membership
// test; with neither it accepts everything.
func New(include, exclude []string) (Func, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue,
			"include and exclude lists cannot both contain values")
	}

	if len(include) > 0 {
		good := toSet(include)
		return func(s string) bool { return good[s] }, nil
	}
	if len(exclude) > 0 {
		bad := toSet(exclude)
		return func(s string) bool { return !bad[s] }, nil
	}
	return func(string) bool { return true }, nil
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
