package property

import (
	"time"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
)

// Timestamp layouts observed across DyNetML producers. Date properties are
// declared with DateLayout; meta-network id attributes appear in either
// layout depending on the exporting tool, so [ParseTimestamp] detects both.
const (
	// DateLayout is the canonical layout for date property values.
	DateLayout = "2006-01-02 15:04:05"
	// CompactLayout is the condensed id-attribute layout some exporters emit.
	CompactLayout = "20060102T15:04:05"
)

// ParseTimestamp parses a timestamp in either known layout, trying
// CompactLayout first. Returns an INVALID_VALUE error when neither matches.
func ParseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(CompactLayout, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.New(errors.ErrCodeInvalidValue, "bad timestamp literal %q", s)
	}
	return ts, nil
}
