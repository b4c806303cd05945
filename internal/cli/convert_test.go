package cli

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

func TestKindResolution(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		config  string
		want    network.Kind
		wantErr bool
	}{
		{"default", "", "", network.KindAdjacency, false},
		{"from config", "", "graphviz", network.KindGraphviz, false},
		{"flag wins", "adjacency", "graphviz", network.KindAdjacency, false},
		{"unknown", "matrix", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := convertOpts{backend: tt.flag}
			cfg := Config{Backend: tt.config}
			got, err := opts.kind(&cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseOptionsMergesConfig(t *testing.T) {
	opts := convertOpts{
		excludeNodeclasses: []string{"Location"},
		start:              "20140225T00:00:00",
	}
	cfg := Config{Filters: FilterConfig{
		ExcludeNodeclasses: []string{"Tweet"},
		ExcludeProperties:  []string{"followers"},
	}}

	got, err := opts.parseOptions(&cfg)
	if err != nil {
		t.Fatal(err)
	}

	// The flag list replaces the config list for its dimension.
	if diff := deep.Equal(got.ExcludeNodeclasses, []string{"Location"}); diff != nil {
		t.Error(diff)
	}
	// Untouched dimensions fall back to the config.
	if diff := deep.Equal(got.ExcludeProperties, []string{"followers"}); diff != nil {
		t.Error(diff)
	}

	want, err := property.ParseTimestamp("20140225T00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	if got.Start == nil || !got.Start.Equal(want) {
		t.Errorf("start = %v, want %v", got.Start, want)
	}
	if got.End != nil {
		t.Errorf("end = %v, want nil", got.End)
	}
}

func TestParseOptionsBadTimestamp(t *testing.T) {
	opts := convertOpts{end: "yesterday"}
	if _, err := opts.parseOptions(&Config{}); err == nil {
		t.Fatal("expected error for unparseable --end")
	}
}
