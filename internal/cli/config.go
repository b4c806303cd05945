package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
)

// defaultConfigFile is searched in the working directory when --config is unset.
const defaultConfigFile = "dynetml.toml"

// Config holds file-based defaults for the CLI. Flags override these values;
// zero values fall back to the built-in defaults.
type Config struct {
	// Backend selects the default network representation ("adjacency" or "graphviz").
	Backend string `toml:"backend"`

	Filters FilterConfig `toml:"filters"`
}

// FilterConfig mirrors the include/exclude options of the parser. Include and
// exclude lists for the same dimension are mutually exclusive.
type FilterConfig struct {
	IncludeProperties  []string `toml:"include_properties"`
	ExcludeProperties  []string `toml:"exclude_properties"`
	IncludeNodeclasses []string `toml:"include_nodeclasses"`
	ExcludeNodeclasses []string `toml:"exclude_nodeclasses"`
	IncludeNetworks    []string `toml:"include_networks"`
	ExcludeNetworks    []string `toml:"exclude_networks"`
}

// loadConfig reads the TOML config at path. An empty path falls back to
// dynetml.toml in the working directory, which is optional; an explicit path
// that cannot be read is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeParse, err, "parse config %s", path)
	}
	return cfg, nil
}
