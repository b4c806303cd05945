package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmlandwehr/dynetml2other/pkg/metanet"
	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

// convertOpts holds the command-line flags shared by convert and inspect.
// These options control the network backend and what gets loaded.
type convertOpts struct {
	backend            string   // network representation kind
	output             string   // output file path (stdout if empty)
	includeProperties  []string // property ids to keep
	excludeProperties  []string // property ids to drop
	includeNodeclasses []string // nodeclass ids to keep
	excludeNodeclasses []string // nodeclass ids to drop
	includeNetworks    []string // network ids to keep
	excludeNetworks    []string // network ids to drop
	start              string   // drop slices timestamped before this
	end                string   // drop slices timestamped after this
}

// registerLoadFlags wires the flags that affect document loading onto cmd.
func (o *convertOpts) registerLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.backend, "backend", "b", "", "network backend: adjacency or graphviz")
	cmd.Flags().StringSliceVar(&o.includeProperties, "include-properties", nil, "property ids to keep")
	cmd.Flags().StringSliceVar(&o.excludeProperties, "exclude-properties", nil, "property ids to drop")
	cmd.Flags().StringSliceVar(&o.includeNodeclasses, "include-nodeclasses", nil, "nodeclass ids to keep")
	cmd.Flags().StringSliceVar(&o.excludeNodeclasses, "exclude-nodeclasses", nil, "nodeclass ids to drop")
	cmd.Flags().StringSliceVar(&o.includeNetworks, "include-networks", nil, "network ids to keep")
	cmd.Flags().StringSliceVar(&o.excludeNetworks, "exclude-networks", nil, "network ids to drop")
	cmd.Flags().StringVar(&o.start, "start", "", "drop meta-networks timestamped before this")
	cmd.Flags().StringVar(&o.end, "end", "", "drop meta-networks timestamped after this")
}

// kind resolves the backend in flag > config > default order.
func (o *convertOpts) kind(cfg *Config) (network.Kind, error) {
	name := o.backend
	if name == "" {
		name = cfg.Backend
	}
	if name == "" {
		return network.KindAdjacency, nil
	}
	return network.ParseKind(name)
}

// parseOptions merges the flags with file-based defaults into parser options.
// A flag-provided list replaces the corresponding config list entirely.
func (o *convertOpts) parseOptions(cfg *Config) (metanet.Options, error) {
	opts := metanet.Options{
		IncludeProperties:  pick(o.includeProperties, cfg.Filters.IncludeProperties),
		ExcludeProperties:  pick(o.excludeProperties, cfg.Filters.ExcludeProperties),
		IncludeNodeclasses: pick(o.includeNodeclasses, cfg.Filters.IncludeNodeclasses),
		ExcludeNodeclasses: pick(o.excludeNodeclasses, cfg.Filters.ExcludeNodeclasses),
		IncludeNetworks:    pick(o.includeNetworks, cfg.Filters.IncludeNetworks),
		ExcludeNetworks:    pick(o.excludeNetworks, cfg.Filters.ExcludeNetworks),
	}

	var err error
	if opts.Start, err = timestampFlag("start", o.start); err != nil {
		return opts, err
	}
	if opts.End, err = timestampFlag("end", o.end); err != nil {
		return opts, err
	}
	return opts, nil
}

// pick returns the flag list when set, otherwise the config list.
func pick(flag, file []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return file
}

// timestampFlag parses an optional timestamp flag value.
func timestampFlag(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	ts, err := property.ParseTimestamp(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &ts, nil
}

// newConvertCmd creates the convert command. It parses a DyNetML file, applies
// the configured filters, and serializes the result to a file or stdout.
func newConvertCmd(cfg *Config) *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Parse a DyNetML file, apply filters, and write it back out",
		Long: `Parse a DyNetML file, apply filters, and write the result as DyNetML.

Filters prune nodeclasses, networks, node properties, and time slices while
loading. The output is deterministic: the same input and filters always
produce byte-identical XML.

Examples:
  dynetml convert tweets.xml -o pruned.xml --exclude-nodeclasses Tweet
  dynetml convert tweets.xml --start 20140225T00:00:00 --include-networks "Agent x Agent - Retweet"`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConvert(c.Context(), cfg, &opts, args[0])
		},
	}

	opts.registerLoadFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// loadDocument parses the file at path using the merged flag and config
// options. A nil document with a nil error means the root element was not a
// DyNetML document.
func loadDocument(ctx context.Context, cfg *Config, opts *convertOpts, path string) (*metanet.Document, error) {
	logger := loggerFromContext(ctx)

	kind, err := opts.kind(cfg)
	if err != nil {
		return nil, err
	}
	parseOpts, err := opts.parseOptions(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Loading %s with %s backend", path, kind)
	prog := newProgress(logger)
	doc, err := metanet.ParseFile(path, kind, parseOpts)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	switch {
	case doc.Dynamic != nil:
		prog.done(fmt.Sprintf("Parsed %d meta-networks", len(doc.Dynamic.MetaNetworks)))
	default:
		prog.done("Parsed 1 meta-network")
	}
	return doc, nil
}

// runConvert loads path, then serializes the document to opts.output or stdout.
func runConvert(ctx context.Context, cfg *Config, opts *convertOpts, path string) error {
	logger := loggerFromContext(ctx)

	doc, err := loadDocument(ctx, cfg, opts, path)
	if err != nil {
		return err
	}
	if doc == nil {
		printWarning("%s is not a DyNetML document, nothing to convert", path)
		return nil
	}

	if opts.output == "" {
		data, err := docXML(doc)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if doc.Dynamic != nil {
		err = doc.Dynamic.WriteFile(opts.output)
	} else {
		err = doc.Meta.WriteFile(opts.output)
	}
	if err != nil {
		return err
	}
	logger.Infof("Wrote document to %s", opts.output)
	return nil
}

// docXML serializes whichever model the document holds.
func docXML(doc *metanet.Document) ([]byte, error) {
	if doc.Dynamic != nil {
		return doc.Dynamic.XML()
	}
	return doc.Meta.XML()
}
