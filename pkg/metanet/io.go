package metanet

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"time"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
	"github.com/pmlandwehr/dynetml2other/pkg/network"
	"github.com/pmlandwehr/dynetml2other/pkg/property"
)

// Document is the result of parsing a DyNetML file: either a dynamic
// meta-network, a bare meta-network, or neither. A nil *Document with a nil
// error means the root element was not a recognized DyNetML tag — an explicit
// "no model" result kept for forward compatibility with producers that wrap
// DyNetML in other vocabularies.
type Document struct {
	Dynamic *DynamicMetaNetwork
	Meta    *MetaNetwork
}

// Parse reads a DyNetML document and builds the contained model, storing
// networks with the given backend kind. Malformed XML fails with PARSE_ERROR;
// schema violations inside a recognized document fail with their specific
// code and no partial model is returned.
func Parse(data []byte, kind network.Kind, opts Options) (*Document, error) {
	b, err := network.NewBuilder(kind)
	if err != nil {
		return nil, err
	}
	f, err := opts.filters()
	if err != nil {
		return nil, err
	}

	var probe struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed XML document")
	}

	switch probe.XMLName.Local {
	case rootDynamic, rootDynamicSynonym:
		var w xmlDynamicMetaNetwork
		if err := xml.Unmarshal(data, &w); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed %s document", probe.XMLName.Local)
		}
		dmn := &DynamicMetaNetwork{
			Attributes: make(map[string]property.Value),
			builder:    b,
		}
		if err := dmn.loadWire(&w, opts, f); err != nil {
			return nil, err
		}
		return &Document{Dynamic: dmn}, nil

	case rootMeta:
		var w xmlMetaNetwork
		if err := xml.Unmarshal(data, &w); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed MetaNetwork document")
		}
		mn := newMetaNetwork(b)
		if err := mn.loadWire(&w, f); err != nil {
			return nil, err
		}
		return &Document{Meta: mn}, nil
	}

	return nil, nil
}

func (d *DynamicMetaNetwork) loadWire(w *xmlDynamicMetaNetwork, opts Options, f filters) error {
	for _, a := range w.Attrs {
		d.Attributes[a.Name.Local] = property.TextValue(a.Value)
	}

	for i := range w.MetaNetworks {
		if opts.Start != nil || opts.End != nil {
			ts, err := sliceTimestamp(&w.MetaNetworks[i])
			if err != nil {
				return err
			}
			if opts.Start != nil && ts.Before(*opts.Start) {
				continue
			}
			if opts.End != nil && ts.After(*opts.End) {
				continue
			}
		}
		mn := d.NewSlice()
		if err := mn.loadWire(&w.MetaNetworks[i], f); err != nil {
			return err
		}
	}
	return nil
}

func sliceTimestamp(w *xmlMetaNetwork) (time.Time, error) {
	for _, a := range w.Attrs {
		if a.Name.Local == "id" {
			return property.ParseTimestamp(a.Value)
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeNotFound, "MetaNetwork element has no id attribute")
}

// ParseFile reads and parses the DyNetML file at path.
// A missing or unreadable path fails with IO_ERROR.
func ParseFile(path string, kind network.Kind, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return Parse(data, kind, opts)
}

// XML serializes the meta-network as a standalone UTF-8 document with an XML
// declaration.
func (m *MetaNetwork) XML() ([]byte, error) {
	return marshalDocument(m.wire())
}

// XML serializes the dynamic meta-network as a standalone UTF-8 document with
// an XML declaration.
func (d *DynamicMetaNetwork) XML() ([]byte, error) {
	w := &xmlDynamicMetaNetwork{
		XMLName: xml.Name{Local: rootDynamic},
		Attrs:   attrsToWire(d.Attributes, nil),
	}
	for _, mn := range d.MetaNetworks {
		w.MetaNetworks = append(w.MetaNetworks, *mn.wire())
	}
	return marshalDocument(w)
}

// WriteFile serializes the meta-network to path. Fails with IO_ERROR if path
// is an existing directory; missing parent directories are created.
func (m *MetaNetwork) WriteFile(path string) error {
	data, err := m.XML()
	if err != nil {
		return err
	}
	return writeDocument(path, data)
}

// WriteFile serializes the dynamic meta-network to path. Fails with IO_ERROR
// if path is an existing directory; missing parent directories are created.
func (d *DynamicMetaNetwork) WriteFile(path string) error {
	data, err := d.XML()
	if err != nil {
		return err
	}
	return writeDocument(path, data)
}

func marshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "encode document")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeDocument(path string, data []byte) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.New(errors.ErrCodeIO, "output path %s is a directory", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
