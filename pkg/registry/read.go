package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/cim-modules/modgraph/pkg/errors"
)

// Format identifies the serialization of a registry document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension.
// Unknown extensions are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Load reads and validates the registry document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "registry document %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read decodes a document in the given format and validates it.
// Read does not close r.
func Read(r io.Reader, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
}

// ReadJSON decodes a JSON document from r and validates it.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode json")
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadYAML decodes a YAML document from r and validates it.
func ReadYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode yaml")
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// tomlDocument mirrors Document for the TOML decoder, which has no ordered
// map hook. Node order is recovered from the decoder's key metadata.
type tomlDocument struct {
	Metadata Metadata `toml:"metadata"`
	Graph    *struct {
		Nodes map[string]Node `toml:"nodes"`
		Edges []Edge          `toml:"edges"`
	} `toml:"graph"`
}

// ReadTOML decodes a TOML document from r and validates it.
func ReadTOML(r io.Reader) (*Document, error) {
	var raw tomlDocument
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode toml")
	}

	doc := &Document{Metadata: raw.Metadata}
	if raw.Graph != nil {
		doc.Graph = &Graph{Edges: raw.Graph.Edges}
		for _, key := range tomlNodeOrder(md, raw.Graph.Nodes) {
			if err := doc.Graph.Nodes.add(key, raw.Graph.Nodes[key]); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode toml")
			}
		}
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// tomlNodeOrder lists node keys in the order their tables appear in the
// file. Keys the metadata does not report are appended in sorted order.
func tomlNodeOrder(md toml.MetaData, nodes map[string]Node) []string {
	order := make([]string, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for _, k := range md.Keys() {
		if len(k) < 3 || k[0] != "graph" || k[1] != "nodes" || seen[k[2]] {
			continue
		}
		if _, ok := nodes[k[2]]; ok {
			seen[k[2]] = true
			order = append(order, k[2])
		}
	}

	var rest []string
	for k := range nodes {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

// UnmarshalJSON decodes a JSON object of nodes, keeping key order.
func (n *Nodes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("nodes: expected object, got %v", tok)
	}

	var out Nodes
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var node Node
		if err := dec.Decode(&node); err != nil {
			return fmt.Errorf("node %s: %w", key, err)
		}
		if err := out.add(key, node); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping of nodes, keeping key order.
func (n *Nodes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: nodes: expected mapping", value.Line)
	}

	var out Nodes
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]

		var node Node
		if err := val.Decode(&node); err != nil {
			return fmt.Errorf("line %d: node %s: %w", val.Line, key, err)
		}
		if err := out.add(key, node); err != nil {
			return fmt.Errorf("line %d: %w", val.Line, err)
		}
	}

	*n = out
	return nil
}
