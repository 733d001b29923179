package registry

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	errs "github.com/cim-modules/modgraph/pkg/errors"
)

const sampleJSON = `{
  "metadata": {"last_updated": "2025-06-01T12:00:00Z", "version": "1.0"},
  "graph": {
    "nodes": {
      "zeta":  {"id": "zeta", "type": "core", "status": "production"},
      "alpha": {"id": "alpha", "type": "domain", "status": "development"},
      "mid":   {"type": "storage"}
    },
    "edges": [
      {"from": "alpha", "to": "zeta", "type": "dependency"},
      {"from": "mid", "to": "zeta", "type": "reference"}
    ]
  }
}`

const sampleYAML = `metadata:
  last_updated: "2025-06-01T12:00:00Z"
graph:
  nodes:
    zeta:
      id: zeta
      type: core
      status: production
    alpha:
      id: alpha
      type: domain
      status: development
    mid:
      type: storage
  edges:
    - from: alpha
      to: zeta
      type: dependency
    - from: mid
      to: zeta
      type: reference
`

const sampleTOML = `[metadata]
last_updated = "2025-06-01T12:00:00Z"

[graph.nodes.zeta]
id = "zeta"
type = "core"
status = "production"

[graph.nodes.alpha]
id = "alpha"
type = "domain"
status = "development"

[graph.nodes.mid]
type = "storage"

[[graph.edges]]
from = "alpha"
to = "zeta"
type = "dependency"

[[graph.edges]]
from = "mid"
to = "zeta"
type = "reference"
`

func TestReadFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, sampleJSON},
		{"yaml", FormatYAML, sampleYAML},
		{"toml", FormatTOML, sampleTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}

			if got := doc.Metadata.LastUpdated(); got != "2025-06-01T12:00:00Z" {
				t.Errorf("LastUpdated() = %q, want %q", got, "2025-06-01T12:00:00Z")
			}

			wantKeys := []string{"zeta", "alpha", "mid"}
			if got := doc.Graph.Nodes.Keys(); !slices.Equal(got, wantKeys) {
				t.Errorf("Nodes.Keys() = %v, want %v", got, wantKeys)
			}

			mid, ok := doc.Graph.Nodes.Get("mid")
			if !ok {
				t.Fatal("node mid missing")
			}
			if mid.ID != "mid" {
				t.Errorf("mid.ID = %q, want key to be used as id", mid.ID)
			}
			if mid.Status != "" {
				t.Errorf("mid.Status = %q, want empty", mid.Status)
			}

			if len(doc.Graph.Edges) != 2 {
				t.Fatalf("len(Edges) = %d, want 2", len(doc.Graph.Edges))
			}
			if !doc.Graph.Edges[0].IsDependency() || doc.Graph.Edges[1].IsDependency() {
				t.Errorf("IsDependency() mismatch for edges %+v", doc.Graph.Edges)
			}
		})
	}
}

func TestReadJSON_DuplicateNode(t *testing.T) {
	input := `{"graph": {"nodes": {"a": {}, "a": {"type": "core"}}}}`

	_, err := ReadJSON(strings.NewReader(input))
	if err == nil {
		t.Fatal("ReadJSON() should reject duplicate node keys")
	}
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("error = %v, want ErrDuplicateNode", err)
	}
	if !errs.Is(err, errs.ErrCodeInvalidDocument) {
		t.Errorf("code = %q, want %q", errs.GetCode(err), errs.ErrCodeInvalidDocument)
	}
}

func TestReadYAML_DuplicateNode(t *testing.T) {
	input := "graph:\n  nodes:\n    a: {}\n    a: {type: core}\n"

	_, err := ReadYAML(strings.NewReader(input))
	if err == nil {
		t.Fatal("ReadYAML() should reject duplicate node keys")
	}
	if !errs.Is(err, errs.ErrCodeInvalidDocument) {
		t.Errorf("code = %q, want %q", errs.GetCode(err), errs.ErrCodeInvalidDocument)
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `not json`},
		{"nodes is array", `{"graph": {"nodes": []}}`},
		{"truncated", `{"graph": {"nodes": {"a": {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() should fail")
			}
			if !errs.Is(err, errs.ErrCodeInvalidDocument) {
				t.Errorf("code = %q, want %q", errs.GetCode(err), errs.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestReadJSON_MissingOptionalFields(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"graph": {}}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if doc.Graph.Nodes.Len() != 0 {
		t.Errorf("Nodes.Len() = %d, want 0", doc.Graph.Nodes.Len())
	}
	if len(doc.Graph.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(doc.Graph.Edges))
	}
	if doc.Metadata.LastUpdated() != "" {
		t.Errorf("LastUpdated() = %q, want empty", doc.Metadata.LastUpdated())
	}
}

func TestReadTOML_DatetimeLastUpdated(t *testing.T) {
	input := "[metadata]\nlast_updated = 2025-06-01T12:00:00Z\n\n[graph]\n"

	doc, err := ReadTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if got := doc.Metadata.LastUpdated(); got != "2025-06-01T12:00:00Z" {
		t.Errorf("LastUpdated() = %q, want RFC 3339 text", got)
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader(sampleJSON), Format("xml"))
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Read() error = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"registry/modules-graph.json", FormatJSON},
		{"graph.yaml", FormatYAML},
		{"graph.YML", FormatYAML},
		{"graph.toml", FormatTOML},
		{"graph", FormatJSON},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml by extension", func(t *testing.T) {
		path := filepath.Join(dir, "graph.yaml")
		if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
			t.Fatal(err)
		}
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if doc.Graph.Nodes.Len() != 3 {
			t.Errorf("Nodes.Len() = %d, want 3", doc.Graph.Nodes.Len())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		if !errs.Is(err, errs.ErrCodeFileNotFound) {
			t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("error names the file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), path) {
			t.Errorf("Load() error = %v, want it to mention %s", err, path)
		}
	})
}
