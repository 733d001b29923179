package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testGraph = `{
  "metadata": {"last_updated": "2025-01-15"},
  "graph": {
    "nodes": {
      "cim-domain": {"id": "cim-domain", "type": "core", "status": "production"},
      "cim-events": {"id": "cim-events", "type": "core", "status": "development"},
      "cim-ipld": {"id": "cim-ipld", "type": "storage", "status": "experimental"}
    },
    "edges": [
      {"from": "cim-events", "to": "cim-domain", "type": "dependency"},
      {"from": "cim-ipld", "to": "cim-domain", "type": "reference"}
    ]
  }
}`

// isolate points the config and cache directories at fresh temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// writeGraph writes content to a file named name in a temp dir.
func writeGraph(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout and the log output.
func execute(t *testing.T, args ...string) (stdout, logs string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer

	c := New(&errOut, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
