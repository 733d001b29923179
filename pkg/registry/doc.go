// Package registry loads module registry graph documents.
//
// A registry document describes the modules of a project and the
// relationships between them:
//
//	{
//	  "metadata": {"last_updated": "2025-01-15"},
//	  "graph": {
//	    "nodes": {
//	      "cim-domain": {"id": "cim-domain", "type": "core", "status": "production"},
//	      "cim-events": {"id": "cim-events", "type": "domain", "status": "development"}
//	    },
//	    "edges": [
//	      {"from": "cim-events", "to": "cim-domain", "type": "dependency"}
//	    ]
//	  }
//	}
//
// The same shape is accepted as YAML and TOML. In TOML, nodes are tables
// under [graph.nodes.<id>] and edges are [[graph.edges]] array entries.
//
// # Node Order
//
// Renderers group nodes in the order they appear in the document, so the
// node mapping is decoded into [Nodes], an insertion-ordered set, instead of
// a Go map. All three decoders preserve document order.
//
// # Defaults
//
// A node without an "id" takes its key. Missing "type" and "status" are kept
// empty; renderers apply their own fallbacks. A missing "nodes" or "edges"
// field yields an empty graph. Edges may reference ids that are not in the
// node mapping.
//
// # Errors
//
// [Load] returns FILE_NOT_FOUND when the file does not exist. Decode
// failures, duplicate node keys and validation failures are reported as
// INVALID_DOCUMENT; validation failures carry an [errors.FieldErrors] listing
// every offending field.
//
// [errors.FieldErrors]: github.com/cim-modules/modgraph/pkg/errors.FieldErrors
package registry
