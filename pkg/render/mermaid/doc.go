// Package mermaid renders registry graphs as Mermaid flowcharts.
//
// The output is a top-to-bottom flowchart with one subgraph per category,
// one labeled element and style directive per node, one arrow per
// "dependency" edge and a static legend:
//
//	graph TB
//	    %% CIM Module Dependency Graph
//	    %% Auto-generated from modules-graph.json
//	    %% Last updated: 2025-01-15
//
//	    %% Nodes
//	    subgraph "Core Infrastructure"
//	        cim-domain["cim-domain<br/>🟢"]
//	        style cim-domain fill:#2ECC71,stroke:#27AE60,stroke-width:3px,color:#FFF
//	    end
//
//	    %% Dependencies
//	    cim-events --> cim-domain
//
//	    %% Legend
//	    subgraph "Legend"
//	        ...
//	    end
//
// Rendering is a pure function of the document: no I/O, no shared state,
// and the same document always yields the same bytes. Edges of any type
// other than "dependency" are skipped without notice. Node ids and category
// names are written verbatim; ids that are not valid Mermaid identifiers
// produce a diagram Mermaid will reject.
package mermaid
