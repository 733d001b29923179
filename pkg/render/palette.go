package render

import "fmt"

// DefaultCategory is the category key of nodes without a type.
const DefaultCategory = "core"

// Known status values.
const (
	StatusProduction  = "production"
	StatusDevelopment = "development"
	StatusTemplate    = "template"
)

var categoryNames = map[string]string{
	"template": "Template",
	"core":     "Core Infrastructure",
	"domain":   "Domain Modules",
	"storage":  "Storage Modules",
	"graph":    "Graph Systems",
	"security": "Security Modules",
	"edge":     "Edge Computing",
}

// CategoryName returns the display name of a category key.
// Unknown keys are returned unchanged.
func CategoryName(key string) string {
	if name, ok := categoryNames[key]; ok {
		return name
	}
	return key
}

// CategoryKey returns the grouping key for a node type.
func CategoryKey(nodeType string) string {
	if nodeType == "" {
		return DefaultCategory
	}
	return nodeType
}

// Status is the visual treatment of a lifecycle status.
type Status struct {
	Emoji       string
	Fill        string
	Stroke      string
	StrokeWidth int // pixels
	Color       string
}

// Style formats s as a Mermaid style directive body,
// e.g. "fill:#2ECC71,stroke:#27AE60,stroke-width:3px,color:#FFF".
func (s Status) Style() string {
	return fmt.Sprintf("fill:%s,stroke:%s,stroke-width:%dpx,color:%s", s.Fill, s.Stroke, s.StrokeWidth, s.Color)
}

// UnknownStatus is used for missing or unrecognized statuses.
var UnknownStatus = Status{Emoji: "⚪", Fill: "#95A5A6", Stroke: "#7F8C8D", StrokeWidth: 2, Color: "#FFF"}

var statuses = map[string]Status{
	StatusProduction:  {Emoji: "🟢", Fill: "#2ECC71", Stroke: "#27AE60", StrokeWidth: 3, Color: "#FFF"},
	StatusDevelopment: {Emoji: "🟡", Fill: "#F39C12", Stroke: "#E67E22", StrokeWidth: 2, Color: "#FFF"},
	StatusTemplate:    {Emoji: "🔵", Fill: "#3498DB", Stroke: "#2980B9", StrokeWidth: 2, Color: "#FFF"},
}

// LookupStatus returns the visual treatment of status.
func LookupStatus(status string) Status {
	if s, ok := statuses[status]; ok {
		return s
	}
	return UnknownStatus
}

// KnownStatus reports whether status has its own entry in the table.
func KnownStatus(status string) bool {
	_, ok := statuses[status]
	return ok
}

// LegendEntry is one example element of a diagram legend.
type LegendEntry struct {
	Status string
	Label  string
}

// Legend returns the legend entries in display order, one per known status.
func Legend() []LegendEntry {
	return []LegendEntry{
		{Status: StatusProduction, Label: "Production Ready"},
		{Status: StatusDevelopment, Label: "In Development"},
		{Status: StatusTemplate, Label: "Template"},
	}
}
