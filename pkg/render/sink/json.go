package sink

import (
	"encoding/json"

	"github.com/matzehuels/schematic/pkg/layout"
)

// LayoutVersion is the version of the JSON layout document.
const LayoutVersion = 1

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name   string
	indent bool
}

// WithJSONName records the diagram name in the document.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.indent = false } }

type jsonOutput struct {
	Version int    `json:"version"`
	Name    string `json:"name,omitempty"`
	layout.Layout
}

// RenderJSON exports the frozen layout: every absolute box, route, label
// placement and warning. It is meant for inspection and for tooling that
// draws the geometry itself.
//
// RenderJSON does not modify l and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: true}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Version: LayoutVersion, Name: r.name, Layout: l}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
