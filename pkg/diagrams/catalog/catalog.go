// Package catalog holds the reference documentation diagrams.
//
// Every diagram is registered by name and rebuilt from scratch on each
// call to Build, so callers may render them concurrently.
//
//	for _, d := range catalog.All {
//	    s, err := d.Build()
//	    ...
//	}
package catalog

import (
	"sort"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Type names the diagram entry point a catalog entry is built with.
type Type string

const (
	TypeLayered   Type = "layered"
	TypeERD       Type = "erd"
	TypeFlowchart Type = "flowchart"
	TypeSequence  Type = "sequence"
)

// Diagram is one catalog entry.
type Diagram struct {
	Name        string
	Type        Type
	Description string
	Build       func() (*scene.Scene, error)
}

// All is the canonical list of catalog diagrams, in the order the run-all
// driver renders them.
var All = []*Diagram{
	Architecture,
	GPASequence,
	EntityRelationship,
	MVVM,
	CSVExportFlow,
}

// Find returns the diagram with the given name, or nil if not found.
func Find(name string) *Diagram {
	for _, d := range All {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Lookup is like Find but returns a NOT_FOUND error for unknown names.
func Lookup(name string) (*Diagram, error) {
	if err := errors.ValidateDiagramName(name); err != nil {
		return nil, err
	}
	if d := Find(name); d != nil {
		return d, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown diagram %q", name)
}

// Select resolves names to diagrams. No names selects All.
func Select(names []string) ([]*Diagram, error) {
	if len(names) == 0 {
		return All, nil
	}
	out := make([]*Diagram, 0, len(names))
	for _, n := range names {
		d, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Names returns the sorted catalog names.
func Names() []string {
	names := make([]string, len(All))
	for i, d := range All {
		names[i] = d.Name
	}
	sort.Strings(names)
	return names
}
