// Package io reads and writes scene files.
//
// # Overview
//
// A scene file is the JSON form of the builder calls that produce a scene.
// Storing calls rather than a finished structure means every file is
// validated exactly like code that uses [scene.Builder] directly: a file
// that loads is a scene that renders.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "name": "erd",
//	  "canvas": {"w": 16, "h": 11},
//	  "calls": [
//	    {"op": "define_style", "name": "users", "style": {"stroke": "#3498db"}},
//	    {"op": "add_shape", "shape": {"id": "users", "kind": "entity-table", ...}},
//	    {"op": "add_connector", "connector": {"from": {"shape": "users", "anchor": "right"}, ...}},
//	    {"op": "set_title", "title": {"text": "Entity Relationship Diagram"}}
//	  ]
//	}
//
// Enumerations are written by name (kinds, anchors, routing, decorations,
// label sides, head modes, swatches, weights) and colors as hex strings.
// Unknown fields are rejected so typos fail loudly.
//
// # Round trip
//
// [WriteScene] records [scene.Scene.Calls]; [ReadScene] replays them.
// The replayed scene is structurally equal to the original and renders to
// identical pixels.
//
//	err := io.ExportScene("erd.json", s, "erd")
//	s2, err := io.ImportScene("erd.json")
//
// [scene.Builder]: github.com/matzehuels/schematic/pkg/scene.Builder
// [scene.Scene.Calls]: github.com/matzehuels/schematic/pkg/scene.Scene.Calls
package io
