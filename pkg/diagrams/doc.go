// Package diagrams builds scenes for the four supported diagram types.
//
// Each entry point takes a plain description of one diagram and returns a
// validated [scene.Scene]. The descriptions carry explicit coordinates:
// nothing here lays shapes out automatically, it only knows which shape
// kinds, connector options and default colors each diagram type uses.
//
//   - [Layered]: translucent layer containers holding component boxes, with
//     arrows between layers (three-tier architecture, MVVM)
//   - [ERD]: entity tables joined by crow's-foot relationships
//   - [Flowchart]: terminators, processes and decisions joined by arrows
//   - [Sequence]: actors with lifelines exchanging messages
//
// A description that references an unknown id, repeats an id or places a
// connector with coincident ends fails with the same coded error the scene
// builder reports.
//
// [scene.Scene]: github.com/matzehuels/schematic/pkg/scene.Scene
package diagrams
