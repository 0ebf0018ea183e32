// Package pkg provides the core libraries for schematic diagram rendering.
//
// # Overview
//
// Schematic draws documentation diagrams (architecture layers, sequence
// diagrams, entity-relationship diagrams and flowcharts) on a fixed grid
// where every shape is placed by hand. There is no automatic layout: the
// engine validates what the author placed, routes connectors between
// anchors, and rasterizes the result deterministically.
//
// # Architecture
//
// The data flow through schematic:
//
//	[diagrams] entry point or JSON scene file ([io])
//	         ↓
//	    [scene] builder (validated shapes, connectors, styles)
//	         ↓
//	    [layout] frozen geometry (anchors, routes, label boxes, warnings)
//	         ↓
//	    [render/sink] PNG, SVG or JSON
//
// [pipeline] ties the stages together behind a content-addressed [cache],
// and renders batches in parallel.
//
// # Quick Start
//
//	s, err := catalog.EntityRelationship.Build()
//	if err != nil {
//	    return err
//	}
//	l, err := layout.Build(s)
//	if err != nil {
//	    return err
//	}
//	png, err := sink.RenderPNG(l, sink.WithScale(150), sink.WithDPI(300))
//
// # Packages
//
//   - [geom]: points, sizes, boxes and the anchor vocabulary
//   - [scene]: the shape and connector model and its builder
//   - [layout]: anchor resolution, connector routing, label placement
//   - [fonts]: embedded Go fonts and text measurement
//   - [render/styles]: the shared palette
//   - [render/raster]: the gg-based rasterizer
//   - [render/sink]: output encoders
//   - [diagrams]: per-type entry points; [diagrams/catalog] holds the
//     reference diagrams
//   - [io]: JSON scene files
//   - [pipeline], [cache], [config], [observability], [errors], [buildinfo]
package pkg
