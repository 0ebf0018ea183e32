// Package render groups the stages that turn a frozen layout into output.
//
// # Overview
//
// Rendering starts after [layout.Build] has resolved every position. The
// subpackages split the work:
//
//   - [styles]: effective colors, widths and font sizes per element, with
//     the documentation palette as defaults
//   - [raster]: draws a layout onto an RGBA image with fogleman/gg
//   - [sink]: encodes layouts as PNG (with DPI metadata), SVG or JSON
//
// A typical call chain:
//
//	s, err := b.Build()
//	l, err := layout.Build(s)
//	png, err := sink.RenderPNG(l, sink.WithScale(150), sink.WithDPI(300))
//
// None of these packages write files. Persisting bytes is the job of
// [pipeline.WriteFile], which writes atomically.
//
// [layout.Build]: github.com/matzehuels/schematic/pkg/layout.Build
// [styles]: github.com/matzehuels/schematic/pkg/render/styles
// [raster]: github.com/matzehuels/schematic/pkg/render/raster
// [sink]: github.com/matzehuels/schematic/pkg/render/sink
// [pipeline.WriteFile]: github.com/matzehuels/schematic/pkg/pipeline.WriteFile
package render
