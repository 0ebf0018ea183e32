// Package sink encodes a frozen [layout.Layout] into output formats.
//
// # Formats
//
//   - PNG: [RenderPNG] rasterizes with [raster.Draw] and tags the file with
//     a pHYs chunk so viewers and word processors pick up the DPI.
//   - SVG: [RenderSVG] writes the same geometry as vector shapes.
//   - JSON: [RenderJSON] dumps the layout itself, for inspection.
//
// Scale and DPI are independent. Scale fixes the pixel size of the image
// (round(canvas * scale)); DPI is metadata only:
//
//	png, err := sink.RenderPNG(l, sink.WithScale(150), sink.WithDPI(300))
//
// All sinks are pure functions of their input. The same layout and options
// always produce the same bytes, which is what makes rendered artifacts
// cacheable by content hash.
//
// [layout.Layout]: github.com/matzehuels/schematic/pkg/layout.Layout
// [raster.Draw]: github.com/matzehuels/schematic/pkg/render/raster.Draw
package sink

import (
	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/layout"
)

// Format names an output format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatSVG, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want png, svg or json)", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/json"
}

// Options selects the resolution of raster and vector output.
type Options struct {
	Scale float64
	DPI   float64
}

// Render encodes l in format f.
func Render(l layout.Layout, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatPNG:
		var po []PNGOption
		if opts.Scale > 0 {
			po = append(po, WithScale(opts.Scale))
		}
		if opts.DPI > 0 {
			po = append(po, WithDPI(opts.DPI))
		}
		return RenderPNG(l, po...)
	case FormatSVG:
		var so []SVGOption
		if opts.Scale > 0 {
			so = append(so, WithSVGScale(opts.Scale))
		}
		return RenderSVG(l, so...)
	case FormatJSON:
		return RenderJSON(l)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}
