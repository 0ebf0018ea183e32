package sink

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image/png"
	"math"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/layout"
	"github.com/matzehuels/schematic/pkg/render/raster"
)

// Defaults for raster output.
const (
	DefaultScale = 150.0
	DefaultDPI   = 300.0
)

const inchesPerMeter = 1 / 0.0254

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	dpi   float64
}

// WithScale sets the raster resolution in pixels per grid unit.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithDPI sets the physical resolution recorded in the file. It does not
// change the pixel size.
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) { r.dpi = dpi }
}

// RenderPNG rasterizes l and encodes it as PNG with a pHYs chunk carrying
// the DPI. The image is round(canvas * scale) pixels; rendering the same
// layout with the same options yields identical bytes.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.dpi > 0) || math.IsInf(r.dpi, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", r.dpi)
	}

	img, err := raster.Draw(l, r.scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return withPhys(buf.Bytes(), r.dpi)
}

// PNG layout: 8-byte signature, then IHDR (4 length + 4 type + 13 data + 4 crc).
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// withPhys inserts a pHYs chunk right after IHDR.
func withPhys(data []byte, dpi float64) ([]byte, error) {
	if len(data) < ihdrEnd || string(data[12:16]) != "IHDR" {
		return nil, errors.New(errors.ErrCodeRender, "encoded png has no IHDR chunk")
	}
	ppm := uint32(math.Round(dpi * inchesPerMeter))

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit: meter
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, data[ihdrEnd:]...), nil
}

// ReadDPI returns the resolution recorded in a PNG's pHYs chunk, rounded
// to a whole number of dots per inch.
func ReadDPI(data []byte) (float64, bool) {
	if len(data) < 8 {
		return 0, false
	}
	for off := 8; off+12 <= len(data); {
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		if off+12+n > len(data) {
			return 0, false
		}
		if typ == "pHYs" && n == 9 {
			body := data[off+8 : off+8+n]
			if body[8] != 1 {
				return 0, false
			}
			ppm := binary.BigEndian.Uint32(body[0:4])
			return math.Round(float64(ppm) / inchesPerMeter), true
		}
		if typ == "IDAT" || typ == "IEND" {
			return 0, false
		}
		off += 12 + n
	}
	return 0, false
}
