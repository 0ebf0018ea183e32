// Package fonts provides the embedded typefaces used for labels and the text
// metrics layout relies on.
//
// The Go font family ships inside the binary through golang.org/x/image, so
// rendering never depends on fonts installed on the host and the same scene
// measures identically everywhere.
package fonts

import (
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Style selects a face within the family.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
)

// FontFamily is the family name written into vector output.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the Go fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// LineSpacing is the baseline-to-baseline distance as a multiple of the
// font size.
const LineSpacing = 1.2

// PointsPerUnit maps font points to grid units: one unit is a nominal inch.
const PointsPerUnit = 72.0

var (
	parsed    [3]*truetype.Font
	parseErr  error
	parseOnce sync.Once
)

func load() error {
	parseOnce.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF} {
			f, err := truetype.Parse(ttf)
			if err != nil {
				parseErr = err
				return
			}
			parsed[i] = f
		}
	})
	return parseErr
}

// Font returns the parsed typeface for s. Fonts are immutable and safe to
// share between goroutines.
func Font(s Style) (*truetype.Font, error) {
	if err := load(); err != nil {
		return nil, err
	}
	if s < Regular || s > Italic {
		s = Regular
	}
	return parsed[s], nil
}

// Face builds a face of the given pixel size. Faces cache glyphs and must
// not be shared between goroutines.
func Face(s Style, px float64) (font.Face, error) {
	f, err := Font(s)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// TTF returns the raw font file for s.
func TTF(s Style) []byte {
	switch s {
	case Bold:
		return gobold.TTF
	case Italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

// Measure returns the extent of text set at pt points, in grid units.
// Lines are split on "\n"; the width is the widest line and the height is
// the number of lines times the line spacing.
func Measure(text string, s Style, pt float64) (w, h float64) {
	f, err := Font(s)
	if err != nil {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	scale := fixed.Int26_6(pt * 64)
	for _, line := range lines {
		if lw := advance(f, scale, line); lw > w {
			w = lw
		}
	}
	return w / PointsPerUnit, float64(len(lines)) * pt * LineSpacing / PointsPerUnit
}

// advance sums kerned glyph advances of line in points.
func advance(f *truetype.Font, scale fixed.Int26_6, line string) float64 {
	var total fixed.Int26_6
	prev, hasPrev := truetype.Index(0), false
	for _, r := range line {
		idx := f.Index(r)
		if hasPrev {
			total += f.Kern(scale, prev, idx)
		}
		total += f.HMetric(scale, idx).AdvanceWidth
		prev, hasPrev = idx, true
	}
	return float64(total) / 64
}
