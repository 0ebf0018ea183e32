package styles

import (
	"testing"

	"github.com/matzehuels/schematic/pkg/fonts"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

func buildScene(t *testing.T) *scene.Scene {
	t.Helper()
	b := scene.NewBuilder(geom.Size{W: 10, H: 10})
	if err := b.DefineStyle("red", scene.Style{Stroke: Red}); err != nil {
		t.Fatal(err)
	}
	if err := b.DefineStyle("dashed", scene.Style{Dashed: true, LineWidth: 1}); err != nil {
		t.Fatal(err)
	}
	shapes := []scene.Shape{
		{ID: "t", Kind: scene.Terminator, Center: geom.Pt(2, 2), Size: geom.Size{W: 2, H: 0.6}, Style: "red"},
		{ID: "p", Kind: scene.Process, Center: geom.Pt(6, 2), Size: geom.Size{W: 2, H: 0.6}, Style: "red"},
		{ID: "d", Kind: scene.Decision, Center: geom.Pt(2, 6), Size: geom.Size{W: 1.8, H: 1.2}},
	}
	for _, sh := range shapes {
		if err := b.AddShape(sh); err != nil {
			t.Fatal(err)
		}
	}
	s, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestForShape(t *testing.T) {
	s := buildScene(t)

	tests := []struct {
		id        string
		wantFill  string
		wantLine  string
		wantAlpha float64
	}{
		{"t", "#e74c3c", "#e74c3c", 0.3},
		{"p", "#ffffff", "#e74c3c", 1},
		{"d", "#ffffff", "#f39c12", 1},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			sh, _ := s.Shape(tt.id)
			got := ForShape(s, sh)
			if got.Fill.Hex() != tt.wantFill {
				t.Errorf("Fill = %s, want %s", got.Fill.Hex(), tt.wantFill)
			}
			if got.Stroke.Hex() != tt.wantLine {
				t.Errorf("Stroke = %s, want %s", got.Stroke.Hex(), tt.wantLine)
			}
			if got.FillAlpha != tt.wantAlpha {
				t.Errorf("FillAlpha = %v, want %v", got.FillAlpha, tt.wantAlpha)
			}
		})
	}
}

func TestForConnector(t *testing.T) {
	s := buildScene(t)
	plain := ForConnector(s, scene.Connector{})
	if plain.Stroke.Hex() != Gray.Hex() || plain.LineWidth != 2 {
		t.Errorf("default connector = %+v", plain)
	}
	dashed := ForConnector(s, scene.Connector{Style: "dashed"})
	if !dashed.Dashed || dashed.LineWidth != 1 || dashed.Stroke.Hex() != Gray.Hex() {
		t.Errorf("dashed connector = %+v", dashed)
	}
}

func TestDefaultsAreComplete(t *testing.T) {
	for k := scene.Terminator; k <= scene.Note; k++ {
		st := Default(k)
		if st.FontSize <= 0 {
			t.Errorf("%s: FontSize = %v, want > 0", k, st.FontSize)
		}
		if !st.Text.IsSet() {
			t.Errorf("%s: text color unset", k)
		}
	}
}

func TestHeader(t *testing.T) {
	h := Header(Default(scene.EntityTable))
	if h.Fill.Hex() != Blue.Hex() || h.Text.Hex() != "#ffffff" || h.Weight != scene.WeightBold {
		t.Errorf("Header = %+v", h)
	}
	if FontStyle(h) != fonts.Bold {
		t.Errorf("FontStyle(header) = %v, want Bold", FontStyle(h))
	}
}
