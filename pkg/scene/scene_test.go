package scene

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/geom"
)

func box(id string, kind Kind, x, y, w, h float64) Shape {
	return Shape{ID: id, Kind: kind, Center: geom.Pt(x, y), Size: geom.Size{W: w, H: h}, Label: id}
}

func TestAddShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup []Shape
		shape Shape
		code  errors.Code
	}{
		{
			name:  "duplicate id",
			setup: []Shape{box("A", Process, 1, 1, 1, 1)},
			shape: box("A", Process, 4, 4, 1, 1),
			code:  errors.ErrCodeDuplicateShapeID,
		},
		{
			name:  "zero width",
			shape: box("A", Process, 1, 1, 0, 1),
			code:  errors.ErrCodeInvalidDimensions,
		},
		{
			name:  "negative height",
			shape: box("A", Terminator, 1, 1, 1, -1),
			code:  errors.ErrCodeInvalidDimensions,
		},
		{
			name:  "table without width",
			shape: Shape{ID: "T", Kind: EntityTable, Fields: []Field{PK("id")}},
			code:  errors.ErrCodeInvalidDimensions,
		},
		{
			name:  "empty id",
			shape: box("", Process, 1, 1, 1, 1),
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name:  "fields on process",
			shape: Shape{ID: "P", Kind: Process, Size: geom.Size{W: 1, H: 1}, Fields: []Field{F("x")}},
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name:  "lifeline above box",
			shape: Shape{ID: "U", Kind: ActorBox, Center: geom.Pt(1, 9.5), Size: geom.Size{W: 1.2, H: 0.6}, Lifeline: LifelineTo(9.5)},
			code:  errors.ErrCodeInvalidDimensions,
		},
		{
			name:  "unknown style",
			shape: Shape{ID: "P", Kind: Process, Size: geom.Size{W: 1, H: 1}, Style: "missing"},
			code:  errors.ErrCodeInvalidStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(geom.Size{W: 10, H: 10})
			for _, sh := range tt.setup {
				if err := b.AddShape(sh); err != nil {
					t.Fatalf("setup AddShape: %v", err)
				}
			}
			err := b.AddShape(tt.shape)
			if !errors.Is(err, tt.code) {
				t.Fatalf("AddShape error = %v, want %s", err, tt.code)
			}
			if _, err := b.Build(); !errors.Is(err, tt.code) {
				t.Errorf("Build error = %v, want poisoned builder with %s", err, tt.code)
			}
		})
	}
}

func TestEntityTableHeight(t *testing.T) {
	b := NewBuilder(geom.Size{W: 12, H: 10})
	err := b.AddShape(Shape{
		ID: "terms", Kind: EntityTable, Center: geom.Pt(2, 7),
		Size:   geom.Size{W: 2.2, H: 99},
		Label:  "Terms",
		Fields: []Field{PK("TermId"), FK("UserId"), F("Title"), F("StartDate"), F("EndDate")},
	})
	if err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sh, _ := s.Shape("terms")
	if math.Abs(sh.Size.H-2.15) > 1e-9 {
		t.Errorf("table height = %v, want 2.15", sh.Size.H)
	}
}

func TestConnectorErrors(t *testing.T) {
	tests := []struct {
		name string
		conn Connector
		code errors.Code
	}{
		{
			name: "unknown target",
			conn: Connector{From: End{Shape: "A", Anchor: geom.Right}, To: End{Shape: "Z", Anchor: geom.Left}},
			code: errors.ErrCodeUnknownShapeReference,
		},
		{
			name: "straight same anchor",
			conn: Connector{From: End{Shape: "A", Anchor: geom.Right}, To: End{Shape: "A", Anchor: geom.Right}},
			code: errors.ErrCodeDegenerateConnector,
		},
		{
			name: "self loop across shapes",
			conn: Connector{From: End{Shape: "A", Anchor: geom.Right}, To: End{Shape: "B", Anchor: geom.Left}, Routing: SelfLoop},
			code: errors.ErrCodeInvalidConnector,
		},
		{
			name: "lifeline on process",
			conn: Connector{From: End{Shape: "A", Anchor: geom.Lifeline, At: 1}, To: End{Shape: "B", Anchor: geom.Left}},
			code: errors.ErrCodeInvalidAnchor,
		},
		{
			name: "lifeline depth out of range",
			conn: Connector{From: End{Shape: "U", Anchor: geom.Lifeline, At: 0.2}, To: End{Shape: "B", Anchor: geom.Left}},
			code: errors.ErrCodeInvalidAnchor,
		},
		{
			name: "out of range anchor",
			conn: Connector{From: End{Shape: "A", Anchor: geom.Anchor(42)}, To: End{Shape: "B", Anchor: geom.Left}},
			code: errors.ErrCodeInvalidAnchor,
		},
		{
			name: "unknown style",
			conn: Connector{From: End{Shape: "A", Anchor: geom.Right}, To: End{Shape: "B", Anchor: geom.Left}, Style: "nope"},
			code: errors.ErrCodeInvalidStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(geom.Size{W: 10, H: 10})
			mustAdd(t, b, box("A", Process, 2, 5, 2, 1))
			mustAdd(t, b, box("B", Process, 7, 5, 2, 1))
			mustAdd(t, b, Shape{ID: "U", Kind: ActorBox, Center: geom.Pt(5, 9), Size: geom.Size{W: 1.2, H: 0.6}, Lifeline: LifelineTo(0.5)})
			if err := b.AddConnector(tt.conn); !errors.Is(err, tt.code) {
				t.Errorf("AddConnector error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSelfLoopWithIdenticalAnchorsSucceeds(t *testing.T) {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	mustAdd(t, b, box("A", Process, 5, 5, 2, 1))
	err := b.AddConnector(Connector{
		From:    End{Shape: "A", Anchor: geom.Right},
		To:      End{Shape: "A", Anchor: geom.Right},
		Routing: SelfLoop,
	})
	if err != nil {
		t.Fatalf("AddConnector(SelfLoop) = %v, want nil", err)
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n := len(s.Connectors()); n != 1 {
		t.Errorf("connectors = %d, want 1", n)
	}
}

func TestLifelineAnchor(t *testing.T) {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	mustAdd(t, b, Shape{ID: "UI", Kind: ActorBox, Center: geom.Pt(1.5, 9.5), Size: geom.Size{W: 1.2, H: 0.6}, Lifeline: LifelineTo(0.5)})
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := s.Anchor(End{Shape: "UI", Anchor: geom.Lifeline, At: 8.5})
	if err != nil {
		t.Fatalf("Anchor: %v", err)
	}
	if !got.Eq(geom.Pt(1.5, 8.5)) {
		t.Errorf("Anchor = %v, want (1.5, 8.5)", got)
	}
}

func TestLifelineEndingAtCanvasBottom(t *testing.T) {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	end := 0.0
	mustAdd(t, b, Shape{ID: "UI", Kind: ActorBox, Center: geom.Pt(1.5, 9.5), Size: geom.Size{W: 1.2, H: 0.6}, Lifeline: &end})
	end = 4
	mustAdd(t, b, Shape{ID: "DB", Kind: ActorBox, Center: geom.Pt(5, 9.5), Size: geom.Size{W: 1.2, H: 0.6}})
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ui, _ := s.Shape("UI")
	if !ui.HasLifeline() || *ui.Lifeline != 0 {
		t.Errorf("UI lifeline = %v, want 0", ui.Lifeline)
	}
	if got, err := s.Anchor(End{Shape: "UI", Anchor: geom.Lifeline, At: 0}); err != nil || !got.Eq(geom.Pt(1.5, 0)) {
		t.Errorf("Anchor(At: 0) = %v, %v, want (1.5, 0)", got, err)
	}

	db, _ := s.Shape("DB")
	if db.HasLifeline() {
		t.Error("actor without Lifeline should have no lifeline")
	}
	if _, err := s.Anchor(End{Shape: "DB", Anchor: geom.Lifeline, At: 1}); !errors.Is(err, errors.ErrCodeInvalidAnchor) {
		t.Errorf("Anchor on DB error = %v, want %s", err, errors.ErrCodeInvalidAnchor)
	}
}

func TestDecisionAnchors(t *testing.T) {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	mustAdd(t, b, box("D", Decision, 5, 5, 1.8, 1.2))
	mustAdd(t, b, box("P", Process, 5, 5, 1.8, 1.2))
	s, _ := b.Build()

	top, _ := s.Anchor(End{Shape: "D", Anchor: geom.Top})
	right, _ := s.Anchor(End{Shape: "D", Anchor: geom.Right})
	if math.Abs(top.X-5) > 1e-9 || math.Abs(top.Y-5.6) > 1e-9 {
		t.Errorf("top = %v, want (5, 5.6)", top)
	}
	if math.Abs(right.X-5.9) > 1e-9 || math.Abs(right.Y-5) > 1e-9 {
		t.Errorf("right = %v, want (5.9, 5)", right)
	}

	dc, _ := s.Anchor(End{Shape: "D", Anchor: geom.TopRight})
	pc, _ := s.Anchor(End{Shape: "P", Anchor: geom.TopRight})
	if dc.Eq(pc) {
		t.Errorf("decision and process top-right both %v", dc)
	}
}

func TestSceneIsImmutable(t *testing.T) {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	sh := Shape{ID: "T", Kind: EntityTable, Center: geom.Pt(5, 5), Size: geom.Size{W: 2}, Fields: []Field{PK("id")}}
	mustAdd(t, b, sh)
	sh.Fields[0].Name = "mutated"
	s, _ := b.Build()

	got, _ := s.Shape("T")
	if got.Fields[0].Name != "id" {
		t.Errorf("field after caller mutation = %q, want %q", got.Fields[0].Name, "id")
	}
	got.Fields[0].Name = "mutated"
	again, _ := s.Shape("T")
	if again.Fields[0].Name != "id" {
		t.Errorf("field after accessor mutation = %q, want %q", again.Fields[0].Name, "id")
	}
}

func TestReplayRoundTrip(t *testing.T) {
	b := NewBuilder(geom.Size{W: 12, H: 10})
	if err := b.DefineStyle("blue", Style{Stroke: MustColor("#3498DB"), FillAlpha: 0.3}); err != nil {
		t.Fatalf("DefineStyle: %v", err)
	}
	mustAdd(t, b, Shape{ID: "A", Kind: Terminator, Center: geom.Pt(2, 5), Size: geom.Size{W: 2, H: 0.6}, Style: "blue", Label: "Start"})
	mustAdd(t, b, Shape{ID: "B", Kind: EntityTable, Center: geom.Pt(8, 5), Size: geom.Size{W: 2.2}, Fields: []Field{PK("id"), FK("a_id")}})
	if err := b.AddConnector(Connector{
		From: End{Shape: "A", Anchor: geom.Right}, To: End{Shape: "B", Anchor: geom.Left},
		Label: "1:M", Decoration: CrowsFoot, LabelSide: LabelCenter, Heads: HeadNone,
	}); err != nil {
		t.Fatalf("AddConnector: %v", err)
	}
	at := geom.Pt(6, 9.8)
	b.SetTitle(Title{Text: "Demo", At: &at})
	b.SetLegend(Legend{Origin: geom.Pt(1, 1.5), Entries: []LegendEntry{{Swatch: SwatchNone, Text: "PK = Primary Key"}}})
	orig, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	replayed, err := Replay(orig.Canvas(), orig.Calls())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !reflect.DeepEqual(orig, replayed) {
		t.Errorf("replayed scene differs from original")
	}
	if err := orig.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestBuilderDefaults(t *testing.T) {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	b.SetLegend(Legend{})
	b.SetTitle(Title{Text: "x"})
	s, _ := b.Build()
	l, _ := s.Legend()
	if l.Spacing != DefaultLegendSpacing {
		t.Errorf("legend spacing = %v, want %v", l.Spacing, DefaultLegendSpacing)
	}
	ti, _ := s.Title()
	if ti.FontSize != DefaultTitleSize {
		t.Errorf("title size = %v, want %v", ti.FontSize, DefaultTitleSize)
	}
}

func TestInvalidCanvas(t *testing.T) {
	b := NewBuilder(geom.Size{W: 0, H: 10})
	if _, err := b.Build(); !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("Build error = %v, want %s", err, errors.ErrCodeInvalidDimensions)
	}
}

func TestDefineStyleErrors(t *testing.T) {
	tests := []struct {
		name  string
		style Style
	}{
		{"alpha above one", Style{FillAlpha: 1.5}},
		{"negative width", Style{LineWidth: -1}},
		{"negative font", Style{FontSize: -2}},
	}
	for _, tt := range tests {
		b := NewBuilder(geom.Size{W: 1, H: 1})
		if err := b.DefineStyle("s", tt.style); !errors.Is(err, errors.ErrCodeInvalidStyle) {
			t.Errorf("%s: DefineStyle error = %v, want %s", tt.name, err, errors.ErrCodeInvalidStyle)
		}
	}

	b := NewBuilder(geom.Size{W: 1, H: 1})
	_ = b.DefineStyle("s", Style{})
	if err := b.DefineStyle("s", Style{}); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("redefine error = %v, want %s", err, errors.ErrCodeInvalidStyle)
	}
}

func TestStyleOver(t *testing.T) {
	base := Style{Stroke: MustColor("#000000"), LineWidth: 1.5, FontSize: 10, Weight: WeightBold}
	got := Style{Stroke: MustColor("#E74C3C"), Dashed: true}.Over(base)
	if got.Stroke.Hex() != "#e74c3c" {
		t.Errorf("Stroke = %s, want #e74c3c", got.Stroke.Hex())
	}
	if got.LineWidth != 1.5 || got.FontSize != 10 || got.Weight != WeightBold || !got.Dashed {
		t.Errorf("Over() = %+v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#3498DB", "#3498db", false},
		{"white", "#ffffff", false},
		{"#fff", "#ffffff", false},
		{"", "", false},
		{"blue-ish", "", true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if c.Hex() != tt.want {
			t.Errorf("ParseColor(%q) = %q, want %q", tt.in, c.Hex(), tt.want)
		}
	}
}

func TestFieldDisplay(t *testing.T) {
	if got := PK("id").Display(); got != "PK: id" {
		t.Errorf("PK Display = %q", got)
	}
	if got := FK("user_id").Display(); got != "FK: user_id" {
		t.Errorf("FK Display = %q", got)
	}
	if got := F("title").Display(); got != "title" {
		t.Errorf("plain Display = %q", got)
	}
}

func mustAdd(t *testing.T, b *Builder, sh Shape) {
	t.Helper()
	if err := b.AddShape(sh); err != nil {
		t.Fatalf("AddShape(%s): %v", sh.ID, err)
	}
}

func ExampleTableHeight() {
	fmt.Printf("%.2f\n", TableHeight(5))
	// Output: 2.15
}

func ExampleBuilder() {
	b := NewBuilder(geom.Size{W: 10, H: 10})
	_ = b.AddShape(Shape{ID: "A", Kind: Process, Center: geom.Pt(2, 5), Size: geom.Size{W: 2, H: 1}})
	_ = b.AddShape(Shape{ID: "A", Kind: Process, Center: geom.Pt(6, 5), Size: geom.Size{W: 2, H: 1}})
	_, err := b.Build()
	fmt.Println(errors.GetCode(err))
	// Output: DUPLICATE_SHAPE_ID
}
