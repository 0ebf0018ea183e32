package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schematic/pkg/cache"
	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func sampleScene() (*scene.Scene, error) {
	b := scene.NewBuilder(geom.Size{W: 6, H: 4})
	b.AddShape(scene.Shape{ID: "start", Kind: scene.Terminator, Center: geom.Pt(1.5, 2), Size: geom.Size{W: 1.6, H: 0.8}, Label: "Start"})
	b.AddShape(scene.Shape{ID: "work", Kind: scene.Process, Center: geom.Pt(4.5, 2), Size: geom.Size{W: 1.6, H: 0.8}, Label: "Work"})
	b.AddConnector(scene.Connector{
		From:  scene.End{Shape: "start", Anchor: geom.Right},
		To:    scene.End{Shape: "work", Anchor: geom.Left},
		Label: "go",
	})
	return b.Build()
}

func mustScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := sampleScene()
	if err != nil {
		t.Fatalf("sampleScene: %v", err)
	}
	return s
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != "png" {
		t.Errorf("Formats = %v, want [png]", o.Formats)
	}
	if o.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", o.Workers, DefaultWorkers)
	}
	if o.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", o.OutputDir, DefaultOutputDir)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"scale too large", Options{Scale: MaxScale + 1}, errors.ErrCodeInvalidInput},
		{"negative dpi", Options{DPI: -3}, errors.ErrCodeInvalidInput},
		{"negative workers", Options{Workers: -2}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 120, DPI: 96}
	tests := []struct {
		format string
		want   cache.ArtifactKeyOpts
	}{
		{"png", cache.ArtifactKeyOpts{Format: "png", Scale: 120, DPI: 96}},
		{"svg", cache.ArtifactKeyOpts{Format: "svg", Scale: 120}},
		{"json", cache.ArtifactKeyOpts{Format: "json"}},
	}
	for _, tt := range tests {
		if got := o.ArtifactKeyOpts(tt.format); got != tt.want {
			t.Errorf("ArtifactKeyOpts(%q) = %+v, want %+v", tt.format, got, tt.want)
		}
	}
}

func TestSceneHashIsStable(t *testing.T) {
	a, err := SceneHash(mustScene(t))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SceneHash(mustScene(t))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("SceneHash differs for equal scenes: %s vs %s", a, b)
	}

	other := scene.NewBuilder(geom.Size{W: 6, H: 4})
	other.AddShape(scene.Shape{ID: "only", Kind: scene.Process, Center: geom.Pt(3, 2), Size: geom.Size{W: 1, H: 1}})
	s, err := other.Build()
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := SceneHash(s); c == a {
		t.Error("SceneHash should differ for different scenes")
	}
}

func TestRenderCachesArtifacts(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	defer r.Close()

	opts := Options{Formats: []string{"png", "svg"}, Scale: 50}
	first, err := r.Render(ctx, "sample", mustScene(t), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(first.CacheInfo.Misses) != 2 || first.CacheInfo.AllHit() {
		t.Errorf("first CacheInfo = %+v, want two misses", first.CacheInfo)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(first.Artifacts["png"]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Errorf("png size = %dx%d, want 300x200", cfg.Width, cfg.Height)
	}
	if !strings.HasPrefix(string(first.Artifacts["svg"]), "<?xml") {
		t.Errorf("svg artifact does not look like SVG: %.40q", first.Artifacts["svg"])
	}

	second, err := r.Render(ctx, "sample", mustScene(t), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !second.CacheInfo.AllHit() {
		t.Errorf("second CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["png"], second.Artifacts["png"]) {
		t.Error("cached png differs from rendered png")
	}

	opts.Refresh = true
	third, err := r.Render(ctx, "sample", mustScene(t), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(third.CacheInfo.Hits) != 0 {
		t.Errorf("Refresh should bypass the cache, got hits %v", third.CacheInfo.Hits)
	}
}

func TestRenderFormat(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	data, cached, err := r.RenderFormat(context.Background(), "sample", mustScene(t), "json", Options{})
	if err != nil {
		t.Fatalf("RenderFormat: %v", err)
	}
	if cached {
		t.Error("NullCache should never report a hit")
	}
	if !bytes.Contains(data, []byte(`"nodes"`)) {
		t.Errorf("json artifact missing nodes: %s", data)
	}
}

func TestRenderNilScene(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Render(context.Background(), "x", nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(nil) = %v, want INVALID_INPUT", err)
	}
}

func TestLayoutLogsOverlapWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(nil, nil, log.NewWithOptions(&buf, log.Options{}))

	b := scene.NewBuilder(geom.Size{W: 10, H: 10})
	b.AddShape(scene.Shape{ID: "a", Kind: scene.Process, Center: geom.Pt(4, 5), Size: geom.Size{W: 2, H: 2}})
	b.AddShape(scene.Shape{ID: "b", Kind: scene.Process, Center: geom.Pt(5, 5.5), Size: geom.Size{W: 2, H: 2}})
	s, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	l, err := r.Layout(context.Background(), "overlap", s)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(l.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(l.Warnings))
	}
	if out := buf.String(); !strings.Contains(out, "WARN") || !strings.Contains(out, "diagram=overlap") {
		t.Errorf("warning not logged:\n%s", out)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")

	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the output file", len(entries))
	}
}

func TestWriteFileRejectsTraversal(t *testing.T) {
	if err := WriteFile("../escape.png", nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteFile(../escape.png) = %v, want INVALID_PATH", err)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(nil, nil, quietLogger())

	broken := func() (*scene.Scene, error) {
		b := scene.NewBuilder(geom.Size{W: 4, H: 4})
		b.AddShape(scene.Shape{ID: "a", Kind: scene.Process, Center: geom.Pt(2, 2), Size: geom.Size{W: 1, H: 1}})
		b.AddShape(scene.Shape{ID: "a", Kind: scene.Process, Center: geom.Pt(3, 3), Size: geom.Size{W: 1, H: 1}})
		return b.Build()
	}
	jobs := []Job{
		{Name: "one", Build: sampleScene},
		{Name: "broken", Build: broken},
		{Name: "two", Build: sampleScene},
		{Name: "Bad Name", Build: sampleScene},
	}

	results := r.RunAll(context.Background(), jobs, Options{
		Formats:   []string{"png", "json"},
		Scale:     20,
		Workers:   2,
		OutputDir: dir,
	})

	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(jobs))
	}
	for i, res := range results {
		if res.Name != jobs[i].Name {
			t.Errorf("results[%d].Name = %q, want %q", i, res.Name, jobs[i].Name)
		}
	}
	if got := Failed(results); got != 2 {
		t.Errorf("Failed = %d, want 2", got)
	}
	if !errors.Is(results[1].Err, errors.ErrCodeDuplicateShapeID) {
		t.Errorf("broken job error = %v, want DUPLICATE_SHAPE_ID", results[1].Err)
	}
	if !errors.Is(results[3].Err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad name error = %v, want INVALID_INPUT", results[3].Err)
	}

	for _, res := range []JobResult{results[0], results[2]} {
		if !res.OK() {
			t.Errorf("%s failed: %v", res.Name, res.Err)
			continue
		}
		want := []string{filepath.Join(dir, res.Name+".png"), filepath.Join(dir, res.Name+".json")}
		if len(res.Paths) != len(want) {
			t.Fatalf("%s Paths = %v, want %v", res.Name, res.Paths, want)
		}
		for i, p := range want {
			if res.Paths[i] != p {
				t.Errorf("%s Paths[%d] = %q, want %q", res.Name, i, res.Paths[i], p)
			}
			if _, err := os.Stat(p); err != nil {
				t.Errorf("missing output %s: %v", p, err)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.png")); !os.IsNotExist(err) {
		t.Error("failed job should not write files")
	}
}

func TestRunAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, quietLogger())
	results := r.RunAll(ctx, []Job{{Name: "one", Build: sampleScene}}, Options{OutputDir: t.TempDir()})
	if results[0].Err != context.Canceled {
		t.Errorf("Err = %v, want context.Canceled", results[0].Err)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("erd", "png"); got != "erd.png" {
		t.Errorf("FileName = %q, want %q", got, "erd.png")
	}
}
