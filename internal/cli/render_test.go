package cli

import (
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"png,svg,json", []string{"png", "svg", "json"}},
		{" png , svg ,", []string{"png", "svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptionsMergeFlagsOverConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg.OutputDir = "docs/images"
	c.cfg.Scale = 150

	var f renderFlags
	cmd := &cobra.Command{}
	f.register(cmd, "")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "")
	if err := cmd.Flags().Parse([]string{"-f", "svg,json", "--dpi", "72", "-j", "8"}); err != nil {
		t.Fatal(err)
	}

	opts, err := c.options(cmd, &f)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	want := pipeline.Options{
		Formats:   []string{"svg", "json"},
		Scale:     150,
		DPI:       72,
		Workers:   8,
		OutputDir: "docs/images",
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("options = %+v, want %+v", opts, want)
	}
}

func TestOptionsRejectNonPositive(t *testing.T) {
	c := New(io.Discard, LogInfo)
	var f renderFlags
	cmd := &cobra.Command{}
	f.register(cmd, "")
	if err := cmd.Flags().Parse([]string{"--dpi=-3"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.options(cmd, &f); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("options(--dpi -3) = %v, want INVALID_INPUT", err)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "diagrams/erd.scene.json", "diagrams/erd"},
		{"", "erd.json", "erd"},
		{"", "erd.txt", "erd"},
		{"out/erd.png", "erd.json", "out/erd"},
		{"out/erd", "erd.json", "out/erd"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("x.png", "erd.json", "png", false); got != "x.png" {
		t.Errorf("single format output = %q, want x.png", got)
	}
	if got := outputPath("x.png", "erd.json", "svg", true); got != "x.svg" {
		t.Errorf("multi format output = %q, want x.svg", got)
	}
	if got := outputPath("", "erd.scene.json", "png", false); got != "erd.png" {
		t.Errorf("derived output = %q, want erd.png", got)
	}
}

func TestReportResults(t *testing.T) {
	results := []pipeline.JobResult{
		{Name: "erd", Paths: []string{"erd.png"}, Cached: true, Duration: time.Millisecond},
		{Name: "mvvm", Err: errors.New(errors.ErrCodeDuplicateShapeID, "duplicate shape id \"x\"")},
	}
	var out strings.Builder
	err := reportResults(&out, results)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("reportResults error = %v, want 1 of 2 failed", err)
	}
	for _, want := range []string{"erd", "mvvm", "cached", "duplicate shape id"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table missing %q:\n%s", want, out.String())
		}
	}
}
