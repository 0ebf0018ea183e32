// Package pipeline runs scenes through layout and rendering with caching.
//
// This package is the single place where the CLI, the HTTP server and the
// run-all driver turn a [scene.Scene] into files or response bodies. It keeps
// their behavior identical: same defaults, same cache keys, same logging.
//
// # Architecture
//
// A render goes through two stages:
//
//  1. Layout: validate the scene and freeze absolute geometry ([layout.Build])
//  2. Render: encode the frozen layout as PNG, SVG or JSON ([sink.Render])
//
// Artifacts are cached under the content hash of the scene's builder calls
// plus the output options, so an unchanged scene is never drawn twice.
//
// # Usage
//
// Render one scene:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Render(ctx, "erd", s, pipeline.Options{Formats: []string{"png"}})
//	png := res.Artifacts["png"]
//
// Render a batch to disk in parallel:
//
//	results := runner.RunAll(ctx, jobs, pipeline.Options{OutputDir: "docs/images", Workers: 4})
//
// [scene.Scene]: github.com/matzehuels/schematic/pkg/scene.Scene
// [layout.Build]: github.com/matzehuels/schematic/pkg/layout.Build
// [sink.Render]: github.com/matzehuels/schematic/pkg/render/sink.Render
package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/schematic/pkg/cache"
	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/layout"
	"github.com/matzehuels/schematic/pkg/render/sink"
	"github.com/matzehuels/schematic/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server and Batch
// =============================================================================

const (
	// DefaultWorkers bounds how many scenes RunAll renders at once.
	DefaultWorkers = 4

	// DefaultOutputDir is where RunAll writes files when no directory is set.
	DefaultOutputDir = "."

	// MaxScale is the largest accepted scale in pixels per grid unit.
	// The rasterizer also caps the total pixel count.
	MaxScale = 1000.0
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{string(sink.FormatPNG)}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a render. Zero values select the defaults.
type Options struct {
	Formats []string `json:"formats,omitempty"`

	// Scale is pixels per grid unit. Zero means the per-format default
	// (150 for PNG, 100 for SVG).
	Scale float64 `json:"scale,omitempty"`

	// DPI is written into PNG metadata only.
	DPI float64 `json:"dpi,omitempty"`

	// Batch options
	Workers   int    `json:"workers,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`

	// Refresh skips cache lookups but still stores fresh artifacts.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills zero fields and rejects invalid values.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	return o.Validate()
}

// Validate checks the options without changing them.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be at most %v, got %v", MaxScale, o.Scale)
	}
	if o.DPI < 0 || math.IsNaN(o.DPI) || math.IsInf(o.DPI, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", o.DPI)
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be at least 1, got %d", o.Workers)
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for one format. Options
// that do not affect a format's bytes are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch sink.Format(format) {
	case sink.FormatPNG:
		k.Scale, k.DPI = o.Scale, o.DPI
	case sink.FormatSVG:
		k.Scale = o.Scale
	}
	return k
}

func (o *Options) sinkOptions() sink.Options {
	return sink.Options{Scale: o.Scale, DPI: o.DPI}
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	_, err := sink.ParseFormat(format)
	return err
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result holds the outputs of one render.
type Result struct {
	// SceneHash is the content hash the artifacts are cached under.
	SceneHash string

	// Layout is the frozen geometry the artifacts were drawn from.
	Layout layout.Layout

	// Artifacts holds encoded outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing information.
type Stats struct {
	Shapes     int
	Warnings   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits   []string // formats served from the cache
	Misses []string // formats rendered fresh
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// Job is one named scene for RunAll. Build is called on a worker
// goroutine, so each job owns its scene.
type Job struct {
	Name  string
	Build func() (*scene.Scene, error)
}

// JobResult reports what happened to one job.
type JobResult struct {
	Name     string
	Paths    []string // files written, in Options.Formats order
	Err      error
	Cached   bool // every artifact came from the cache
	Warnings int
	Duration time.Duration
}

// OK reports whether the job succeeded.
func (r JobResult) OK() bool { return r.Err == nil }

// Failed counts failed jobs.
func Failed(results []JobResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// FileName returns the output file name for a diagram and format.
func FileName(name, format string) string {
	return fmt.Sprintf("%s.%s", name, format)
}
