package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schematic/pkg/cache"
	"github.com/matzehuels/schematic/pkg/errors"
	sceneio "github.com/matzehuels/schematic/pkg/io"
	"github.com/matzehuels/schematic/pkg/observability"
	"github.com/matzehuels/schematic/pkg/render/sink"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds how long stored artifacts live; zero means cache.ArtifactTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render lays out s and encodes it in every requested format. Formats
// already in the cache are served from it; the rest are rendered and stored.
func (r *Runner) Render(ctx context.Context, name string, s *scene.Scene, opts Options) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: nil scene", name)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := SceneHash(s)
	if err != nil {
		return nil, err
	}
	res := &Result{SceneHash: hash, Artifacts: make(map[string][]byte, len(opts.Formats))}

	// Layout always runs: it re-validates the scene and reports warnings
	// even when every artifact is cached.
	start := time.Now()
	l, err := r.Layout(ctx, name, s)
	if err != nil {
		return nil, err
	}
	res.Layout = l
	res.Stats.Shapes = len(l.Nodes)
	res.Stats.Warnings = len(l.Warnings)
	res.Stats.LayoutTime = time.Since(start)

	start = time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, ok := r.lookup(ctx, key, opts.Refresh); ok {
			res.Artifacts[format] = data
			res.CacheInfo.Hits = append(res.CacheInfo.Hits, format)
			continue
		}

		data, err := r.encode(ctx, name, l, sink.Format(format), opts)
		if err != nil {
			return nil, err
		}
		res.Artifacts[format] = data
		res.CacheInfo.Misses = append(res.CacheInfo.Misses, format)
		r.store(ctx, key, data)
	}
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered",
		"diagram", name,
		"formats", opts.Formats,
		"cached", len(res.CacheInfo.Hits),
		"duration", res.Stats.LayoutTime+res.Stats.RenderTime)
	return res, nil
}

// RenderFormat renders a single format and reports whether it was cached.
func (r *Runner) RenderFormat(ctx context.Context, name string, s *scene.Scene, format string, opts Options) ([]byte, bool, error) {
	opts.Formats = []string{format}
	res, err := r.Render(ctx, name, s, opts)
	if err != nil {
		return nil, false, err
	}
	return res.Artifacts[format], res.CacheInfo.AllHit(), nil
}

// lookup reads key from the cache. Backend errors count as misses: the
// cache is an optimization and never fails a render.
func (r *Runner) lookup(ctx context.Context, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.ArtifactTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// SceneHash returns the content hash of s. Two scenes hash equally exactly
// when they replay from the same builder calls on the same canvas.
func SceneHash(s *scene.Scene) (string, error) {
	h, err := cache.HashJSON(struct {
		Engine int          `json:"engine"`
		File   sceneio.File `json:"file"`
	}{sink.LayoutVersion, sceneio.NewFile(s, "")})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene")
	}
	return h, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
