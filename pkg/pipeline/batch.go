package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/schematic/pkg/errors"
)

// RunAll renders every job into opts.OutputDir, at most opts.Workers at a
// time. Results come back in job order. A failing job is reported in its
// JobResult and never cancels the others; only ctx does.
func (r *Runner) RunAll(ctx context.Context, jobs []Job, opts Options) []JobResult {
	results := make([]JobResult, len(jobs))
	if err := opts.ValidateAndSetDefaults(); err != nil {
		for i, j := range jobs {
			results[i] = JobResult{Name: j.Name, Err: err}
		}
		return results
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])
	logger.Info("rendering diagrams", "count", len(jobs), "workers", opts.Workers, "dir", opts.OutputDir)

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = r.runJob(ctx, job, opts)
			if err := results[i].Err; err != nil {
				logger.Error("render failed", "diagram", job.Name, "error", err)
			} else {
				logger.Info("rendered", "diagram", job.Name, "cached", results[i].Cached, "duration", results[i].Duration)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("done", "ok", len(jobs)-Failed(results), "failed", Failed(results))
	return results
}

func (r *Runner) runJob(ctx context.Context, job Job, opts Options) JobResult {
	start := time.Now()
	res := JobResult{Name: job.Name}
	res.Err = r.renderJob(ctx, job, opts, &res)
	res.Duration = time.Since(start)
	return res
}

func (r *Runner) renderJob(ctx context.Context, job Job, opts Options, res *JobResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateDiagramName(job.Name); err != nil {
		return err
	}
	if job.Build == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: no scene builder", job.Name)
	}
	s, err := job.Build()
	if err != nil {
		return err
	}

	out, err := r.Render(ctx, job.Name, s, opts)
	if err != nil {
		return err
	}
	res.Cached = out.CacheInfo.AllHit()
	res.Warnings = out.Stats.Warnings

	// Every format is encoded before the first write.
	for _, format := range opts.Formats {
		path := filepath.Join(opts.OutputDir, FileName(job.Name, format))
		if err := WriteFile(path, out.Artifacts[format]); err != nil {
			return err
		}
		res.Paths = append(res.Paths, path)
	}
	return nil
}
