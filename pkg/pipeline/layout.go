package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/schematic/pkg/layout"
	"github.com/matzehuels/schematic/pkg/observability"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Layout validates s and freezes its geometry. Overlap warnings are logged
// and returned in the layout; they never fail the call.
func (r *Runner) Layout(ctx context.Context, name string, s *scene.Scene, opts ...layout.Option) (layout.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, name, len(s.Shapes()))

	start := time.Now()
	l, err := layout.Build(s, opts...)
	hooks.OnLayoutComplete(ctx, name, len(l.Warnings), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, err
	}

	for _, w := range l.Warnings {
		r.Logger.Warn(w.Message, "diagram", name, "code", w.Code, "shapes", w.Shapes)
	}
	return l, nil
}
