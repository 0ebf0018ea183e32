package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schematic/pkg/diagrams/catalog"
	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/pipeline"
)

// renderFlags holds the output flags shared by render, all and render-file.
// Flags left unset fall back to the config file.
type renderFlags struct {
	output  string
	formats string
	scale   float64
	dpi     float64
	workers int
	noCache bool
	refresh bool
}

func (f *renderFlags) register(cmd *cobra.Command, outputHelp string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", outputHelp)
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): png, svg, json (comma-separated)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per grid unit")
	cmd.Flags().Float64Var(&f.dpi, "dpi", 0, "resolution recorded in PNG metadata")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

// options merges the config file with the flags the user set.
func (c *CLI) options(cmd *cobra.Command, f *renderFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:   c.cfg.Formats,
		Scale:     c.cfg.Scale,
		DPI:       c.cfg.DPI,
		Workers:   c.cfg.Workers,
		OutputDir: c.cfg.OutputDir,
		Refresh:   f.refresh,
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.OutputDir = f.output
	}
	if flags.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if flags.Changed("scale") {
		opts.Scale = f.scale
	}
	if flags.Changed("dpi") {
		opts.DPI = f.dpi
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	if flags.Changed("scale") && !(f.scale > 0) {
		return opts, errors.New(errors.ErrCodeInvalidInput, "--scale must be positive, got %v", f.scale)
	}
	if flags.Changed("dpi") && !(f.dpi > 0) {
		return opts, errors.New(errors.ErrCodeInvalidInput, "--dpi must be positive, got %v", f.dpi)
	}
	return opts, opts.ValidateAndSetDefaults()
}

// parseFormats splits a comma-separated format list.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// jobs wraps catalog diagrams as pipeline jobs.
func jobs(ds []*catalog.Diagram) []pipeline.Job {
	out := make([]pipeline.Job, len(ds))
	for i, d := range ds {
		out[i] = pipeline.Job{Name: d.Name, Build: d.Build}
	}
	return out
}

// =============================================================================
// render
// =============================================================================

func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [name...]",
		Short: "Render catalog diagrams one after another",
		Long: `Render catalog diagrams to the output directory as <name>.<format>.
Without names, the diagrams listed in the config file are rendered (all of
them by default).`,
		ValidArgsFunction: completeDiagramNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f)
			if err != nil {
				return err
			}
			ds, err := c.selectDiagrams(args)
			if err != nil {
				return err
			}
			runner := c.newRunner(cmd.Context(), f.noCache, nil)
			defer runner.Close()
			return runRender(cmd.Context(), cmd.OutOrStdout(), runner, ds, opts)
		},
	}
	f.register(cmd, "output directory")
	return cmd
}

func (c *CLI) selectDiagrams(names []string) ([]*catalog.Diagram, error) {
	if len(names) == 0 {
		names = c.cfg.Diagrams
	}
	return catalog.Select(names)
}

// runRender renders ds in order and stops at the first failure.
func runRender(ctx context.Context, w io.Writer, runner *pipeline.Runner, ds []*catalog.Diagram, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	for _, d := range ds {
		s, err := d.Build()
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		res, err := runner.Render(ctx, d.Name, s, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}

		printSuccess(w, "%s", d.Name)
		printStats(w, res.Stats.Shapes, res.Stats.Warnings, res.CacheInfo.AllHit())
		for _, format := range opts.Formats {
			path := filepath.Join(opts.OutputDir, pipeline.FileName(d.Name, format))
			if err := pipeline.WriteFile(path, res.Artifacts[format]); err != nil {
				return err
			}
			printFile(w, path)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d diagram(s)", len(ds)))
	return nil
}

// =============================================================================
// all
// =============================================================================

func (c *CLI) allCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Render every configured diagram in parallel",
		Long: `Render every diagram listed in the config file (all catalog diagrams by
default) in parallel and print a summary table. One failing diagram does not
stop the others; the command exits non-zero if any failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f)
			if err != nil {
				return err
			}
			ds, err := c.selectDiagrams(nil)
			if err != nil {
				return err
			}
			runner := c.newRunner(cmd.Context(), f.noCache, nil)
			defer runner.Close()

			spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "")
			spin.SetMessage("Rendering %d diagrams with %d workers", len(ds), opts.Workers)
			spin.Start()
			results := runner.RunAll(cmd.Context(), jobs(ds), opts)
			spin.Stop()

			err = reportResults(cmd.OutOrStdout(), results)
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		},
	}
	f.register(cmd, "output directory")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "diagrams rendered at once")
	return cmd
}

// reportResults prints the summary table and returns an error when any
// job failed.
func reportResults(w io.Writer, results []pipeline.JobResult) error {
	fmt.Fprintln(w, resultsTable(results))
	failed := pipeline.Failed(results)
	if failed > 0 {
		printError(w, "%d of %d diagrams failed", failed, len(results))
		return fmt.Errorf("%d of %d diagrams failed", failed, len(results))
	}
	files := 0
	for _, r := range results {
		files += len(r.Paths)
	}
	printSuccess(w, "Rendered %d diagrams (%d files)", len(results), files)
	return nil
}

// =============================================================================
// validate
// =============================================================================

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "validate [name...]",
		Short:             "Build and lay out diagrams without rendering",
		ValidArgsFunction: completeDiagramNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.selectDiagrams(args)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			return runValidate(cmd.Context(), cmd.OutOrStdout(), runner, ds)
		},
	}
}

// runValidate checks every diagram and reports all failures, not just the
// first.
func runValidate(ctx context.Context, w io.Writer, runner *pipeline.Runner, ds []*catalog.Diagram) error {
	failed := 0
	for _, d := range ds {
		if err := validateOne(ctx, w, runner, d); err != nil {
			failed++
			printError(w, "%s: %s", d.Name, errors.UserMessage(err))
			printDetail(w, "code %s", errors.GetCode(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d diagrams invalid", failed, len(ds))
	}
	return nil
}

func validateOne(ctx context.Context, w io.Writer, runner *pipeline.Runner, d *catalog.Diagram) error {
	s, err := d.Build()
	if err != nil {
		return err
	}
	l, err := runner.Layout(ctx, d.Name, s)
	if err != nil {
		return err
	}
	if len(l.Warnings) == 0 {
		printSuccess(w, "%s: %d shapes, %d connectors", d.Name, len(s.Shapes()), len(s.Connectors()))
	}
	for _, wn := range l.Warnings {
		printWarning(w, "%s: %s", d.Name, wn.Message)
	}
	return nil
}

// completeDiagramNames completes catalog names for positional arguments.
func completeDiagramNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
}
