package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schematic/internal/server"
	"github.com/matzehuels/schematic/pkg/cache"
	"github.com/matzehuels/schematic/pkg/pipeline"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and the renderer over HTTP",
		Long: `Serve rendered catalog diagrams and render posted scene files:

  GET  /healthz
  GET  /diagrams
  GET  /diagrams/{name}.{format}?scale=&dpi=
  POST /render/{format}?name=

Stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			runner := c.serveRunner(cmd.Context(), noCache)
			defer runner.Close()

			srv := server.New(server.Config{
				Runner:       runner,
				Logger:       c.Logger,
				Defaults:     pipeline.Options{Scale: c.cfg.Scale, DPI: c.cfg.DPI},
				MaxBodyBytes: c.cfg.Server.MaxBodyBytes,
				ReadTimeout:  c.cfg.Server.ReadTimeout.Duration,
				WriteTimeout: c.cfg.Server.WriteTimeout.Duration,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// serveKeyPrefix keeps server artifacts apart from CLI runs on the same
// cache backend.
const serveKeyPrefix = "serve:"

func (c *CLI) serveRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return c.newRunner(ctx, noCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), serveKeyPrefix))
}
