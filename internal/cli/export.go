package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schematic/pkg/diagrams/catalog"
	"github.com/matzehuels/schematic/pkg/errors"
	sceneio "github.com/matzehuels/schematic/pkg/io"
	"github.com/matzehuels/schematic/pkg/pipeline"
)

// sceneExt is the suffix export gives scene files.
const sceneExt = ".scene.json"

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "export <name>",
		Short:             "Write a catalog diagram as a JSON scene file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			s, err := d.Build()
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = d.Name + sceneExt
			}
			if err := sceneio.ExportScene(path, s, d.Name); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported %s", d.Name)
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>"+sceneExt+")")
	return cmd
}

func (c *CLI) renderFileCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render-file <scene.json>",
		Short: "Render a JSON scene file",
		Long: `Render a scene file written by "schematic export" or by hand. With one
format, -o names the output file; with several it is the base path and each
format appends its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f)
			if err != nil {
				return err
			}
			if f.output != "" {
				if err := errors.ValidateOutputPath(f.output); err != nil {
					return err
				}
			}
			input := args[0]
			file, err := sceneio.Open(input)
			if err != nil {
				return err
			}
			s, err := file.Scene()
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			name := file.Name
			if name == "" {
				name = filepath.Base(basePath("", input))
			}

			runner := c.newRunner(cmd.Context(), f.noCache, nil)
			defer runner.Close()
			res, err := runner.Render(cmd.Context(), name, s, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "%s", name)
			printStats(w, res.Stats.Shapes, res.Stats.Warnings, res.CacheInfo.AllHit())
			for _, format := range opts.Formats {
				path := outputPath(f.output, input, format, len(opts.Formats) > 1)
				if err := pipeline.WriteFile(path, res.Artifacts[format]); err != nil {
					return err
				}
				printFile(w, path)
			}
			return nil
		},
	}
	f.register(cmd, "output file (one format) or base path (several)")
	return cmd
}

// basePath derives the base output path from the output and input paths.
// An empty output strips the scene file extension from input; an output
// with a known format extension loses it.
func basePath(output, input string) string {
	if output == "" {
		for _, ext := range []string{sceneExt, ".json"} {
			if strings.HasSuffix(input, ext) {
				return strings.TrimSuffix(input, ext)
			}
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath is the file one format of render-file is written to.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}
