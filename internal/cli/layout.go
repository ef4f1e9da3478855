package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		formats string
		input   string
		flags   cacheFlags
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [chart.toml]",
		Short: "Compute the layout of a chart option",
		Long: `Compute the layout of a chart option.

The layout command reads a chart option (TOML, or JSON for .json files; "-"
reads stdin) and computes its grid rectangle, axes, stacked values and bar
columns. The result is written as SVG, JSON, or both.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runLayout(cmd.Context(), args[0], input, output, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base name (default: <input>.layout.<format>)")
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatSVG, "output formats: svg, json (comma-separated)")
	cmd.Flags().StringVar(&input, "input-format", "", "option format when reading stdin: toml (default), json")
	cmd.Flags().BoolVar(&opts.Ticks, "ticks", false, "draw axis ticks (svg)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw tick labels (svg)")
	cmd.Flags().BoolVar(&opts.Columns, "columns", false, "outline bar column bands (svg)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	flags.register(cmd)

	return cmd
}

// runLayout loads the chart, runs the pipeline, and writes output.
func (c *CLI) runLayout(ctx context.Context, path, inputFormat, output string, flags cacheFlags, opts pipeline.Options) error {
	chart, err := loadChart(path, inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, chart, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, outputBase(path, output), len(opts.Formats) > 1 || output == "")
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	for _, w := range result.Layout.Warnings {
		printWarning("%s: %s", w.Code, w.Message)
	}
	printNewline()
	if len(result.Layout.Cartesians) > 0 {
		r := result.Layout.Grid
		printNextStep("Inspect", fmt.Sprintf("%s pick %s --x %.0f --y %.0f", appName, path, r.X+r.Width/2, r.Y+r.Height/2))
	}

	return nil
}

// outputBase returns the path artifacts are written to. Without -o the
// input name is reused as <input>.layout; stdin input falls back to "chart".
func outputBase(input, output string) string {
	if output != "" {
		return output
	}
	if input == "-" {
		return "chart.layout"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout"
}

// writeArtifacts writes each artifact to base, adding the format as file
// extension when addExt is set. Paths are returned in format order.
func writeArtifacts(artifacts map[string][]byte, base string, addExt bool) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		p := base
		if addExt {
			p = base + "." + f
		}
		if err := os.WriteFile(p, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
