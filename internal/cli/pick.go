package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/hittest"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
)

// pickCommand creates the pick command for pixel hit-tests.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		x, y      float64
		cartesian string
		input     string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "pick [chart.toml]",
		Short: "Resolve a pixel to the data under it",
		Long: `Resolve a pixel to the data under it.

The pointer is clamped into the grid rectangle and inverted through the axes
of every Cartesian (or only --cartesian, e.g. x0y0). On category charts the
pick snaps to the nearest category and lists each series' value there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), cmd.OutOrStdout(), args[0], input, cartesian, x, y, asJSON)
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "pointer x in pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "pointer y in pixels")
	cmd.Flags().StringVar(&cartesian, "cartesian", "", "only pick on this cartesian (e.g. x0y0)")
	cmd.Flags().StringVar(&input, "input-format", "", "option format when reading stdin: toml (default), json")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, w io.Writer, path, inputFormat, cartesian string, x, y float64, asJSON bool) error {
	chart, err := loadChart(path, inputFormat)
	if err != nil {
		return err
	}

	// Picks need the live grid state, which is never cached.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	results, err := runner.Pick(ctx, chart, cartesian, x, y)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, res := range results {
		fmt.Fprintln(w, renderPick(res))
	}
	return nil
}

// renderPick formats one pick result as a heading and a table of items.
func renderPick(res hittest.Result) string {
	heading := StyleTitle.Render(res.Cartesian) + " " +
		StyleDim.Render(fmt.Sprintf("(%.1f, %.1f)", res.X, res.Y))
	if !res.Inside {
		heading += " " + StyleWarning.Render("clamped")
	}
	if res.Index < 0 {
		return heading + "\n  " + StyleValue.Render(fmt.Sprintf("x=%s y=%s", formatValue(res.Data[0]), formatValue(res.Data[1])))
	}
	heading += "\n  " + StyleDim.Render("category") + " " + StyleHighlight.Render(res.Category) +
		StyleDim.Render(fmt.Sprintf(" #%d", res.Index))

	rows := make([][]string, 0, len(res.Items))
	for _, it := range res.Items {
		name := it.Name
		if name == "" {
			name = fmt.Sprintf("series %d", it.Series)
		}
		value, stacked := formatValue(it.Value), formatValue(it.Stacked)
		if it.Missing {
			value, stacked = "-", "-"
		}
		rows = append(rows, []string{name, value, stacked})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Series", "Value", "Stacked").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorWhite)
			case row < len(res.Items) && res.Items[row].Missing:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorCyan)
		})

	return heading + "\n" + t.Render()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
