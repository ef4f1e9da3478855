package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/hittest"
	"github.com/matzehuels/chartgrid/pkg/option"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
)

const (
	defaultStep = 10.0
	resizeStep  = 40.0
	minSize     = 80.0
)

var (
	inspectDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	inspectErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	inspectFrameStyle = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// inspectCommand creates the inspect command for the interactive TUI.
func (c *CLI) inspectCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "inspect [chart.toml]",
		Short: "Explore a chart layout interactively",
		Long: `Explore a chart layout interactively.

Move the pointer with the arrow keys (or hjkl, or the mouse) and watch the
hit-test resolve it to a category and the values of every series. [ and ]
shrink or grow the chart width, { and } its height; each resize refreshes
the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := loadChart(args[0], input)
			if err != nil {
				return err
			}
			m, err := NewInspectModel(cmd.Context(), chart)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input-format", "", "option format when reading stdin: toml (default), json")
	return cmd
}

// =============================================================================
// InspectModel - Interactive hit-testing
// =============================================================================

// InspectModel is the bubbletea model of the inspect command. It owns a
// grid that is refreshed on every resize and hit-tests the committed state
// whenever the pointer moves.
type InspectModel struct {
	ctx   context.Context
	chart *option.Chart
	grid  *grid.Grid

	// Width and Height are the current chart size in pixels.
	Width, Height float64
	// X and Y are the pointer in chart pixels.
	X, Y float64
	Step float64

	Results []hittest.Result
	Err     error

	table        table.Model
	termW, termH int
}

// NewInspectModel builds the first layout of chart and places the pointer
// in the centre of the grid rectangle.
func NewInspectModel(ctx context.Context, chart *option.Chart) (InspectModel, error) {
	m := InspectModel{
		ctx:   ctx,
		chart: chart,
		grid:  grid.New(),
		Step:  defaultStep,
		table: table.New(table.WithFocused(true), table.WithHeight(10)),
	}
	m.table.SetColumns([]table.Column{
		{Title: "Cartesian", Width: 10},
		{Title: "Category", Width: 14},
		{Title: "Series", Width: 16},
		{Title: "Value", Width: 10},
		{Title: "Stacked", Width: 10},
	})

	if err := m.grid.Refresh(chart); err != nil {
		return InspectModel{}, err
	}
	s := m.grid.Snapshot()
	m.Width, m.Height = s.Option().Width, s.Option().Height
	r := s.Rect()
	m.X, m.Y = r.X+r.Width/2, r.Y+r.Height/2
	m.pick()
	return m, nil
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.X -= m.Step
		case "right", "l":
			m.X += m.Step
		case "up", "k":
			m.Y -= m.Step
		case "down", "j":
			m.Y += m.Step
		case "+":
			m.Step *= 2
		case "-":
			m.Step = max(1, m.Step/2)
		case "[":
			m.resize(-resizeStep, 0)
		case "]":
			m.resize(resizeStep, 0)
		case "{":
			m.resize(0, -resizeStep)
		case "}":
			m.resize(0, resizeStep)
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		m.clampPointer()
		m.pick()
	case tea.MouseMsg:
		if m.termW == 0 || m.termH == 0 {
			return m, nil
		}
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			return m, nil
		}
		m.X = float64(msg.X) / float64(m.termW) * m.Width
		m.Y = float64(msg.Y) / float64(m.termH) * m.Height
		m.pick()
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.table.SetHeight(max(3, msg.Height-10))
	}
	return m, nil
}

// resize changes the chart size and refreshes the grid. A failed refresh
// keeps the previous state.
func (m *InspectModel) resize(dw, dh float64) {
	w, h := max(minSize, m.Width+dw), max(minSize, m.Height+dh)
	next := *m.chart
	next.Width, next.Height = w, h
	if err := m.grid.Refresh(&next); err != nil {
		m.Err = err
		return
	}
	m.Width, m.Height, m.Err = w, h, nil
}

func (m *InspectModel) clampPointer() {
	m.X = min(max(m.X, 0), m.Width)
	m.Y = min(max(m.Y, 0), m.Height)
}

// pick hit-tests the pointer against the committed state and rebuilds the
// table rows.
func (m *InspectModel) pick() {
	s := m.grid.Snapshot()
	if s == nil {
		return
	}
	results, err := pipeline.PickState(m.ctx, s, "", m.X, m.Y)
	if err != nil {
		m.Err = err
		return
	}
	m.Results = results

	var rows []table.Row
	for _, res := range results {
		if res.Index < 0 {
			rows = append(rows, table.Row{res.Cartesian, "-", "-",
				formatValue(res.Data[0]), formatValue(res.Data[1])})
			continue
		}
		for _, it := range res.Items {
			name := it.Name
			if name == "" {
				name = fmt.Sprintf("series %d", it.Series)
			}
			value, stacked := formatValue(it.Value), formatValue(it.Stacked)
			if it.Missing {
				value, stacked = "-", "-"
			}
			rows = append(rows, table.Row{res.Cartesian, res.Category, name, value, stacked})
		}
	}
	m.table.SetRows(rows)
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Chart"))
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render("←/→/↑/↓ move  +/- step  [ ] width  { } height  q quit"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		inspectDimStyle.Render("pointer"), StyleValue.Render(fmt.Sprintf("(%.0f, %.0f)", m.X, m.Y)),
		inspectDimStyle.Render("chart"), StyleValue.Render(fmt.Sprintf("%.0f×%.0f", m.Width, m.Height)),
		inspectDimStyle.Render("step"), StyleNumber.Render(fmt.Sprintf("%.0f", m.Step)))

	if s := m.grid.Snapshot(); s != nil {
		r := s.Rect()
		fmt.Fprintf(&b, "%s %s\n", inspectDimStyle.Render("grid"),
			StyleValue.Render(fmt.Sprintf("x=%.1f y=%.1f w=%.1f h=%.1f", r.X, r.Y, r.Width, r.Height)))
	}
	for _, res := range m.Results {
		if !res.Inside {
			b.WriteString(StyleWarning.Render("pointer outside the grid, clamped"))
			b.WriteString("\n")
			break
		}
	}
	if m.Err != nil {
		b.WriteString(inspectErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(inspectFrameStyle.Render(m.table.View()))
	return b.String()
}
