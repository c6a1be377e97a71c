package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gdiff/pkg/diff"
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// Views of the inspect command.
const (
	viewUnion   = "union"
	viewDiff    = "diff"
	viewReverse = "reverse"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		f     engineFlags
		view  string
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <a.graphml> <b.graphml>",
		Short: "Browse the provenance of every node without writing files",
		Long: `Compare two contact maps in memory and list every node of the result with
its class, provenance and identifier.

Views:
  union    merged graph of a and b (default)
  diff     a painted against b
  reverse  b painted against a`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.runConfig(cmd, &f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner := c.newRunner()
			a, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := runner.Load(ctx, args[1])
			if err != nil {
				return err
			}

			res, err := inspectView(a, b, run, view)
			if err != nil {
				return err
			}
			logWarnings(loggerFromContext(ctx), res.Warnings)

			rows := inspectRows(res)
			if plain {
				fmt.Println(renderInspectTable(rows, allRows(rows), -1))
				return nil
			}
			_, err = tea.NewProgram(NewInspectModel(rows), tea.WithContext(ctx)).Run()
			return err
		},
	}

	f.registerPalette(cmd)
	cmd.Flags().StringVar(&f.ambiguity, "ambiguity", "", "duplicate sibling labels: error or first")
	cmd.Flags().StringVar(&view, "view", viewUnion, "result to show: union, diff or reverse")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one table and exit")

	return cmd
}

func inspectView(a, b *graph.Document, run diff.RunConfig, view string) (*diff.Result, error) {
	switch view {
	case viewUnion:
		return diff.Union(a, b, run.Palette, run.Options)
	case viewDiff:
		return diff.Diff(a, b, run.Palette, run.Options)
	case viewReverse:
		return diff.Diff(b, a, run.Palette.Mirror(), run.Options)
	}
	return nil, gerrors.New(gerrors.ErrCodeInvalidInput, "unknown view %q (want union, diff or reverse)", view)
}

// =============================================================================
// Rows
// =============================================================================

// InspectRow is one node of an inspected result.
type InspectRow struct {
	Path       graph.Path
	ID         string
	Class      graph.Class
	Provenance diff.Provenance
	Fill       string
}

// inspectRows lists the nodes of res in pre-order.
func inspectRows(res *diff.Result) []InspectRow {
	var rows []InspectRow
	for path, n := range res.Document.Walk() {
		prov, _ := res.Provenance(path)
		rows = append(rows, InspectRow{
			Path:       path,
			ID:         n.ID,
			Class:      n.Class,
			Provenance: prov,
			Fill:       n.Style.Fill,
		})
	}
	return rows
}

func allRows(rows []InspectRow) []int {
	idx := make([]int, len(rows))
	for i := range rows {
		idx[i] = i
	}
	return idx
}

// renderInspectTable draws rows[idx...]; cursor is a position in idx, -1
// for none.
func renderInspectTable(rows []InspectRow, idx []int, cursor int) string {
	cells := make([][]string, 0, len(idx))
	for i, r := range idx {
		row := rows[r]
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		depth := len(row.Path) - 1
		label := strings.Repeat("  ", depth) + row.Path[depth]
		cells = append(cells, []string{mark, label, row.Class.String(), row.Provenance.String(), row.ID})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Class", "Provenance", "ID").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			switch col {
			case 3:
				fill := rows[idx[row]].Fill
				return base.Padding(0, 1).Background(lipgloss.Color(fill)).Foreground(swatchText(fill))
			case 2, 4:
				base = base.Foreground(colorGray)
			}
			if row == cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	return t.Render()
}

// =============================================================================
// InspectModel - Interactive result browser
// =============================================================================

// filterAll shows every row; other filter values are a diff.Provenance.
const filterAll = -1

// InspectModel is the bubbletea model for browsing a result.
type InspectModel struct {
	Rows   []InspectRow
	Filter int
	Cursor int
	Offset int
	Height int

	visible []int
}

// NewInspectModel creates a browser over rows showing every row.
func NewInspectModel(rows []InspectRow) InspectModel {
	m := InspectModel{Rows: rows, Filter: filterAll, Height: 15}
	m.refilter()
	return m
}

func (m *InspectModel) refilter() {
	m.visible = make([]int, 0, len(m.Rows))
	for i, r := range m.Rows {
		if m.Filter == filterAll || int(r.Provenance) == m.Filter {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
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
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "f":
			m.Filter++
			if m.Filter > int(diff.Intersect) {
				m.Filter = filterAll
			}
			m.refilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("filter: " + m.filterName()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  tab filter  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	b.WriteString(renderInspectTable(m.Rows, m.visible[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")

	pos := 0
	if len(m.visible) > 0 {
		pos = m.Cursor + 1
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  %s", pos, len(m.visible), m.summary())))

	return b.String()
}

func (m InspectModel) filterName() string {
	if m.Filter == filterAll {
		return "all"
	}
	return diff.Provenance(m.Filter).String()
}

// summary counts all rows per provenance.
func (m InspectModel) summary() string {
	var counts [3]int
	for _, r := range m.Rows {
		counts[r.Provenance]++
	}
	return fmt.Sprintf("%d source-only · %d other-only · %d shared",
		counts[diff.SourceOnly], counts[diff.OtherOnly], counts[diff.Intersect])
}
