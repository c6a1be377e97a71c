package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gdiff/pkg/diff"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	var f engineFlags

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the effective palette as colour swatches",
		Long: `Show the palette a run would use, after the config file and any
--source-only, --other-only or --intersect flags are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.runConfig(cmd, &f)
			if err != nil {
				return err
			}
			fmt.Println(renderPalette(run.Palette))
			return nil
		},
	}

	f.registerPalette(cmd)

	return cmd
}

// renderPalette draws one row per provenance and one swatch column per
// node class.
func renderPalette(p diff.Palette) string {
	provs := []diff.Provenance{diff.SourceOnly, diff.OtherOnly, diff.Intersect}

	headers := []string{""}
	for _, cl := range graph.Classes() {
		headers = append(headers, cl.String())
	}
	rows := make([][]string, 0, len(provs))
	for _, prov := range provs {
		row := []string{prov.String()}
		for _, cl := range graph.Classes() {
			col, _ := p.Color(prov, cl)
			row = append(row, col)
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
			}
			fill := rows[row][col]
			return lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color(fill)).
				Foreground(swatchText(fill))
		})

	return t.Render()
}

// swatchText picks black or white label text for a fill.
func swatchText(fill string) lipgloss.Color {
	c, err := colorful.Hex(fill)
	if err != nil {
		return colorWhite
	}
	if l, _, _ := c.Lab(); l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}
