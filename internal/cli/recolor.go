package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gdiff/pkg/config"
	"github.com/matzehuels/gdiff/pkg/diff"
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/pipeline"
)

// recolorCommand creates the recolor command.
func (c *CLI) recolorCommand() *cobra.Command {
	var (
		tier      string
		colors    []string
		fontDelta int
		out       string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "recolor <file.graphml>",
		Short: "Fill every node of one contact map with a palette tier",
		Long: `Fill every node of one contact map with the colour of its class in one
palette tier, without comparing it to anything. Useful as a reference
rendering next to a diff.`,
		Example: `  gdiff recolor egfr.graphml --tier intersect
  gdiff recolor egfr.graphml --colors '#112233,#445566,#778899' --out egfr-grey.graphml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("font-delta") {
				cfg.FontDelta = fontDelta
			}
			run, err := cfg.RunConfig()
			if err != nil {
				return err
			}
			tiers, err := selectTiers(run.Palette, tier, colors)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			res, err := pipeline.NewRunner(logger).Recolor(ctx, pipeline.RecolorOptions{
				Input:     args[0],
				Out:       out,
				OutDir:    outDir,
				Tiers:     tiers,
				FontDelta: run.FontDelta,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Recolored %d nodes", res.Nodes))
			printSuccess("recolored %s", args[0])
			printFile(res.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "source-only", "palette tier: source-only, other-only or intersect")
	cmd.Flags().StringSliceVar(&colors, "colors", nil, "explicit colours species,component,state (overrides --tier)")
	cmd.Flags().IntVar(&fontDelta, "font-delta", 0, "points added to every label font size")
	cmd.Flags().StringVar(&out, "out", "", "output path (default {file}_recolored.graphml)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the default output name")

	return cmd
}

// selectTiers picks the colours for a recolor: explicit colours when given,
// otherwise the named tier of palette.
func selectTiers(palette diff.Palette, tier string, colors []string) (diff.Tiers, error) {
	if len(colors) > 0 {
		if len(colors) != len(diff.Tiers{}) {
			return diff.Tiers{}, gerrors.New(gerrors.ErrCodeInvalidPalette,
				"--colors wants %d colours (species, component, state), got %d", len(diff.Tiers{}), len(colors))
		}
		var t diff.Tiers
		copy(t[:], colors)
		p, err := diff.Palette{SourceOnly: t, OtherOnly: t, Intersect: t}.Normalize()
		if err != nil {
			return diff.Tiers{}, err
		}
		return p.SourceOnly, nil
	}
	for _, prov := range []diff.Provenance{diff.SourceOnly, diff.OtherOnly, diff.Intersect} {
		if prov.String() == tier {
			return palette.Tiers(prov), nil
		}
	}
	return diff.Tiers{}, gerrors.New(gerrors.ErrCodeInvalidInput,
		"unknown tier %q (want source-only, other-only or intersect)", tier)
}
