package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gdiff/pkg/diff"
	"github.com/matzehuels/gdiff/pkg/pipeline"
)

// diffCommand creates the diff command: matrix mode unless --mode or the
// config file say otherwise.
func (c *CLI) diffCommand() *cobra.Command {
	var (
		f         engineFlags
		out, out2 string
	)

	cmd := &cobra.Command{
		Use:   "diff <a.graphml> <b.graphml>",
		Short: "Diff two contact maps in both directions",
		Long: `Diff two contact maps in both directions.

Nodes are matched by label path. In matrix mode four files are written:
  {a}_{b}_diff.graphml   a painted against b
  {b}_{a}_diff.graphml   b painted against a, with mirrored colours
  {a}_recolored.graphml  a in the source-only colours
  {b}_recolored.graphml  b in the other-only colours

With --mode=union a single merged graph is written instead.`,
		Example: `  # Default matrix run
  gdiff diff egfr.graphml shc.graphml

  # Explicit output names and larger labels
  gdiff diff egfr.graphml shc.graphml --out a-b.graphml --out2 b-a.graphml --font-delta 20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.runConfig(cmd, &f)
			if err != nil {
				return err
			}
			opts := f.options(args, run)
			opts.Out, opts.Out2 = out, out2
			_, err = c.execute(cmd, opts)
			return err
		},
	}

	f.register(cmd, true)
	cmd.Flags().StringVar(&out, "out", "", "path of the a-b diff (matrix mode)")
	cmd.Flags().StringVar(&out2, "out2", "", "path of the b-a diff (matrix mode)")

	return cmd
}

// unionCommand creates the union command, a shortcut for diff --mode=union.
func (c *CLI) unionCommand() *cobra.Command {
	var f engineFlags

	cmd := &cobra.Command{
		Use:   "union <a.graphml> <b.graphml>",
		Short: "Merge two contact maps into one graph with provenance colours",
		Long: `Merge two contact maps into {a}_{b}_union.graphml.

Nodes only in a keep the source-only colours, nodes only in b are inserted
with fresh identifiers in the other-only colours, shared nodes get the
intersect colours. Edges of b are remapped onto the merged identifiers and
added unless an equal edge already exists.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.runConfig(cmd, &f)
			if err != nil {
				return err
			}
			run.Mode = diff.ModeUnion
			_, err = c.execute(cmd, f.options(args, run))
			return err
		},
	}

	f.register(cmd, false)

	return cmd
}

func (f *engineFlags) options(args []string, run diff.RunConfig) pipeline.Options {
	return pipeline.Options{
		InputA: args[0],
		InputB: args[1],
		OutDir: f.outDir,
		Report: f.report,
		Run:    run,
	}
}

// execute runs the pipeline behind a spinner and prints the written files.
func (c *CLI) execute(cmd *cobra.Command, opts pipeline.Options) (*pipeline.Result, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("Comparing %s and %s...", pipeline.BaseName(opts.InputA), pipeline.BaseName(opts.InputB)))
	spin.Start()
	result, err := c.newRunner().Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}

	logWarnings(logger, result.Warnings)
	prog.done(fmt.Sprintf("Compared %s and %s", opts.InputA, opts.InputB))
	printResult(result, opts.Report)
	return result, nil
}

func printResult(result *pipeline.Result, report string) {
	printSuccess("%s run %s", result.Mode, StyleDim.Render(shortRunID(result.RunID)))
	for _, out := range result.Outputs {
		printFile(out.Path)
		if out.Stats != nil {
			if line := formatStats(*out.Stats); line != "" {
				fmt.Println(line)
			}
		}
	}
	if len(result.Warnings) > 0 {
		printWarning("%d ambiguous label paths resolved to their first match", len(result.Warnings))
	}
	if report != "" {
		printKeyValue("report", report)
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
