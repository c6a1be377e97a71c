// Package cli implements the gdiff command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gdiff/pkg/buildinfo"
	"github.com/matzehuels/gdiff/pkg/config"
	"github.com/matzehuels/gdiff/pkg/diff"
	"github.com/matzehuels/gdiff/pkg/observability"
	"github.com/matzehuels/gdiff/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gdiff"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	metricsFile string
	metrics     *promHooks
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gdiff compares and merges hierarchical contact maps",
		Long: `gdiff compares two yEd/GraphML contact maps by label path and writes
coloured derivative graphs: the diff in both directions, recoloured
references of each input, or a merged union with provenance colours.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.metricsFile != "" && c.metrics == nil {
				c.metrics = newPromHooks()
				observability.SetPipelineHooks(c.metrics)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format to this path on exit")

	root.AddCommand(c.diffCommand())
	root.AddCommand(c.unionCommand())
	root.AddCommand(c.recolorCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// FlushMetrics writes collected metrics to --metrics-file. It is a no-op
// when the flag was not given.
func (c *CLI) FlushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Engine flags
// =============================================================================

// engineFlags are the settings every engine command shares. A flag only
// overrides the config file when it was set on the command line.
type engineFlags struct {
	mode       string
	fontDelta  int
	ambiguity  string
	sourceOnly []string
	otherOnly  []string
	intersect  []string
	outDir     string
	report     string
}

func (f *engineFlags) register(cmd *cobra.Command, withMode bool) {
	fl := cmd.Flags()
	if withMode {
		fl.StringVar(&f.mode, "mode", "", "run mode: matrix or union")
	}
	fl.IntVar(&f.fontDelta, "font-delta", 0, "points added to every label font size")
	fl.StringVar(&f.ambiguity, "ambiguity", "", "duplicate sibling labels: error or first")
	fl.StringVar(&f.outDir, "out-dir", ".", "directory for default output names")
	fl.StringVar(&f.report, "report", "", "write a JSON run report to this path")
	f.registerPalette(cmd)
}

func (f *engineFlags) registerPalette(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.sourceOnly, "source-only", nil, "source-only colours: species,component,state")
	fl.StringSliceVar(&f.otherOnly, "other-only", nil, "other-only colours: species,component,state")
	fl.StringSliceVar(&f.intersect, "intersect", nil, "shared colours: species,component,state")
}

// apply overlays the flags that were set on cfg.
func (f *engineFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("mode") {
		cfg.Mode = f.mode
	}
	if changed("font-delta") {
		cfg.FontDelta = f.fontDelta
	}
	if changed("ambiguity") {
		cfg.Ambiguity = f.ambiguity
	}
	if changed("source-only") {
		cfg.Palette.SourceOnly = f.sourceOnly
	}
	if changed("other-only") {
		cfg.Palette.OtherOnly = f.otherOnly
	}
	if changed("intersect") {
		cfg.Palette.Intersect = f.intersect
	}
}

// runConfig loads the config file and applies f on top of it.
func (c *CLI) runConfig(cmd *cobra.Command, f *engineFlags) (diff.RunConfig, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return diff.RunConfig{}, err
	}
	f.apply(cmd, cfg)
	return cfg.RunConfig()
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
