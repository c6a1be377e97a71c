package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gdiff/pkg/diff"
	"github.com/matzehuels/gdiff/pkg/graph"
	gio "github.com/matzehuels/gdiff/pkg/io"
	"github.com/matzehuels/gdiff/pkg/observability"
)

// Runner executes pipeline runs.
//
// The Runner is stateless except for the logger; it doesn't store results.
// Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → run → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger.With("run", shortID(opts.RunID))

	result := &Result{
		RunID:  opts.RunID,
		Mode:   opts.Run.Mode,
		Inputs: []string{opts.InputA, opts.InputB},
	}

	// Stage 1: Load
	loadStart := time.Now()
	a, err := r.Load(ctx, opts.InputA)
	if err != nil {
		return nil, err
	}
	b, err := r.Load(ctx, opts.InputB)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Debug("loaded documents",
		"a", a.Len(),
		"b", b.Len(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Run
	outs, err := r.run(ctx, a, b, opts.Run)
	if err != nil {
		return nil, err
	}
	result.Warnings = outs.Warnings()

	// Stage 3: Write
	writeStart := time.Now()
	paths := opts.OutputPaths()
	for _, p := range planOutputs(outs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := paths[p.kind]
		if err := r.write(ctx, p.doc, path); err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, Output{
			Kind:  p.kind,
			Path:  path,
			Nodes: p.doc.Len(),
			Stats: p.stats,
		})
	}
	result.Stats.WriteTime = time.Since(writeStart)

	logger.Info("wrote outputs",
		"mode", opts.Run.Mode,
		"files", len(result.Outputs),
		"duration", result.Stats.WriteTime)

	if opts.Report != "" {
		if err := WriteReport(opts.Report, result); err != nil {
			return nil, err
		}
		logger.Debug("wrote report", "path", opts.Report)
	}
	return result, nil
}

// Load reads one GraphML input and reports it to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, path string) (*graph.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	doc, err := gio.ImportGraphML(path)
	nodes := 0
	if doc != nil {
		nodes = doc.Len()
	}
	hooks.OnLoadComplete(ctx, path, nodes, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return doc, nil
}

// run wraps the engine with hooks and timing.
func (r *Runner) run(ctx context.Context, a, b *graph.Document, cfg diff.RunConfig) (*diff.Outputs, error) {
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, string(cfg.Mode))
	start := time.Now()
	outs, err := diff.Run(a, b, cfg)
	hooks.OnRunComplete(ctx, string(cfg.Mode), countsOf(outs), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return outs, nil
}

func (r *Runner) write(ctx context.Context, doc *graph.Document, path string) error {
	start := time.Now()
	err := gio.ExportGraphML(doc, path)
	observability.Pipeline().OnWrite(ctx, path, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RecolorOptions configures [Runner.Recolor].
type RecolorOptions struct {
	Input string

	// Out overrides the default name {input}_recolored.graphml in OutDir.
	Out    string
	OutDir string

	Tiers     diff.Tiers
	FontDelta int
}

// Recolor fills every node of a single document with the colour of its
// class, resizes its labels and writes the result.
func (r *Runner) Recolor(ctx context.Context, opts RecolorOptions) (*Output, error) {
	doc, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	out, err := diff.Recolor(doc, opts.Tiers)
	if err != nil {
		return nil, fmt.Errorf("recolor: %w", err)
	}
	out = diff.ResizeFonts(out, opts.FontDelta)

	path := opts.Out
	if path == "" {
		dir := opts.OutDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, BaseName(opts.Input)+"_recolored"+Extension)
	}
	if err := r.write(ctx, out, path); err != nil {
		return nil, err
	}
	r.Logger.Info("recolored document", "path", path)
	return &Output{Kind: KindRecolored, Path: path, Nodes: out.Len()}, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

type plannedOutput struct {
	kind  string
	doc   *graph.Document
	stats *diff.Stats
}

// planOutputs lists the documents of outs in write order.
func planOutputs(outs *diff.Outputs) []plannedOutput {
	if outs.Mode == diff.ModeUnion {
		return []plannedOutput{{KindUnion, outs.Union.Document, &outs.Union.Stats}}
	}
	return []plannedOutput{
		{KindDiff, outs.Forward.Document, &outs.Forward.Stats},
		{KindReverseDiff, outs.Reverse.Document, &outs.Reverse.Stats},
		{KindRecoloredA, outs.RecoloredA, nil},
		{KindRecoloredB, outs.RecoloredB, nil},
	}
}

// countsOf sums the statistics of every result in outs.
func countsOf(outs *diff.Outputs) observability.RunCounts {
	var c observability.RunCounts
	if outs == nil {
		return c
	}
	for _, r := range []*diff.Result{outs.Forward, outs.Reverse, outs.Union} {
		if r == nil {
			continue
		}
		c.SourceOnly += r.Stats.SourceOnly
		c.OtherOnly += r.Stats.OtherOnly
		c.Intersect += r.Stats.Intersect
		c.EdgesAdded += r.Stats.EdgesAdded
		c.EdgesDeduplicated += r.Stats.EdgesDeduplicated
		c.Warnings += len(r.Warnings)
	}
	return c
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
