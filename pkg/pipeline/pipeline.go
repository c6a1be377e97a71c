// Package pipeline runs gdiff end to end: load two contact maps, run the
// engine, name and write the outputs.
//
// This package implements the complete load → run → write pipeline used by
// every CLI command, so that output naming, validation and hooks behave the
// same whether a diff is run once or re-run by the watcher.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read both GraphML inputs ([Runner.Load])
//  2. Run: compute the outputs of the selected mode ([diff.Run])
//  3. Write: write every output, then the optional JSON report
//
// Outputs are only written once the engine has produced all of them, so a
// failing run leaves no new files behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    InputA: "egfr.graphml",
//	    InputB: "shc.graphml",
//	    Run:    diff.DefaultRunConfig(),
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, out := range result.Outputs {
//	    fmt.Println(out.Kind, out.Path)
//	}
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gdiff/pkg/diff"
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// Extension is the file extension of inputs and outputs.
const Extension = ".graphml"

// Output kinds.
const (
	KindDiff        = "diff"         // a - b
	KindReverseDiff = "reverse-diff" // b - a
	KindRecoloredA  = "recolored-a"
	KindRecoloredB  = "recolored-b"
	KindUnion       = "union"
	KindRecolored   = "recolored" // single document, recolor command
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	InputA string `json:"input_a"`
	InputB string `json:"input_b"`

	// Out and Out2 override the paths of the two diff outputs in matrix
	// mode. Empty values use the default names.
	Out  string `json:"out,omitempty"`
	Out2 string `json:"out2,omitempty"`

	// OutDir is the directory default output names are placed in.
	OutDir string `json:"out_dir,omitempty"`

	// Report, when set, is the path of a JSON run report.
	Report string `json:"report,omitempty"`

	Run diff.RunConfig `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	RunID  string      `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.InputA == "" || o.InputB == "" {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "two input files are required")
	}
	if (o.Out != "" || o.Out2 != "") && o.Run.Mode != diff.ModeMatrix {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "--out and --out2 only apply in matrix mode")
	}
	if _, err := diff.ParseMode(string(o.Run.Mode)); err != nil {
		return err
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Output naming
// =============================================================================

// BaseName returns the file name of path without directory and .graphml
// extension.
func BaseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Extension)
}

// OutputPaths returns the output path for every kind produced by the run,
// keyed by kind.
func (o *Options) OutputPaths() map[string]string {
	a, b := BaseName(o.InputA), BaseName(o.InputB)
	join := func(name string) string { return filepath.Join(o.OutDir, name+Extension) }

	if o.Run.Mode == diff.ModeUnion {
		return map[string]string{KindUnion: join(a + "_" + b + "_union")}
	}
	paths := map[string]string{
		KindDiff:        join(a + "_" + b + "_diff"),
		KindReverseDiff: join(b + "_" + a + "_diff"),
		KindRecoloredA:  join(a + "_recolored"),
		KindRecoloredB:  join(b + "_recolored"),
	}
	if o.Out != "" {
		paths[KindDiff] = o.Out
	}
	if o.Out2 != "" {
		paths[KindReverseDiff] = o.Out2
	}
	return paths
}

// =============================================================================
// Result
// =============================================================================

// Output is one written document.
type Output struct {
	Kind  string      `json:"kind"`
	Path  string      `json:"path"`
	Nodes int         `json:"nodes"`
	Stats *diff.Stats `json:"stats,omitempty"`
}

// Result contains the outcome of a pipeline run.
type Result struct {
	RunID    string          `json:"run_id"`
	Mode     diff.Mode       `json:"mode"`
	Inputs   []string        `json:"inputs"`
	Outputs  []Output        `json:"outputs"`
	Warnings []graph.Warning `json:"-"`
	Stats    Stats           `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime  time.Duration
	RunTime   time.Duration
	WriteTime time.Duration
}
