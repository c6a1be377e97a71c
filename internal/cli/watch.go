package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/pipeline"
)

const defaultDebounce = 300 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		f        engineFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <a.graphml> <b.graphml>",
		Short: "Re-run a diff whenever either input changes",
		Long: `Run a diff once, then again every time either input file is saved.
Failed runs are logged and leave the previous outputs in place; the watch
keeps going until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.runConfig(cmd, &f)
			if err != nil {
				return err
			}
			return c.watch(cmd.Context(), f.options(args, run), debounce)
		},
	}

	f.register(cmd, true)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period after a change before re-running")

	return cmd
}

// watch runs opts, then re-runs it after every burst of changes to its
// inputs. Directories are watched rather than files so that editors which
// save by rename are still seen.
func (c *CLI) watch(ctx context.Context, opts pipeline.Options, debounce time.Duration) error {
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool)
	for _, in := range []string{opts.InputA, opts.InputB} {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("watch %s: %w", in, err)
		}
		targets[abs] = true
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
		}
	}

	runner := c.newRunner()
	runOnce := func() {
		o := opts
		o.RunID = ""
		o.Logger = logger
		result, err := runner.Execute(ctx, o)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("run failed", "err", gerrors.UserMessage(err))
			}
			return
		}
		logWarnings(logger, result.Warnings)
		logger.Info("outputs updated", "run", shortRunID(result.RunID), "files", len(result.Outputs))
	}

	runOnce()
	printInfo("watching %s and %s (ctrl+c to stop)", opts.InputA, opts.InputB)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				logger.Debug("input changed", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-timer.C:
			runOnce()
		}
	}
}
