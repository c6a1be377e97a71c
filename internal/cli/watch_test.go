package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gdiff/pkg/diff"
	"github.com/matzehuels/gdiff/pkg/pipeline"
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("%s was not written", path)
}

func TestWatchRerunsOnChange(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	a, b := filepath.Join(in, "egfr.graphml"), filepath.Join(in, "shc.graphml")
	copyFile(t, "testdata/egfr.graphml", a)
	copyFile(t, "testdata/shc.graphml", b)

	run := diff.DefaultRunConfig()
	run.Mode = diff.ModeUnion
	opts := pipeline.Options{InputA: a, InputB: b, OutDir: out, Run: run}
	union := filepath.Join(out, "egfr_shc_union.graphml")

	c := New(&bytes.Buffer{}, LogInfo)
	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- c.watch(ctx, opts, 20*time.Millisecond) }()

	waitForFile(t, union)
	if err := os.Remove(union); err != nil {
		t.Fatal(err)
	}

	// Give the watcher time to register before touching an input.
	time.Sleep(100 * time.Millisecond)
	copyFile(t, "testdata/shc.graphml", b)
	waitForFile(t, union)

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("watch returned %v after cancel, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
