package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gdiff/pkg/diff"
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Mode != "matrix" {
		t.Errorf("Mode = %q, want matrix", cfg.Mode)
	}
	if cfg.FontDelta != 20 {
		t.Errorf("FontDelta = %d, want 20", cfg.FontDelta)
	}
	if cfg.Ambiguity != "error" {
		t.Errorf("Ambiguity = %q, want error", cfg.Ambiguity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	// Editing a default must not leak into the next one.
	cfg.Palette.Intersect[0] = "#000000"
	if got := Default().Palette.Intersect[0]; got != "#c4ed9e" {
		t.Errorf("defaults were modified: %q", got)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/gdiff" {
		t.Errorf("Dir() = %q", dir)
	}
	if p := DefaultPath(); p != "/tmp/test-xdg/gdiff/config.toml" {
		t.Errorf("DefaultPath() = %q", p)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if dir, want := Dir(), filepath.Join(home, ".config", "gdiff"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "matrix" {
		t.Errorf("Mode = %q", cfg.Mode)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !gerrors.Is(err, gerrors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "gdiff.toml", `
mode = "union"
font_delta = 0
ambiguity = "first"

[palette]
intersect = ["#C4ED9E", "#fff", "#ecf9df"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "union" || cfg.FontDelta != 0 || cfg.Ambiguity != "first" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Keys the file omits keep their defaults.
	if cfg.Palette.SourceOnly[0] != "#dadbfd" {
		t.Errorf("SourceOnly = %v", cfg.Palette.SourceOnly)
	}

	rc, err := cfg.RunConfig()
	if err != nil {
		t.Fatalf("RunConfig: %v", err)
	}
	if rc.Mode != diff.ModeUnion {
		t.Errorf("Mode = %q", rc.Mode)
	}
	if rc.Options.Ambiguity != graph.AmbiguityFirst {
		t.Errorf("Ambiguity = %v", rc.Options.Ambiguity)
	}
	want := diff.Tiers{"#c4ed9e", "#ffffff", "#ecf9df"}
	if rc.Palette.Intersect != want {
		t.Errorf("Intersect = %v, want %v", rc.Palette.Intersect, want)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"gdiff.yaml", "gdiff.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "mode: union\npalette:\n  other_only: ['#ff0000', '#ff8080', '#ffc0c0']\n")
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Mode != "union" {
				t.Errorf("Mode = %q", cfg.Mode)
			}
			if cfg.Palette.OtherOnly[1] != "#ff8080" {
				t.Errorf("OtherOnly = %v", cfg.Palette.OtherOnly)
			}
			if cfg.FontDelta != 20 {
				t.Errorf("FontDelta = %d", cfg.FontDelta)
			}
		})
	}
}

func TestLoadUnknownKeys(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"toml", "c.toml", "mode = \"matrix\"\nfont_size = 3\n"},
		{"yaml", "c.yaml", "mode: matrix\nfont_size: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
				t.Fatalf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Mode = "both"
	cfg.Ambiguity = "random"
	cfg.Palette.SourceOnly = []string{"#dadbfd", "blue", "#f3f3ff"}
	cfg.Palette.Intersect = []string{"#c4ed9e", "#zzzzzz"}

	err := cfg.Validate()
	if gerrors.GetCode(err) != gerrors.ErrCodeInvalidConfig {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
	msg := err.Error()
	for _, want := range []string{
		`mode "both"`,
		`ambiguity policy "random"`,
		`palette.source_only[1]: "blue"`,
		`palette.intersect: want 3 colours`,
		`palette.intersect[1]: "#zzzzzz"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
	if _, err := cfg.RunConfig(); err == nil {
		t.Error("RunConfig accepted invalid config")
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"nested/config.toml", "nested/config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Mode = "union"
			cfg.FontDelta = 5
			if err := Save(cfg, path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Mode != "union" || got.FontDelta != 5 {
				t.Errorf("got %+v", got)
			}
			if got.Palette.OtherOnly[2] != "#ffdfd4" {
				t.Errorf("OtherOnly = %v", got.Palette.OtherOnly)
			}
		})
	}
}
