// Package config loads gdiff settings from a TOML or YAML file.
//
// Settings are layered: built-in defaults, then the config file, then
// command-line flags (applied by the CLI). A file only needs the keys it
// changes:
//
//	mode = "union"
//	font_delta = 10
//	ambiguity = "first"
//
//	[palette]
//	intersect = ["#c4ed9e", "#d9f4be", "#ecf9df"]
//
// Palette entries list one colour per node class, in species, component,
// state order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gdiff/pkg/diff"
	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// FileName is the name of the config file inside [Dir].
const FileName = "config.toml"

// Config holds gdiff settings.
type Config struct {
	Mode      string  `toml:"mode" yaml:"mode"`
	FontDelta int     `toml:"font_delta" yaml:"font_delta"`
	Ambiguity string  `toml:"ambiguity" yaml:"ambiguity"`
	Palette   Palette `toml:"palette" yaml:"palette"`
}

// Palette lists the fill colours per provenance.
type Palette struct {
	SourceOnly []string `toml:"source_only" yaml:"source_only"`
	OtherOnly  []string `toml:"other_only" yaml:"other_only"`
	Intersect  []string `toml:"intersect" yaml:"intersect"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Mode:      string(diff.ModeMatrix),
		FontDelta: diff.DefaultFontDelta,
		Ambiguity: graph.AmbiguityError.String(),
		Palette: Palette{
			SourceOnly: slices.Clone(diff.DefaultSourceOnly[:]),
			OtherOnly:  slices.Clone(diff.DefaultOtherOnly[:]),
			Intersect:  slices.Clone(diff.DefaultIntersect[:]),
		},
	}
}

// Dir returns the gdiff config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "gdiff")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the config file at path over the defaults and validates the
// result. An empty path means [DefaultPath], which may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return cfg, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		return nil
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Save writes cfg to path, creating parent directories. The format follows
// the file extension.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, isYAML(path)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Encode writes cfg to w as YAML when asYAML is set, TOML otherwise.
func Encode(w io.Writer, cfg *Config, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	}
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks every setting and reports all problems together.
func (c *Config) Validate() error {
	var errs []string
	if _, err := diff.ParseMode(c.Mode); err != nil {
		errs = append(errs, gerrors.UserMessage(err))
	}
	if _, err := graph.ParseAmbiguityPolicy(c.Ambiguity); err != nil {
		errs = append(errs, gerrors.UserMessage(err))
	}
	for _, tier := range []struct {
		name   string
		colors []string
	}{
		{"source_only", c.Palette.SourceOnly},
		{"other_only", c.Palette.OtherOnly},
		{"intersect", c.Palette.Intersect},
	} {
		if len(tier.colors) != graph.NumClasses {
			errs = append(errs, fmt.Sprintf("palette.%s: want %d colours (species, component, state), got %d",
				tier.name, graph.NumClasses, len(tier.colors)))
		}
		for i, col := range tier.colors {
			if _, err := colorful.Hex(col); err != nil {
				errs = append(errs, fmt.Sprintf("palette.%s[%d]: %q is not a hex colour", tier.name, i, col))
			}
		}
	}
	if len(errs) > 0 {
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// RunConfig converts validated settings into engine settings.
func (c *Config) RunConfig() (diff.RunConfig, error) {
	if err := c.Validate(); err != nil {
		return diff.RunConfig{}, err
	}
	mode, _ := diff.ParseMode(c.Mode)
	policy, _ := graph.ParseAmbiguityPolicy(c.Ambiguity)
	palette := diff.Palette{
		SourceOnly: tiers(c.Palette.SourceOnly),
		OtherOnly:  tiers(c.Palette.OtherOnly),
		Intersect:  tiers(c.Palette.Intersect),
	}
	palette, err := palette.Normalize()
	if err != nil {
		return diff.RunConfig{}, err
	}
	return diff.RunConfig{
		Mode:      mode,
		Palette:   palette,
		FontDelta: c.FontDelta,
		Options:   diff.Options{Ambiguity: policy},
	}, nil
}

func tiers(colors []string) diff.Tiers {
	var t diff.Tiers
	copy(t[:], colors)
	return t
}
