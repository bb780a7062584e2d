// Package config loads the optional headless.yaml used by the headless CLI.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/overlay"
	"github.com/go-drift/headless/pkg/widgets"
)

// FileName is the configuration file looked up by Find.
const FileName = "headless.yaml"

// Config represents headless.yaml.
type Config struct {
	Log     LogConfig               `yaml:"log"`
	Demo    DemoConfig              `yaml:"demo"`
	Presets map[string]PresetConfig `yaml:"presets" validate:"dive,keys,required,endkeys"`
}

// LogConfig selects the zerolog level and writer.
type LogConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	// File receives log output. The demo owns the terminal, so it logs
	// nowhere unless File is set.
	File  string `yaml:"file,omitempty"`
	Human bool   `yaml:"human,omitempty"`
}

// DemoConfig tunes the interactive demo.
type DemoConfig struct {
	Title       string        `yaml:"title,omitempty"`
	Accent      string        `yaml:"accent,omitempty" validate:"omitempty,hexcolor"`
	TooltipWait time.Duration `yaml:"tooltip_wait,omitempty" validate:"min=0"`
	TooltipShow time.Duration `yaml:"tooltip_show,omitempty" validate:"min=0"`
	// MenuPlacement names a preset, built in or from Presets.
	MenuPlacement string `yaml:"menu_placement,omitempty"`
	Mouse         bool   `yaml:"mouse"`
}

// PresetConfig defines a named placement on top of a built-in one.
type PresetConfig struct {
	Base     string  `yaml:"base" validate:"required,preset"`
	Gap      float64 `yaml:"gap,omitempty" validate:"min=0"`
	MaxWidth float64 `yaml:"max_width,omitempty" validate:"min=0"`
	// MaxHeight caps the overlay height. Zero leaves it uncapped.
	MaxHeight        float64 `yaml:"max_height,omitempty" validate:"min=0"`
	MatchAnchorWidth bool    `yaml:"match_anchor_width,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	// Path is the file the values came from, empty when none was found.
	Path    string
	Log     LogConfig
	Demo    DemoConfig
	Presets map[string]overlay.PositionConfig
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Demo: DemoConfig{
			Accent:        "#7D56F4",
			TooltipWait:   widgets.DefaultTooltipWait,
			TooltipShow:   widgets.DefaultTooltipShow,
			MenuPlacement: "below",
			Mouse:         true,
		},
	}
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("config.Parse", errors.KindConfig, fmt.Errorf("failed to parse %s: %w", FileName, err))
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to read %s: %w", path, err))
	}
	return Parse(data)
}

// Resolve loads path, or the file Find locates when path is empty, and
// applies defaults. A missing file is not an error unless path was given.
func Resolve(path string) (*Resolved, error) {
	cfg := Default()
	if path == "" {
		path = Find()
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	presets := make(map[string]overlay.PositionConfig, len(cfg.Presets)+len(overlay.PresetNames()))
	for _, name := range overlay.PresetNames() {
		p, _ := overlay.Preset(name, 0)
		presets[name] = p
	}
	for name, pc := range cfg.Presets {
		p, err := pc.Build()
		if err != nil {
			return nil, errors.New("config.Resolve", errors.KindConfig, fmt.Errorf("preset %q: %w", name, err))
		}
		presets[name] = p
	}
	if _, ok := presets[cfg.Demo.MenuPlacement]; !ok {
		return nil, errors.New("config.Resolve", errors.KindConfig, fmt.Errorf("demo.menu_placement: unknown preset %q", cfg.Demo.MenuPlacement))
	}

	if strings.TrimSpace(cfg.Demo.Title) == "" {
		cfg.Demo.Title = defaultTitle(filepath.Dir(path))
	}

	return &Resolved{Path: path, Log: cfg.Log, Demo: cfg.Demo, Presets: presets}, nil
}

// Build returns the position config the preset describes.
func (p PresetConfig) Build() (overlay.PositionConfig, error) {
	cfg, err := overlay.Preset(p.Base, p.Gap)
	if err != nil {
		return overlay.PositionConfig{}, err
	}
	cfg.MaxWidth = p.MaxWidth
	cfg.MaxHeight = p.MaxHeight
	cfg.MatchAnchorWidth = p.MatchAnchorWidth
	return cfg, nil
}

// Find returns the headless.yaml in the current directory or the
// enclosing Go module root, or "" when there is none.
func Find() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	if candidate := filepath.Join(dir, FileName); exists(candidate) {
		return candidate
	}
	root, err := FindProjectRoot(dir)
	if err != nil {
		return ""
	}
	if candidate := filepath.Join(root, FileName); exists(candidate) {
		return candidate
	}
	return ""
}

// FindProjectRoot walks up from dir to the directory holding go.mod.
func FindProjectRoot(dir string) (string, error) {
	for {
		if exists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", stderrors.New("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// defaultTitle names the demo after the enclosing module, falling back
// to "headless".
func defaultTitle(dir string) string {
	if dir == "" || dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return "headless"
		}
		dir = wd
	}
	root, err := FindProjectRoot(dir)
	if err != nil {
		return "headless"
	}
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "headless"
	}
	return titleFromModulePath(modfile.ModulePath(data))
}

func titleFromModulePath(path string) string {
	if path == "" {
		return "headless"
	}
	if prefix, _, ok := module.SplitPathVersion(path); ok {
		path = prefix
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
