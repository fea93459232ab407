// Package config defines the persisted configuration document: renderer,
// terminal, window, and startup sections, every field optional with sane
// defaults, loaded from and saved to YAML.
package config

import (
	"os"

	"github.com/quietcompute/splitterm/internal/apperror"
	"gopkg.in/yaml.v3"
)

// StartupLayout names one of the fixed startup pane arrangements.
type StartupLayout string

const (
	LayoutSingle     StartupLayout = "single"
	LayoutHorizontal StartupLayout = "horizontal"
	LayoutVertical   StartupLayout = "vertical"
	LayoutGrid       StartupLayout = "grid"
)

// RendererConfig controls the (external) render backend selection.
type RendererConfig struct {
	Backend   string `yaml:"backend"`
	TargetFPS int    `yaml:"target_fps"`
}

// TerminalConfig controls the initial emulator/PTY geometry and font.
type TerminalConfig struct {
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	FontSize   float64 `yaml:"font_size"`
	FontFamily string  `yaml:"font_family"`
	Scrollback int     `yaml:"scrollback"`
	Shell      string  `yaml:"shell"`
}

// WindowConfig controls the host window's initial chrome.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Maximize bool   `yaml:"maximize"`
}

// StartupConfig controls how many panes exist at launch and how they are
// arranged.
type StartupConfig struct {
	Panes         int           `yaml:"panes"`
	Layout        StartupLayout `yaml:"layout"`
	SplitRatio    float64       `yaml:"split_ratio"`
	VerticalRatio float64       `yaml:"vertical_ratio"`
}

// Config is the full persisted document. Every field is optional; Default
// fills in the values below when loading a partial or absent file.
type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Terminal TerminalConfig `yaml:"terminal"`
	Window   WindowConfig   `yaml:"window"`
	Startup  StartupConfig  `yaml:"startup"`
}

// Default returns the configuration used when no file is present, and the
// baseline that Load fills missing fields in from.
func Default() Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/bash"
	}
	return Config{
		Renderer: RendererConfig{
			Backend:   "cpu",
			TargetFPS: 60,
		},
		Terminal: TerminalConfig{
			Cols:       80,
			Rows:       24,
			FontSize:   14,
			FontFamily: "monospace",
			Scrollback: 10000,
			Shell:      shell,
		},
		Window: WindowConfig{
			Title:    "splitterm",
			Width:    800,
			Height:   600,
			Maximize: false,
		},
		Startup: StartupConfig{
			Panes:         4,
			Layout:        LayoutGrid,
			SplitRatio:    0.7,
			VerticalRatio: 0.5,
		},
	}
}

// Load reads and parses a YAML configuration document from path, applying
// Default() for any zero-valued field left unset by the file. A missing
// file is not an error: Load returns the defaults unchanged. A parse error
// is surfaced as a KindYAML apperror.Error for the caller to treat as
// fatal.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, apperror.IO("failed to read config file", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, apperror.YAML("failed to parse config file", err)
	}

	cfg.merge(fileCfg)
	return cfg, nil
}

// Save serializes cfg as YAML to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return apperror.YAML("failed to marshal config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperror.IO("failed to write config file", err)
	}
	return nil
}

// merge overwrites c's fields with any non-zero fields set in override,
// leaving defaults in place where override left a field unset.
func (c *Config) merge(override Config) {
	if override.Renderer.Backend != "" {
		c.Renderer.Backend = override.Renderer.Backend
	}
	if override.Renderer.TargetFPS != 0 {
		c.Renderer.TargetFPS = override.Renderer.TargetFPS
	}
	if override.Terminal.Cols != 0 {
		c.Terminal.Cols = override.Terminal.Cols
	}
	if override.Terminal.Rows != 0 {
		c.Terminal.Rows = override.Terminal.Rows
	}
	if override.Terminal.FontSize != 0 {
		c.Terminal.FontSize = override.Terminal.FontSize
	}
	if override.Terminal.FontFamily != "" {
		c.Terminal.FontFamily = override.Terminal.FontFamily
	}
	if override.Terminal.Scrollback != 0 {
		c.Terminal.Scrollback = override.Terminal.Scrollback
	}
	if override.Terminal.Shell != "" {
		c.Terminal.Shell = override.Terminal.Shell
	}
	if override.Window.Title != "" {
		c.Window.Title = override.Window.Title
	}
	if override.Window.Width != 0 {
		c.Window.Width = override.Window.Width
	}
	if override.Window.Height != 0 {
		c.Window.Height = override.Window.Height
	}
	c.Window.Maximize = c.Window.Maximize || override.Window.Maximize
	if override.Startup.Panes != 0 {
		c.Startup.Panes = override.Startup.Panes
	}
	if override.Startup.Layout != "" {
		c.Startup.Layout = override.Startup.Layout
	}
	if override.Startup.SplitRatio != 0 {
		c.Startup.SplitRatio = override.Startup.SplitRatio
	}
	if override.Startup.VerticalRatio != 0 {
		c.Startup.VerticalRatio = override.Startup.VerticalRatio
	}
}
