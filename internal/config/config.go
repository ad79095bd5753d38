package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds every setting copycat reads from config.toml. Path fields are
// returned expanded and absolute.
type Config struct {
	Appletsrc   string
	KWinRC      string
	KWinRulesRC string

	Export Export
	Log    Log
	Viewer Viewer
}

// Export configures the bundle exporter.
type Export struct {
	OutDir          string
	Snapshot        bool
	BundlePlasmoids bool
	PlasmoidDirs    []string
}

// Log configures the slog handler.
type Log struct {
	Level  string
	Format string
	File   string
}

// Viewer configures the terminal viewer.
type Viewer struct {
	RefreshSeconds int
}

const (
	defaultConfigPath     = "~/.config/copycat/config.toml"
	defaultAppletsrc      = "~/.config/plasma-org.kde.plasma.desktop-appletsrc"
	defaultKWinRC         = "~/.config/kwinrc"
	defaultKWinRulesRC    = "~/.config/kwinrulesrc"
	defaultOutDir         = "."
	defaultPlasmoidDir    = "~/.local/share/plasma/plasmoids"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultRefreshSeconds = 2
)

// rawConfig mirrors the TOML layout. Booleans are pointers so an absent key
// can be told apart from an explicit false.
type rawConfig struct {
	Appletsrc   string `toml:"appletsrc"`
	KWinRC      string `toml:"kwinrc"`
	KWinRulesRC string `toml:"kwinrulesrc"`

	Export struct {
		OutDir          string   `toml:"out_dir"`
		Snapshot        *bool    `toml:"snapshot"`
		BundlePlasmoids *bool    `toml:"bundle_plasmoids"`
		PlasmoidDirs    []string `toml:"plasmoid_dirs"`
	} `toml:"export"`

	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		File   string `toml:"file"`
	} `toml:"log"`

	Viewer struct {
		RefreshSeconds int `toml:"refresh_seconds"`
	} `toml:"viewer"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	cfg := Config{
		Appletsrc:   defaultAppletsrc,
		KWinRC:      defaultKWinRC,
		KWinRulesRC: defaultKWinRulesRC,
		Export: Export{
			OutDir:          defaultOutDir,
			Snapshot:        true,
			BundlePlasmoids: true,
			PlasmoidDirs:    []string{defaultPlasmoidDir},
		},
		Log:    Log{Level: defaultLogLevel, Format: defaultLogFormat},
		Viewer: Viewer{RefreshSeconds: defaultRefreshSeconds},
	}
	cfg.expandPaths()
	return cfg
}

// Load locates and parses the copycat config, falling back to defaults when
// the file or any field is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		Appletsrc:   orDefault(raw.Appletsrc, defaultAppletsrc),
		KWinRC:      orDefault(raw.KWinRC, defaultKWinRC),
		KWinRulesRC: orDefault(raw.KWinRulesRC, defaultKWinRulesRC),
		Export: Export{
			OutDir:          orDefault(raw.Export.OutDir, defaultOutDir),
			Snapshot:        raw.Export.Snapshot == nil || *raw.Export.Snapshot,
			BundlePlasmoids: raw.Export.BundlePlasmoids == nil || *raw.Export.BundlePlasmoids,
		},
		Log: Log{
			Level:  strings.ToLower(orDefault(raw.Log.Level, defaultLogLevel)),
			Format: strings.ToLower(orDefault(raw.Log.Format, defaultLogFormat)),
			File:   strings.TrimSpace(raw.Log.File),
		},
		Viewer: Viewer{RefreshSeconds: raw.Viewer.RefreshSeconds},
	}
	for _, dir := range raw.Export.PlasmoidDirs {
		if d := strings.TrimSpace(dir); d != "" {
			cfg.Export.PlasmoidDirs = append(cfg.Export.PlasmoidDirs, d)
		}
	}
	if len(cfg.Export.PlasmoidDirs) == 0 {
		cfg.Export.PlasmoidDirs = []string{defaultPlasmoidDir}
	}
	if cfg.Viewer.RefreshSeconds <= 0 {
		cfg.Viewer.RefreshSeconds = defaultRefreshSeconds
	}

	cfg.expandPaths()
	return cfg, nil
}

// DefaultPath returns the unexpanded default config location.
func DefaultPath() string {
	return defaultConfigPath
}

func (c *Config) expandPaths() {
	c.Appletsrc = mustExpand(c.Appletsrc)
	c.KWinRC = mustExpand(c.KWinRC)
	c.KWinRulesRC = mustExpand(c.KWinRulesRC)
	c.Export.OutDir = mustExpand(c.Export.OutDir)
	for i, dir := range c.Export.PlasmoidDirs {
		c.Export.PlasmoidDirs[i] = mustExpand(dir)
	}
	if c.Log.File != "" {
		c.Log.File = mustExpand(c.Log.File)
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, expands a leading "~" to the home directory and
// makes the result absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
