package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantAppletsrc := filepath.Join(home, ".config", "plasma-org.kde.plasma.desktop-appletsrc")
	if cfg.Appletsrc != wantAppletsrc {
		t.Fatalf("Appletsrc = %q, want %q", cfg.Appletsrc, wantAppletsrc)
	}
	if cfg.KWinRC != filepath.Join(home, ".config", "kwinrc") {
		t.Fatalf("KWinRC = %q, want it under %q", cfg.KWinRC, home)
	}
	if !cfg.Export.Snapshot || !cfg.Export.BundlePlasmoids {
		t.Fatalf("Export = %+v, want snapshot and bundle_plasmoids enabled", cfg.Export)
	}
	wantDirs := []string{filepath.Join(home, ".local", "share", "plasma", "plasmoids")}
	if !reflect.DeepEqual(cfg.Export.PlasmoidDirs, wantDirs) {
		t.Fatalf("PlasmoidDirs = %q, want %q", cfg.Export.PlasmoidDirs, wantDirs)
	}
	if cfg.Log.Level != defaultLogLevel || cfg.Log.Format != defaultLogFormat {
		t.Fatalf("Log = %+v, want level %q format %q", cfg.Log, defaultLogLevel, defaultLogFormat)
	}
	if cfg.Viewer.RefreshSeconds != defaultRefreshSeconds {
		t.Fatalf("RefreshSeconds = %d, want %d", cfg.Viewer.RefreshSeconds, defaultRefreshSeconds)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
appletsrc = "  ~/plasma/appletsrc  "
kwinrc = "/etc/xdg/kwinrc"

[export]
out_dir = "~/bundles"
snapshot = false
plasmoid_dirs = ["~/a", "  ", "/opt/b"]

[log]
level = "DEBUG"
format = "json"
file = "~/copycat.log"

[viewer]
refresh_seconds = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Appletsrc != filepath.Join(home, "plasma", "appletsrc") {
		t.Fatalf("Appletsrc = %q, want it under HOME %q", cfg.Appletsrc, home)
	}
	if cfg.KWinRC != "/etc/xdg/kwinrc" {
		t.Fatalf("KWinRC = %q, want %q", cfg.KWinRC, "/etc/xdg/kwinrc")
	}
	if !strings.HasPrefix(cfg.KWinRulesRC, home) {
		t.Fatalf("KWinRulesRC = %q, want default under HOME %q", cfg.KWinRulesRC, home)
	}
	if cfg.Export.OutDir != filepath.Join(home, "bundles") {
		t.Fatalf("OutDir = %q, want %q", cfg.Export.OutDir, filepath.Join(home, "bundles"))
	}
	if cfg.Export.Snapshot {
		t.Fatalf("Snapshot = true, want false")
	}
	if !cfg.Export.BundlePlasmoids {
		t.Fatalf("BundlePlasmoids = false, want default true")
	}
	wantDirs := []string{filepath.Join(home, "a"), "/opt/b"}
	if !reflect.DeepEqual(cfg.Export.PlasmoidDirs, wantDirs) {
		t.Fatalf("PlasmoidDirs = %q, want %q", cfg.Export.PlasmoidDirs, wantDirs)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("Log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Log.File != filepath.Join(home, "copycat.log") {
		t.Fatalf("Log.File = %q, want %q", cfg.Log.File, filepath.Join(home, "copycat.log"))
	}
	if cfg.Viewer.RefreshSeconds != 5 {
		t.Fatalf("RefreshSeconds = %d, want 5", cfg.Viewer.RefreshSeconds)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
appletsrc = "   "
[log]
level = ""
[viewer]
refresh_seconds = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want, err := ExpandPath(defaultAppletsrc)
	if err != nil {
		t.Fatalf("ExpandPath(defaultAppletsrc) returned error: %v", err)
	}
	if cfg.Appletsrc != want {
		t.Fatalf("Appletsrc = %q, want %q", cfg.Appletsrc, want)
	}
	if cfg.Log.Level != defaultLogLevel {
		t.Fatalf("Log.Level = %q, want %q", cfg.Log.Level, defaultLogLevel)
	}
	if cfg.Log.File != "" {
		t.Fatalf("Log.File = %q, want empty", cfg.Log.File)
	}
	if cfg.Viewer.RefreshSeconds != defaultRefreshSeconds {
		t.Fatalf("RefreshSeconds = %d, want %d", cfg.Viewer.RefreshSeconds, defaultRefreshSeconds)
	}
}

func TestLoad_EmptyPlasmoidDirsUseDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[export]\nplasmoid_dirs = [\" \"]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	wantDirs := []string{filepath.Join(home, ".local", "share", "plasma", "plasmoids")}
	if !reflect.DeepEqual(cfg.Export.PlasmoidDirs, wantDirs) {
		t.Fatalf("PlasmoidDirs = %q, want %q", cfg.Export.PlasmoidDirs, wantDirs)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`appletsrc = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
