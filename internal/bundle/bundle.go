// Package bundle exports a parsed layout as a self-contained restore bundle.
//
// A bundle directory looks like:
//
//	plasma-layout-bundle-<unix>/
//	  layout.json
//	  scripts/restore-layout.js
//	  scripts/restore-portable.sh
//	  scripts/restore-snapshot.sh
//	  snapshot/                  (Options.Snapshot)
//	  plasmoids/<plugin-id>/     (Options.BundlePlasmoids)
//
// restore-portable.sh recreates panels and widgets through Plasma's
// scripting interface and works across machines. restore-snapshot.sh puts
// the original files back verbatim.
package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/five82/copycat/internal/appletsrc"
	"github.com/five82/copycat/internal/layout"
	"github.com/five82/copycat/internal/telemetry"
	"github.com/five82/copycat/internal/textfile"
)

// DirPrefix starts the name of every bundle directory.
const DirPrefix = "plasma-layout-bundle-"

const (
	layoutFile      = "layout.json"
	scriptsDir      = "scripts"
	snapshotDir     = "snapshot"
	plasmoidsDir    = "plasmoids"
	restoreLayoutJS = "restore-layout.js"
	restorePortable = "restore-portable.sh"
	restoreSnapshot = "restore-snapshot.sh"
	kwinrcName      = "kwinrc"
	kwinrulesrcName = "kwinrulesrc"
)

// Options configures an export.
type Options struct {
	// OutDir receives the bundle directory. It is created when missing.
	OutDir string
	// Snapshot copies the source files into snapshot/.
	Snapshot bool
	// BundlePlasmoids copies user-installed plasmoids used by the layout.
	BundlePlasmoids bool
	// PlasmoidDirs are searched in order for each plugin id.
	PlasmoidDirs []string

	// Now defaults to time.Now.
	Now func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Result describes a written bundle.
type Result struct {
	Dir string
	// Files lists written paths relative to Dir, slash-separated. Bundled
	// plasmoids are listed once per directory.
	Files []string
}

// Export writes a bundle for l. On error the partially written directory is
// left in place for inspection.
func Export(ctx context.Context, l *layout.Layout, opts Options) (res Result, err error) {
	if l == nil {
		return Result{}, errors.New("export: no layout")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, span := telemetry.Start(ctx, "export.bundle")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.SetAttributes(attribute.Int("files", len(res.Files)))
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}
	dir := filepath.Join(opts.OutDir, fmt.Sprintf("%s%d", DirPrefix, now().Unix()))
	if err := os.Mkdir(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create bundle dir: %w", err)
	}

	w := &writer{dir: dir}
	if err := w.layoutJSON(l); err != nil {
		return w.result(), err
	}
	if err := w.scripts(l); err != nil {
		return w.result(), err
	}
	if opts.Snapshot {
		if err := w.snapshot(ctx, l); err != nil {
			return w.result(), err
		}
	}
	if opts.BundlePlasmoids {
		if err := w.plasmoids(ctx, l, opts.PlasmoidDirs, logger); err != nil {
			return w.result(), err
		}
	}

	res = w.result()
	logger.Info("exported bundle", "bundle", dir, "files", len(res.Files))
	return res, nil
}

type writer struct {
	dir   string
	files []string
}

func (w *writer) result() Result {
	return Result{Dir: w.dir, Files: w.files}
}

func (w *writer) write(rel string, data []byte, mode os.FileMode) error {
	dst := filepath.Join(w.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path.Dir(rel), err)
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	// WriteFile honours the umask; scripts must stay executable.
	if err := os.Chmod(dst, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", rel, err)
	}
	w.files = append(w.files, rel)
	return nil
}

func (w *writer) layoutJSON(l *layout.Layout) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return w.write(layoutFile, append(data, '\n'), 0o644)
}

func (w *writer) scripts(l *layout.Layout) error {
	js, err := renderRestoreLayout(l)
	if err != nil {
		return err
	}
	if err := w.write(path.Join(scriptsDir, restoreLayoutJS), js, 0o644); err != nil {
		return err
	}
	sh, err := renderScript(portableTemplate)
	if err != nil {
		return err
	}
	if err := w.write(path.Join(scriptsDir, restorePortable), sh, 0o755); err != nil {
		return err
	}
	sh, err = renderScript(snapshotTemplate)
	if err != nil {
		return err
	}
	return w.write(path.Join(scriptsDir, restoreSnapshot), sh, 0o755)
}

// snapshot copies the appletsrc and, when the layout carries a KWin scan,
// the KWin files that exist.
func (w *writer) snapshot(ctx context.Context, l *layout.Layout) error {
	if err := w.copyFile(l.SourceFile, path.Join(snapshotDir, appletsrc.DefaultFileName)); err != nil {
		return err
	}
	if l.KWin == nil {
		return nil
	}
	for _, f := range []struct{ src, name string }{
		{l.KWin.KWinRC, kwinrcName},
		{l.KWin.KWinRulesRC, kwinrulesrcName},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.src == "" || !textfile.Exists(f.src) {
			continue
		}
		if err := w.copyFile(f.src, path.Join(snapshotDir, f.name)); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) copyFile(src, rel string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", filepath.Base(src), err)
	}
	return w.write(rel, data, 0o644)
}

// plasmoids copies every applet plugin found in one of dirs. Plugins that
// only exist system-wide are expected to come from the distribution and are
// skipped.
func (w *writer) plasmoids(ctx context.Context, l *layout.Layout, dirs []string, logger *slog.Logger) error {
	for _, id := range l.PluginIDs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !safePluginID(id) {
			logger.Warn("skipping plasmoid with unsafe id", "plugin", id)
			continue
		}
		src, ok := findPlasmoid(dirs, id)
		if !ok {
			logger.Debug("plasmoid not user-installed", "plugin", id)
			continue
		}
		rel := path.Join(plasmoidsDir, id)
		if err := copyDir(ctx, src, filepath.Join(w.dir, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("bundle plasmoid %s: %w", id, err)
		}
		w.files = append(w.files, rel)
		logger.Debug("bundled plasmoid", "plugin", id, "path", src)
	}
	return nil
}

func findPlasmoid(dirs []string, id string) (string, bool) {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, id)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// safePluginID rejects ids that would escape the plasmoids directory.
func safePluginID(id string) bool {
	return id != "" && id != "." && id != ".." && filepath.Base(id) == id && filepath.IsLocal(id)
}
