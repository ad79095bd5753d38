package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/five82/copycat/internal/appletsrc"
	"github.com/five82/copycat/internal/bundle"
	"github.com/five82/copycat/internal/kwin"
	"github.com/five82/copycat/internal/layout"
	"github.com/five82/copycat/internal/prefs"
	"github.com/five82/copycat/internal/state"
	"github.com/five82/copycat/internal/telemetry"
	"github.com/five82/copycat/internal/textfile"
	"github.com/five82/copycat/internal/ui"
)

// Sources names the files a scan reads.
type Sources struct {
	Appletsrc   string
	KWinRC      string
	KWinRulesRC string
}

func (s Sources) paths() []string {
	return []string{s.Appletsrc, s.KWinRC, s.KWinRulesRC}
}

// Scan parses the appletsrc and, when kwinrc exists, attaches a KWin summary.
func Scan(ctx context.Context, src Sources, logger *slog.Logger) (*layout.Layout, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l, err := scanAppletsrc(ctx, src.Appletsrc)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed appletsrc",
		"path", l.SourceFile,
		"containments", len(l.Containments),
		"applets", l.AppletCount(),
	)

	if src.KWinRC == "" || !textfile.Exists(src.KWinRC) {
		logger.Debug("kwinrc not found, skipping kwin scan", "path", src.KWinRC)
		return l, nil
	}
	scan, err := scanKWin(ctx, src)
	if err != nil {
		return nil, err
	}
	l.KWin = scan
	logger.Debug("scanned kwin",
		"path", src.KWinRC,
		"effects", len(scan.Summary.EnabledEffects),
		"scripts", len(scan.Summary.EnabledScripts),
		"rules", scan.Summary.WindowRulesCount,
	)
	return l, nil
}

func scanAppletsrc(ctx context.Context, path string) (*layout.Layout, error) {
	_, span := telemetry.Start(ctx, "scan.appletsrc", attribute.String("path", path))
	defer span.End()

	l, err := appletsrc.ParseFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("containments", len(l.Containments)),
		attribute.Int("applets", l.AppletCount()),
	)
	return l, nil
}

func scanKWin(ctx context.Context, src Sources) (*layout.KWinScan, error) {
	_, span := telemetry.Start(ctx, "scan.kwin", attribute.String("path", src.KWinRC))
	defer span.End()

	scan, err := kwin.Scan(src.KWinRC, src.KWinRulesRC)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("window_rules", scan.Summary.WindowRulesCount))
	return scan, nil
}

// Export scans src and writes a restore bundle.
func Export(ctx context.Context, src Sources, opts bundle.Options) (bundle.Result, error) {
	l, err := Scan(ctx, src, opts.Logger)
	if err != nil {
		return bundle.Result{}, err
	}
	return bundle.Export(ctx, l, opts)
}

// ViewerOptions configure the terminal viewer.
type ViewerOptions struct {
	Sources   Sources
	Refresh   time.Duration // zero uses the default poll interval
	PrefsPath string        // empty uses ~/.config/copycat/prefs.toml
	Logger    *slog.Logger
}

// RunViewer scans once, starts the source watcher and runs the viewer until
// the user quits or ctx is cancelled. A failing first scan is shown in the
// viewer instead of aborting, so a broken file can be fixed while watching.
func RunViewer(ctx context.Context, opts ViewerOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	w := NewWatcher(store, opts.Sources, opts.Refresh, logger)
	w.Poll(ctx)
	go w.Run(ctx)

	err := ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		PollTick:  w.Interval(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
