package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/five82/copycat/internal/layout"
	"github.com/five82/copycat/internal/state"
)

const defaultPollInterval = 2 * time.Second

// fileStamp is what the watcher compares between polls.
type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (a fileStamp) equal(b fileStamp) bool {
	return a.exists == b.exists && a.size == b.size && a.modTime.Equal(b.modTime)
}

func stampsOf(paths []string) []fileStamp {
	out := make([]fileStamp, len(paths))
	for i, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		out[i] = fileStamp{exists: true, size: info.Size(), modTime: info.ModTime()}
	}
	return out
}

// Watcher rescans the sources into a store whenever one of them changes.
type Watcher struct {
	store    *state.Store
	sources  Sources
	interval time.Duration
	logger   *slog.Logger
	scan     func(context.Context, Sources, *slog.Logger) (*layout.Layout, error)

	last []fileStamp
}

// NewWatcher returns a Watcher polling every interval (default 2s).
func NewWatcher(store *state.Store, src Sources, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		store:    store,
		sources:  src,
		interval: interval,
		logger:   logger,
		scan:     Scan,
	}
}

// Interval returns the polling cadence.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Poll rescans when any source changed since the last successful scan, and
// always on the first call or after a failed scan. It reports whether a
// scan ran.
func (w *Watcher) Poll(ctx context.Context) bool {
	stamps := stampsOf(w.sources.paths())
	if w.last != nil && !changed(w.last, stamps) {
		return false
	}

	l, err := w.scan(ctx, w.sources, w.logger)
	if err != nil {
		// Forget the stamps so a transient failure is retried next tick.
		w.last = nil
		w.logger.Warn("rescan failed", "path", w.sources.Appletsrc, "error", err)
		w.store.Update(nil, err)
		return true
	}
	w.last = stamps
	w.logger.Info("layout loaded",
		"path", l.SourceFile,
		"containments", len(l.Containments),
		"applets", l.AppletCount(),
	)
	w.store.Update(l, nil)
	return true
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

func changed(prev, cur []fileStamp) bool {
	if len(prev) != len(cur) {
		return true
	}
	for i := range prev {
		if !prev[i].equal(cur[i]) {
			return true
		}
	}
	return false
}
