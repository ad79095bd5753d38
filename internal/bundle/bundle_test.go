package bundle

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/copycat/internal/appletsrc"
	"github.com/five82/copycat/internal/layout"
)

const fixture = `[Containments][1]
plugin=org.kde.plasma.folder
wallpaperplugin=org.kde.image

[Containments][1][Wallpaper][org.kde.image][General]
Image=/usr/share/wallpapers/Next/

[Containments][1][Wallpaper][org.kde.slideshow][General]
SlideInterval=60

[Containments][2]
plugin=org.kde.panel
location=3
AppletOrder=7;5

[Containments][2][Applets][5]
plugin=org.kde.plasma.kickoff

[Containments][2][Applets][5][Configuration]
popupWidth=651

[Containments][2][Applets][5][Configuration][General]
icon=start-here

[Containments][2][Applets][6]
plugin=com.example.userwidget

[Containments][2][Applets][7]
plugin=org.kde.plasma.digitalclock
`

var fixedNow = func() time.Time { return time.Unix(1700000000, 0) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeLayout stores the fixture on disk and parses it, so SourceFile points
// at a real file for snapshotting.
func writeLayout(t *testing.T) *layout.Layout {
	t.Helper()
	path := filepath.Join(t.TempDir(), appletsrc.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	l, err := appletsrc.ParseFile(path)
	require.NoError(t, err)
	return l
}

func TestExport_WritesBundle(t *testing.T) {
	l := writeLayout(t)
	out := t.TempDir()

	res, err := Export(context.Background(), l, Options{
		OutDir:   out,
		Snapshot: true,
		Now:      fixedNow,
		Logger:   quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "plasma-layout-bundle-1700000000"), res.Dir)
	assert.Equal(t, []string{
		"layout.json",
		"scripts/restore-layout.js",
		"scripts/restore-portable.sh",
		"scripts/restore-snapshot.sh",
		"snapshot/" + appletsrc.DefaultFileName,
	}, res.Files)

	for _, script := range []string{"restore-portable.sh", "restore-snapshot.sh"} {
		info, err := os.Stat(filepath.Join(res.Dir, "scripts", script))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), script)
	}

	snap, err := os.ReadFile(filepath.Join(res.Dir, "snapshot", appletsrc.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, fixture, string(snap))
}

func TestExport_LayoutJSONRoundTrips(t *testing.T) {
	l := writeLayout(t)
	res, err := Export(context.Background(), l, Options{OutDir: t.TempDir(), Now: fixedNow, Logger: quietLogger()})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(res.Dir, "layout.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"source_file\""))

	var decoded layout.Layout
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *l, decoded)
}

func TestExport_RestoreLayoutScript(t *testing.T) {
	l := writeLayout(t)
	res, err := Export(context.Background(), l, Options{OutDir: t.TempDir(), Now: fixedNow, Logger: quietLogger()})
	require.NoError(t, err)

	js, err := os.ReadFile(filepath.Join(res.Dir, "scripts", "restore-layout.js"))
	require.NoError(t, err)
	script := string(js)

	assert.Contains(t, script, "new Panel()")
	assert.Contains(t, script, "panel.addWidget(w.plugin)")
	assert.Contains(t, script, `"location": "top"`)

	clock := strings.Index(script, `"plugin": "org.kde.plasma.digitalclock"`)
	kickoff := strings.Index(script, `"plugin": "org.kde.plasma.kickoff"`)
	user := strings.Index(script, `"plugin": "com.example.userwidget"`)
	require.True(t, clock > 0 && kickoff > 0 && user > 0)
	assert.Less(t, clock, kickoff, "AppletOrder puts the clock first")
	assert.Less(t, kickoff, user, "unlisted applets follow")

	assert.Contains(t, script, `"wallpaperPlugin": "org.kde.image"`)
	assert.Contains(t, script, "/usr/share/wallpapers/Next/")
	assert.NotContains(t, script, "SlideInterval", "only the active wallpaper plugin is restored")
}

func TestExport_SnapshotIncludesExistingKWinFiles(t *testing.T) {
	l := writeLayout(t)
	dir := t.TempDir()
	kwinrc := filepath.Join(dir, "kwinrc")
	require.NoError(t, os.WriteFile(kwinrc, []byte("[Plugins]\nblurEnabled=true\n"), 0o644))
	l.KWin = &layout.KWinScan{KWinRC: kwinrc, KWinRulesRC: filepath.Join(dir, "missing")}

	res, err := Export(context.Background(), l, Options{OutDir: t.TempDir(), Snapshot: true, Now: fixedNow, Logger: quietLogger()})
	require.NoError(t, err)

	assert.Contains(t, res.Files, "snapshot/kwinrc")
	assert.NotContains(t, res.Files, "snapshot/kwinrulesrc")
	assert.FileExists(t, filepath.Join(res.Dir, "snapshot", "kwinrc"))
}

func TestExport_BundlesOnlyUserPlasmoids(t *testing.T) {
	l := writeLayout(t)
	userDir := t.TempDir()
	widget := filepath.Join(userDir, "com.example.userwidget")
	require.NoError(t, os.MkdirAll(filepath.Join(widget, "contents", "ui"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(widget, "metadata.json"), []byte(`{"KPlugin":{}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(widget, "contents", "ui", "main.qml"), []byte("Item {}"), 0o644))

	res, err := Export(context.Background(), l, Options{
		OutDir:          t.TempDir(),
		BundlePlasmoids: true,
		PlasmoidDirs:    []string{filepath.Join(userDir, "nope"), userDir},
		Now:             fixedNow,
		Logger:          quietLogger(),
	})
	require.NoError(t, err)

	assert.Contains(t, res.Files, "plasmoids/com.example.userwidget")
	assert.NotContains(t, res.Files, "plasmoids/org.kde.plasma.kickoff")
	got, err := os.ReadFile(filepath.Join(res.Dir, "plasmoids", "com.example.userwidget", "contents", "ui", "main.qml"))
	require.NoError(t, err)
	assert.Equal(t, "Item {}", string(got))
}

func TestExport_ExistingBundleDirFails(t *testing.T) {
	l := writeLayout(t)
	out := t.TempDir()
	opts := Options{OutDir: out, Now: fixedNow, Logger: quietLogger()}

	_, err := Export(context.Background(), l, opts)
	require.NoError(t, err)
	_, err = Export(context.Background(), l, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create bundle dir")
}

func TestExport_MissingSnapshotSourceFails(t *testing.T) {
	l := &layout.Layout{SourceFile: filepath.Join(t.TempDir(), "gone")}
	res, err := Export(context.Background(), l, Options{OutDir: t.TempDir(), Snapshot: true, Now: fixedNow, Logger: quietLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot gone")
	assert.Contains(t, res.Files, "layout.json")
}

func TestExport_CancelledContext(t *testing.T) {
	l := writeLayout(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Export(ctx, l, Options{
		OutDir:          t.TempDir(),
		BundlePlasmoids: true,
		PlasmoidDirs:    []string{t.TempDir()},
		Now:             fixedNow,
		Logger:          quietLogger(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExport_NilLayout(t *testing.T) {
	_, err := Export(context.Background(), nil, Options{OutDir: t.TempDir()})
	assert.Error(t, err)
}

func TestSafePluginID(t *testing.T) {
	assert.True(t, safePluginID("org.kde.plasma.kickoff"))
	for _, id := range []string{"", ".", "..", "../evil", "a/b", "/abs"} {
		assert.False(t, safePluginID(id), id)
	}
}
